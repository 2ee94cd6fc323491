package db

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/config"
	"github.com/encodergroup/portal-go/internal/domain/audit"
	"github.com/encodergroup/portal-go/internal/domain/meeting"
	"github.com/encodergroup/portal-go/internal/domain/notification"
	"github.com/encodergroup/portal-go/internal/domain/receipt"
	"github.com/encodergroup/portal-go/internal/domain/request"
	"github.com/encodergroup/portal-go/internal/domain/task"
	"github.com/encodergroup/portal-go/internal/domain/user"
)

var DB *gorm.DB

func Init() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.DbHost, config.DbUser, config.DbPassword, config.DbName, config.DbPort)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	return InitWithGormDB(database)
}

// InitWithGormDB wires an already opened connection, used by tests that
// bring up their own database.
func InitWithGormDB(database *gorm.DB) error {
	DB = database

	err := DB.AutoMigrate(
		&user.User{},
		&request.Request{},
		&request.StatusChange{},
		&request.Comment{},
		&request.Attachment{},
		&meeting.Meeting{},
		&task.Task{},
		&notification.Notification{},
		&receipt.Receipt{},
		&audit.Entry{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	log.Info("Database initialized")
	return nil
}
