package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/encodergroup/portal-go/internal/api/routes"
	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/config"
	"github.com/encodergroup/portal-go/internal/config/db"
	"github.com/encodergroup/portal-go/internal/notify"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/internal/storage"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	config.LoadConfig()

	var repos *repository.Repos
	switch config.StorageBackend {
	case "memory":
		var err error
		repos, err = repository.NewMemory(config.SeedFile, config.MockLatency)
		if err != nil {
			log.WithError(err).Fatal("Failed to build memory backend")
		}
		log.Info("Using in-memory storage backend")
	default:
		if err := db.Init(); err != nil {
			log.WithError(err).Fatal("Failed to initialize database")
		}
		repos = repository.New(db.DB)
	}

	var store application.ObjectStore
	if config.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(
			config.MinioEndpoint, config.MinioAccessKey, config.MinioSecretKey,
			config.MinioBucket, config.MinioUseSSL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to object storage")
		}
		store = minioStore
	} else {
		log.Warn("No object storage configured, attachments held in memory")
		store = storage.NewMemoryStore()
	}

	hub := notify.NewHub()
	services := application.New(repos, store, hub)

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, services, hub)

	log.WithField("port", config.ServerPort).Info("Starting server")
	if err := r.Run(":" + config.ServerPort); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
