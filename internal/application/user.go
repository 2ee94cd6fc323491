package application

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/domain/user"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/types"
)

type UserService struct {
	users repository.UserRepository
	audit *AuditService
}

func NewUserService(users repository.UserRepository, audit *AuditService) *UserService {
	return &UserService{users: users, audit: audit}
}

func (s *UserService) Register(req user.RegisterRequest) (*user.User, error) {
	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
		Role:      user.RoleClient,
		IsActive:  true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.audit.Record(u.ID, "user.register", u.ID, nil)
	return u, nil
}

func (s *UserService) Authenticate(req user.LoginRequest) (*user.User, error) {
	u, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func (s *UserService) Get(id string) (*user.User, error) {
	return s.users.GetByID(id)
}

func (s *UserService) Update(actor *types.Claims, id string, req user.UpdateRequest) (*user.User, error) {
	if !actor.IsAdmin && actor.UserID != id {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Company != nil {
		u.Company = *req.Company
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(skip, limit int) ([]user.User, int64, error) {
	return s.users.List(skip, limit)
}

// SetActive toggles an account. Admin only, enforced by the route.
func (s *UserService) SetActive(actor *types.Claims, id string, active bool) (*user.User, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	u.IsActive = active
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	s.audit.Record(actor.UserID, "user.set_active", id, map[string]interface{}{"active": active})
	return u, nil
}
