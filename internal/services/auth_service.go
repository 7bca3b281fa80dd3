package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sakurada-dev/team-productivity-api/internal/constants"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// AuthService handles signup, login, and session issuance.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Password string
}

// Signup creates a new user with the user role.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, apierrors.BadRequest("Email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apierrors.BadRequest("Password is too short")
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apierrors.New(http.StatusConflict, apierrors.ErrCodeAlreadyExists, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a new session.
func (s *AuthService) Login(input LoginInput) (*models.User, *models.Session, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierrors.New(http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials, "Invalid email or password")
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, nil, apierrors.Internal()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apierrors.New(http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials, "Invalid email or password")
	}

	if !user.IsActive {
		return nil, nil, apierrors.Forbidden("Account is deactivated")
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(constants.SessionMaxAgeDays * 24 * time.Hour),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		s.logger.Error("session create failed", zap.Error(err))
		return nil, nil, apierrors.Internal()
	}

	return user, session, nil
}

// Logout revokes the session behind a token. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByToken(token); err != nil {
		s.logger.Error("session delete failed", zap.Error(err))
		return apierrors.Internal()
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("User not found")
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, apierrors.Internal()
	}
	return user, nil
}
