package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"gastos/internal/credential"
	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/validation"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user
func (s *userService) CreateUser(username, password string) (*models.User, error) {
	username, err := validation.Username(username)
	if err != nil {
		return nil, apperrors.FromValidation(err)
	}
	password, err = validation.Password(password)
	if err != nil {
		return nil, apperrors.FromValidation(err)
	}

	taken, err := s.usernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateUsername
	}

	cred, err := credential.NewCredential(username, password)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			return nil, apperrors.FromValidation(err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username:     cred.Username,
		PasswordHash: cred.PasswordHash,
		PasswordSalt: cred.PasswordSalt,
	}

	if err := s.db.Create(user).Error; err != nil {
		// Lost a race against a concurrent registration of the same name.
		if taken, lookupErr := s.usernameTaken(username); lookupErr == nil && taken {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

func (s *userService) usernameTaken(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// Authenticate checks a username/password pair. An unknown username and a
// wrong password produce the same error.
func (s *userService) Authenticate(username, password string) (*models.User, error) {
	username, err := validation.Username(username)
	if err != nil {
		return nil, apperrors.FromValidation(err)
	}

	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Unknown users cost one KDF round too.
			credential.VerifyPassword(password, "", "")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Credential().Verify(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
