package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Now    helpers.Clock
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger, Now: helpers.UTCNow}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      entity.PublicUser
}

// Login checks username/password. Unknown users and wrong passwords yield the
// same ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if err := required("username", username); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(username)
	if errors.Is(err, apperr.ErrNotFound) {
		helpers.BurnCompare(password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	if u.Bootstrap {
		helpers.LogWarn(s.Logger, "login with bootstrap admin account; rotate its password with cmd/seed", logrus.Fields{
			"user_id":  u.ID,
			"username": u.Username,
		})
	}
	token, exp, err := s.IssueToken(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}

func (s *AuthService) IssueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Generate(u.ID, u.Username, string(u.Role))
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Verify returns the token claims or an error matching apperr.ErrUnauthorized.
func (s *AuthService) Verify(token string) (*helpers.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing access token", apperr.ErrUnauthorized)
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	return claims, nil
}

// Authorize rejects non-admin claims with apperr.ErrForbidden.
func Authorize(claims *helpers.Claims) error {
	if claims == nil {
		return apperr.ErrUnauthorized
	}
	if !entity.Role(claims.Role).IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
}

// EnsureBootstrapAdmin creates the first admin when the user collection is
// empty. Without a configured password a random one is generated and logged
// once. Safe to call on every start.
func (s *AuthService) EnsureBootstrapAdmin(b BootstrapAdmin) (bool, error) {
	n, err := s.Users.Count()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if b.Username == "" {
		b.Username = "admin"
	}
	password, generated := b.Password, false
	if password == "" {
		if password, err = helpers.RandomPassword(18); err != nil {
			return false, err
		}
		generated = true
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, err
	}
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     b.Username,
		PasswordHash: hash,
		Email:        b.Email,
		Role:         entity.RoleAdmin,
		Bootstrap:    true,
		CreatedAt:    clockOrDefault(s.Now)(),
	}
	created, err := s.Users.CreateIfEmpty(u)
	if err != nil || !created {
		return created, err
	}
	fields := logrus.Fields{"username": u.Username}
	if generated {
		fields["password"] = password
		helpers.LogWarn(s.Logger, "bootstrap admin created with a one-time password; it is not shown again", fields)
	} else if s.Logger != nil {
		s.Logger.WithFields(fields).Info("bootstrap admin created from ADMIN_PASSWORD")
	}
	return true, nil
}

// SetPassword rotates the password of username, creating the admin if it does
// not exist yet. The bootstrap marker is cleared. Used by cmd/seed.
func (s *AuthService) SetPassword(username, password, email string) (created bool, err error) {
	if err := required("username", username); err != nil {
		return false, err
	}
	if len(password) < 8 {
		return false, apperr.Invalid("password", "must be at least 8 characters")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, err
	}
	u, err := s.Users.GetByUsername(username)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return true, s.Users.Create(&entity.User{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: hash,
			Email:        email,
			Role:         entity.RoleAdmin,
			CreatedAt:    clockOrDefault(s.Now)(),
		})
	case err != nil:
		return false, err
	}
	_, err = s.Users.Update(u.ID, func(u *entity.User) error {
		u.PasswordHash = hash
		u.Bootstrap = false
		if email != "" {
			u.Email = email
		}
		return nil
	})
	return false, err
}
