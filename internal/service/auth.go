package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/hash"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/tokens"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`\d`)
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func validateRegistration(name, email, password string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return fmt.Errorf("%w: Name must be at least 3 characters long", ErrValidation)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: Enter a valid name (letters and spaces only)", ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: Invalid email format", ErrValidation)
	}
	if len(password) < 6 || !upperRe.MatchString(password) || !digitRe.MatchString(password) {
		return fmt.Errorf("%w: Password must be at least 6 characters long, include an uppercase letter and a number", ErrValidation)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validateRegistration(name, email, password); err != nil {
		l.Warn("register_rejected", "status", 400, "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_rejected", "status", 400, "reason", "duplicate email")
			return nil, fmt.Errorf("%w: User already exists", ErrConflict)
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		l.Warn("login_failed", "status", 404, "reason", "no such user")
		return nil, fmt.Errorf("%w: User not found", ErrNotFound)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return nil, fmt.Errorf("%w: Invalid credentials", ErrUnauthorized)
	}

	exp := time.Now().Add(tokens.TTL)
	token, err := tokens.Issue(s.JWTSecret, user.ID.String(), user.IsAdmin, exp)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID, "is_admin", user.IsAdmin)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}
