package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"studentfolio/internal/auth"
	"studentfolio/internal/model"
	"studentfolio/internal/repository"
)

var mobileNumberRe = regexp.MustCompile(`^[0-9]{10}$`)

const resetTokenTTL = time.Hour

// RegisterInput carries all fields required to create an account.
type RegisterInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	College      string `json:"college"`
	Branch       string `json:"branch"`
	RollNumber   string `json:"rollNumber"`
	MobileNumber string `json:"mobileNumber"`
}

// AuthResult pairs a fresh identity token with the authenticated user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ResetRequestResult is the demo forgot-password response: the reset token
// is handed back to the caller directly instead of being emailed.
type ResetRequestResult struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthService defines the account and credential use cases.
type AuthService interface {
	// Register creates an account and logs the user in immediately.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// GetUser returns the profile for an authenticated user ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// ForgotPassword stores a short-lived reset token on the account.
	ForgotPassword(ctx context.Context, username string) (*ResetRequestResult, error)

	// ResetPassword consumes a reset token and overwrites the credential hash.
	ResetPassword(ctx context.Context, username, token, newPassword string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    *logrus.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, log *logrus.Logger) AuthService {
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" ||
		in.College == "" || in.Branch == "" || in.RollNumber == "" || in.MobileNumber == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !mobileNumberRe.MatchString(in.MobileNumber) {
		return nil, fmt.Errorf("%w: mobile number must be exactly 10 digits", ErrValidation)
	}

	// Uniqueness pre-checks mirror the registration error messages; the DB
	// unique constraints remain the backstop for races.
	checks := []struct {
		find func(context.Context, string) (*model.User, error)
		arg  string
		name string
	}{
		{s.users.FindByUsername, in.Username, "username"},
		{s.users.FindByEmail, in.Email, "email"},
		{s.users.FindByRollNumber, in.RollNumber, "roll number"},
		{s.users.FindByMobileNumber, in.MobileNumber, "mobile number"},
	}
	for _, c := range checks {
		_, err := c.find(ctx, c.arg)
		if err == nil {
			return nil, fmt.Errorf("%w: %s already exists", ErrConflict, c.name)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		College:      in.College,
		Branch:       in.Branch,
		RollNumber:   in.RollNumber,
		MobileNumber: in.MobileNumber,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(stored.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     stored.ID,
		"roll_number": stored.RollNumber,
	}).Info("user registered")

	return &AuthResult{Token: token, User: stored}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, username string) (*ResetRequestResult, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().UTC().Add(resetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return nil, fmt.Errorf("store reset token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("password reset token issued")

	return &ResetRequestResult{Token: token, Expires: expires}, nil
}

func (s *authService) ResetPassword(ctx context.Context, username, token, newPassword string) error {
	if username == "" || token == "" || newPassword == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
		}
		return err
	}

	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != token ||
		user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("password reset completed")
	return nil
}
