package repository

import (
	"context"
	"time"

	"studentfolio/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// No business logic here — strictly persistence operations. Lookups return
// sql.ErrNoRows when no user matches.
type UserRepository interface {
	// Create inserts a new user record and returns the stored user.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by primary key.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername returns a user by unique username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByEmail returns a user by unique email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByRollNumber returns a user by unique roll number.
	FindByRollNumber(ctx context.Context, rollNumber string) (*model.User, error)

	// FindByMobileNumber returns a user by unique mobile number.
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.User, error)

	// SetResetToken stores a password-reset token and its expiry on a user.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error

	// UpdatePassword overwrites the credential hash and clears any pending
	// reset token in the same statement.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
