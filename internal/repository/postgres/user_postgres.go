package postgres

import (
	"context"
	"database/sql"
	"time"

	"studentfolio/internal/model"
	"studentfolio/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, college, branch, roll_number, mobile_number, reset_password_token, reset_password_expires, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.College,
		&u.Branch,
		&u.RollNumber,
		&u.MobileNumber,
		&u.ResetPasswordToken,
		&u.ResetPasswordExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, email, password_hash, college, branch, roll_number, mobile_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.College,
		u.Branch,
		u.RollNumber,
		u.MobileNumber,
		u.CreatedAt,
	)
	return scanUser(row)
}

func (r *UserPostgres) findBy(ctx context.Context, column, value string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, value))
}

// FindByID fetches a single user by primary key.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername fetches a single user by unique username.
func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByEmail fetches a single user by unique email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

// FindByRollNumber fetches a single user by unique roll number.
func (r *UserPostgres) FindByRollNumber(ctx context.Context, rollNumber string) (*model.User, error) {
	return r.findBy(ctx, "roll_number", rollNumber)
}

// FindByMobileNumber fetches a single user by unique mobile number.
func (r *UserPostgres) FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.User, error) {
	return r.findBy(ctx, "mobile_number", mobileNumber)
}

// SetResetToken stores a password-reset token and expiry on the user row.
func (r *UserPostgres) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	const q = `
		UPDATE users
		SET reset_password_token = $2, reset_password_expires = $3, updated_at = now()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, token, expires)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword overwrites the credential hash and clears the reset token.
func (r *UserPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
