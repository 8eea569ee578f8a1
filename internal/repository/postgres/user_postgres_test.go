package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"studentfolio/internal/model"
)

var userCols = []string{"id", "username", "email", "password_hash", "college", "branch", "roll_number", "mobile_number", "reset_password_token", "reset_password_expires", "created_at", "updated_at"}

func userRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(userCols).
		AddRow(id, "jdoe", "jdoe@example.com", "$2a$10$hash", "NIT", "CSE", "CS2021001", "9876543210", nil, nil, now, now)
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	user := &model.User{
		ID:           "user-1",
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "$2a$10$hash",
		College:      "NIT",
		Branch:       "CSE",
		RollNumber:   "CS2021001",
		MobileNumber: "9876543210",
		CreatedAt:    now,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.College, user.Branch, user.RollNumber, user.MobileNumber, user.CreatedAt).
		WillReturnRows(userRow("user-1"))

	stored, err := repo.Create(ctx, user)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", stored.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Finders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		column string
		arg    string
		call   func() (*model.User, error)
	}{
		{"by id", "id", "user-1", func() (*model.User, error) { return repo.FindByID(ctx, "user-1") }},
		{"by username", "username", "jdoe", func() (*model.User, error) { return repo.FindByUsername(ctx, "jdoe") }},
		{"by email", "email", "jdoe@example.com", func() (*model.User, error) { return repo.FindByEmail(ctx, "jdoe@example.com") }},
		{"by roll number", "roll_number", "CS2021001", func() (*model.User, error) { return repo.FindByRollNumber(ctx, "CS2021001") }},
		{"by mobile number", "mobile_number", "9876543210", func() (*model.User, error) { return repo.FindByMobileNumber(ctx, "9876543210") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery("SELECT (.+) FROM users WHERE " + tt.column).
				WithArgs(tt.arg).
				WillReturnRows(userRow("user-1"))

			user, err := tt.call()

			assert.NoError(t, err)
			assert.Equal(t, "user-1", user.ID)
		})
	}

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByUsername(ctx, "ghost")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}

func TestUserPostgres_SetResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	expires := time.Now().UTC().Add(time.Hour)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-1", "token-hex", expires).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetResetToken(ctx, "user-1", "token-hex", expires))
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost", "token-hex", expires).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetResetToken(ctx, "ghost", "token-hex", expires), sql.ErrNoRows)
	})
}

func TestUserPostgres_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-1", "$2a$10$newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePassword(ctx, "user-1", "$2a$10$newhash"))
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost", "$2a$10$newhash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePassword(ctx, "ghost", "$2a$10$newhash"), sql.ErrNoRows)
	})
}
