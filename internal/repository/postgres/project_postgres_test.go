package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"studentfolio/internal/model"
)

var projectCols = []string{"id", "name", "description", "user_id", "roll_number", "created_at", "updated_at"}

func projectRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(projectCols).
		AddRow(id, "Compiler", "a toy compiler", "user-1", "CS2021001", now, now)
}

func TestProjectPostgres_CreateWithFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	project := &model.Project{
		ID:          "proj-1",
		Name:        "Compiler",
		Description: "a toy compiler",
		UserID:      "user-1",
		RollNumber:  "CS2021001",
		CreatedAt:   now,
	}
	files := []model.File{
		{ID: "f1", Title: "Report", OriginalName: "report.pdf", StorageKey: "projects/a.pdf", ContentType: "application/pdf", Size: 10, ProjectID: "proj-1", UserID: "user-1", CreatedAt: now},
	}

	t.Run("commits project and files together", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO projects").
			WithArgs(project.ID, project.Name, project.Description, project.UserID, project.RollNumber, project.CreatedAt).
			WillReturnRows(projectRow("proj-1"))
		mock.ExpectQuery("INSERT INTO files").
			WithArgs(files[0].ID, files[0].Title, files[0].OriginalName, files[0].StorageKey, files[0].ContentType, files[0].Size, files[0].ProjectID, files[0].UserID, files[0].CreatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).
				AddRow("f1", 1, now, now))
		mock.ExpectCommit()

		stored, err := repo.CreateWithFiles(ctx, project, files)

		assert.NoError(t, err)
		assert.Equal(t, "proj-1", stored.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("file insert failure rolls back the project row too", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO projects").
			WillReturnRows(projectRow("proj-1"))
		mock.ExpectQuery("INSERT INTO files").
			WillReturnError(errors.New("insert fail"))
		mock.ExpectRollback()

		_, err := repo.CreateWithFiles(ctx, project, files)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id").
			WithArgs("proj-1").
			WillReturnRows(projectRow("proj-1"))

		project, err := repo.FindByID(ctx, "proj-1")

		assert.NoError(t, err)
		assert.Equal(t, "proj-1", project.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		project, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, project)
	})
}

func TestProjectPostgres_ListByRollNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("returns matches newest first", func(t *testing.T) {
		rows := sqlmock.NewRows(projectCols).
			AddRow("p2", "Newer", "", "user-1", "CS2021001", now, now).
			AddRow("p1", "Older", "", "user-1", "CS2021001", now.Add(-time.Hour), now.Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM projects WHERE roll_number").
			WithArgs("CS2021001").
			WillReturnRows(rows)

		projects, err := repo.ListByRollNumber(ctx, "CS2021001")

		assert.NoError(t, err)
		assert.Len(t, projects, 2)
		assert.Equal(t, "p2", projects[0].ID)
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE roll_number").
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(projectCols))

		projects, err := repo.ListByRollNumber(ctx, "NOPE")

		assert.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})
}

func TestProjectPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("UPDATE projects").
		WithArgs("proj-1", "Renamed", "new description").
		WillReturnRows(projectRow("proj-1"))

	_, err = repo.Update(ctx, &model.Project{ID: "proj-1", Name: "Renamed", Description: "new description"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM projects").
			WithArgs("proj-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "proj-1"))
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM projects").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
	})
}
