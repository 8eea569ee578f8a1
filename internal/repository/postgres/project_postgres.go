package postgres

import (
	"context"
	"database/sql"

	"studentfolio/internal/model"
	"studentfolio/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, name, description, user_id, roll_number, created_at, updated_at`

func scanProject(row *sql.Row) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.UserID,
		&p.RollNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateWithFiles inserts the project and all of its file rows inside one
// transaction. Either everything commits or nothing does.
func (r *ProjectPostgres) CreateWithFiles(ctx context.Context, p *model.Project, files []model.File) (*model.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qProject = `
		INSERT INTO projects (id, name, description, user_id, roll_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + projectColumns
	row := tx.QueryRowContext(ctx, qProject,
		p.ID,
		p.Name,
		p.Description,
		p.UserID,
		p.RollNumber,
		p.CreatedAt,
	)
	stored, err := scanProject(row)
	if err != nil {
		return nil, err
	}

	for i := range files {
		if err := insertFileTx(ctx, tx, &files[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single project by its ID.
func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, q, id))
}

// ListByRollNumber returns projects for a roll number, newest first.
func (r *ProjectPostgres) ListByRollNumber(ctx context.Context, rollNumber string) ([]model.Project, error) {
	const q = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE roll_number = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, rollNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.UserID,
			&p.RollNumber,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites name and description of a project row.
func (r *ProjectPostgres) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	const q = `
		UPDATE projects
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Description))
}

// Delete removes a project by ID. File rows go with it via ON DELETE CASCADE.
// It does not return an error if the row does not exist.
func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
