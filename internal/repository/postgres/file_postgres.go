package postgres

import (
	"context"
	"database/sql"
	"errors"

	"studentfolio/internal/model"
	"studentfolio/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, title, original_name, storage_key, content_type, size, project_id, user_id, version, created_at, updated_at`

func scanFile(row *sql.Row) (*model.File, error) {
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.Title,
		&f.OriginalName,
		&f.StorageKey,
		&f.ContentType,
		&f.Size,
		&f.ProjectID,
		&f.UserID,
		&f.Version,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// insertFileTx inserts one file row inside an open transaction and fills in
// DB-assigned fields on the passed struct. Shared with ProjectPostgres for
// the create-with-files transaction.
func insertFileTx(ctx context.Context, tx *sql.Tx, f *model.File) error {
	const q = `
		INSERT INTO files (id, title, original_name, storage_key, content_type, size, project_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id, version, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		f.ID,
		f.Title,
		f.OriginalName,
		f.StorageKey,
		f.ContentType,
		f.Size,
		f.ProjectID,
		f.UserID,
		f.CreatedAt,
	).Scan(&f.ID, &f.Version, &f.CreatedAt, &f.UpdatedAt)
}

// CreateBatch inserts all file rows in one transaction.
func (r *FilePostgres) CreateBatch(ctx context.Context, files []model.File) ([]model.File, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for i := range files {
		if err := insertFileTx(ctx, tx, &files[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return files, nil
}

// FindByID fetches a single file by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// ListByProjectID returns a project's files, newest first.
func (r *FilePostgres) ListByProjectID(ctx context.Context, projectID string) ([]model.File, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(
			&f.ID,
			&f.Title,
			&f.OriginalName,
			&f.StorageKey,
			&f.ContentType,
			&f.Size,
			&f.ProjectID,
			&f.UserID,
			&f.Version,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Replace overwrites the mutable file columns in one update, guarded by the
// optimistic version check. A zero-row update is disambiguated with a
// follow-up existence check: missing row is sql.ErrNoRows, a row at another
// version is repository.ErrVersionConflict.
func (r *FilePostgres) Replace(ctx context.Context, f *model.File, expectedVersion int) (*model.File, error) {
	const q = `
		UPDATE files
		SET title = $2, original_name = $3, storage_key = $4, content_type = $5, size = $6, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $7
		RETURNING ` + fileColumns
	updated, err := scanFile(r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Title,
		f.OriginalName,
		f.StorageKey,
		f.ContentType,
		f.Size,
		expectedVersion,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := r.FindByID(ctx, f.ID); err != nil {
		return nil, err
	}
	return nil, repository.ErrVersionConflict
}

// Delete removes a file row by ID. It does not return an error if the row
// does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
