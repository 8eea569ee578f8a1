package repository

import (
	"context"

	"studentfolio/internal/model"
)

// FileRepository defines data access for file metadata rows.
type FileRepository interface {
	// CreateBatch inserts all given file rows in a single transaction.
	CreateBatch(ctx context.Context, files []model.File) ([]model.File, error)

	// FindByID returns a file by primary key.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// ListByProjectID returns a project's files, newest first.
	ListByProjectID(ctx context.Context, projectID string) ([]model.File, error)

	// Replace overwrites a file row in place (title, original name, storage
	// key, content type, size) guarded by an optimistic version check.
	// Returns ErrVersionConflict when the row exists at a different version
	// and sql.ErrNoRows when it does not exist at all.
	Replace(ctx context.Context, f *model.File, expectedVersion int) (*model.File, error)

	// Delete removes a file row by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
