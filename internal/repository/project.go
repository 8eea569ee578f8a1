package repository

import (
	"context"

	"studentfolio/internal/model"
)

// ProjectRepository defines data access for projects.
type ProjectRepository interface {
	// CreateWithFiles inserts a project row and all of its initial file rows
	// in a single transaction, so a failed create leaves no metadata behind.
	CreateWithFiles(ctx context.Context, p *model.Project, files []model.File) (*model.Project, error)

	// FindByID returns a project by primary key.
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// ListByRollNumber returns all projects stamped with the given roll
	// number, newest first. An empty result is not an error.
	ListByRollNumber(ctx context.Context, rollNumber string) ([]model.Project, error)

	// Update overwrites name and description.
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// Delete removes a project row; the schema cascades file-row deletion.
	Delete(ctx context.Context, id string) error
}
