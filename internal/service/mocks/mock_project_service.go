package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"studentfolio/internal/model"
	"studentfolio/internal/service"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, userID, name, description string, uploads []service.FileUpload) (*model.Project, error) {
	args := m.Called(ctx, userID, name, description, uploads)
	var p *model.Project
	if v := args.Get(0); v != nil {
		p = v.(*model.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectService) AddFiles(ctx context.Context, userID, projectID string, uploads []service.FileUpload) ([]model.File, error) {
	args := m.Called(ctx, userID, projectID, uploads)
	var files []model.File
	if v := args.Get(0); v != nil {
		files = v.([]model.File)
	}
	return files, args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, userID, projectID string, name, description *string) (*model.Project, error) {
	args := m.Called(ctx, userID, projectID, name, description)
	var p *model.Project
	if v := args.Get(0); v != nil {
		p = v.(*model.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *MockProjectService) DeleteFile(ctx context.Context, userID, fileID string) error {
	args := m.Called(ctx, userID, fileID)
	return args.Error(0)
}

func (m *MockProjectService) ReplaceFile(ctx context.Context, userID, fileID string, upload service.FileUpload) (*model.File, error) {
	args := m.Called(ctx, userID, fileID, upload)
	var f *model.File
	if v := args.Get(0); v != nil {
		f = v.(*model.File)
	}
	return f, args.Error(1)
}

func (m *MockProjectService) ListByRollNumber(ctx context.Context, rollNumber string) ([]model.Project, error) {
	args := m.Called(ctx, rollNumber)
	var projects []model.Project
	if v := args.Get(0); v != nil {
		projects = v.([]model.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectService) Detail(ctx context.Context, projectID string) (*service.ProjectDetail, error) {
	args := m.Called(ctx, projectID)
	var d *service.ProjectDetail
	if v := args.Get(0); v != nil {
		d = v.(*service.ProjectDetail)
	}
	return d, args.Error(1)
}

func (m *MockProjectService) OpenFile(ctx context.Context, fileID string) (io.ReadCloser, *model.File, error) {
	args := m.Called(ctx, fileID)
	var r io.ReadCloser
	if v := args.Get(0); v != nil {
		r = v.(io.ReadCloser)
	}
	var f *model.File
	if v := args.Get(1); v != nil {
		f = v.(*model.File)
	}
	return r, f, args.Error(2)
}
