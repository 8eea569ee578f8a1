package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studentfolio/internal/config"
	"studentfolio/internal/model"
	"studentfolio/internal/repository"
	"studentfolio/internal/storage"
)

const downloadURLExpiry = 15 * time.Minute

// FileUpload is one normalized (payload, title) pair coming out of the HTTP
// layer. The handler is responsible for pairing files with titles
// positionally and rejecting count mismatches before the service runs.
type FileUpload struct {
	Title        string
	OriginalName string
	ContentType  string
	Size         int64
	Reader       io.Reader
}

// FileView is a file row decorated with a download URL for public responses.
type FileView struct {
	model.File
	DownloadURL string `json:"download_url,omitempty"`
}

// ProjectDetail is the public view of one project with its files.
type ProjectDetail struct {
	Project *model.Project `json:"project"`
	Files   []FileView     `json:"files"`
}

// ProjectService defines the project and file use cases, including the
// upload orchestration between the metadata store and the blob store.
type ProjectService interface {
	// Create validates the input, stages every blob, then commits the
	// project row and all file rows in one transaction.
	Create(ctx context.Context, userID, name, description string, uploads []FileUpload) (*model.Project, error)

	// AddFiles appends files to an existing project owned by the caller.
	AddFiles(ctx context.Context, userID, projectID string, uploads []FileUpload) ([]model.File, error)

	// UpdateProject patches name and/or description, owner-only.
	UpdateProject(ctx context.Context, userID, projectID string, name, description *string) (*model.Project, error)

	// DeleteProject removes a project and all of its files, owner-only.
	DeleteProject(ctx context.Context, userID, projectID string) error

	// DeleteFile removes a single file, owner-only.
	DeleteFile(ctx context.Context, userID, fileID string) error

	// ReplaceFile swaps a file's payload and title in place, owner-only.
	// The file keeps its ID and always ends up with a fresh storage key.
	ReplaceFile(ctx context.Context, userID, fileID string, upload FileUpload) (*model.File, error)

	// ListByRollNumber is the public portfolio lookup, newest first.
	ListByRollNumber(ctx context.Context, rollNumber string) ([]model.Project, error)

	// Detail is the public single-project view with files.
	Detail(ctx context.Context, projectID string) (*ProjectDetail, error)

	// OpenFile streams a file's bytes for public download.
	OpenFile(ctx context.Context, fileID string) (io.ReadCloser, *model.File, error)
}

type projectService struct {
	projects  repository.ProjectRepository
	files     repository.FileRepository
	users     repository.UserRepository
	store     storage.Storage
	upload    config.UploadConfig
	opTimeout time.Duration
	log       *logrus.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(
	projects repository.ProjectRepository,
	files repository.FileRepository,
	users repository.UserRepository,
	store storage.Storage,
	upload config.UploadConfig,
	opTimeout time.Duration,
	log *logrus.Logger,
) ProjectService {
	return &projectService{
		projects:  projects,
		files:     files,
		users:     users,
		store:     store,
		upload:    upload,
		opTimeout: opTimeout,
		log:       log,
	}
}

// validateUploads applies the shape and limit checks shared by every
// file-bearing operation. It runs before any blob or metadata mutation.
func (s *projectService) validateUploads(uploads []FileUpload) error {
	if len(uploads) == 0 {
		return fmt.Errorf("%w: at least one file is required", ErrValidation)
	}
	if s.upload.MaxFilesPerReq > 0 && len(uploads) > s.upload.MaxFilesPerReq {
		return fmt.Errorf("%w: at most %d files per request", ErrValidation, s.upload.MaxFilesPerReq)
	}
	for i, up := range uploads {
		if strings.TrimSpace(up.Title) == "" {
			return fmt.Errorf("%w: file %d is missing a title", ErrValidation, i+1)
		}
		if up.Reader == nil {
			return fmt.Errorf("%w: file %d has no content", ErrValidation, i+1)
		}
		if s.upload.MaxFileSize > 0 && up.Size > s.upload.MaxFileSize {
			return fmt.Errorf("%w: file %q exceeds the maximum size of %d bytes", ErrValidation, up.OriginalName, s.upload.MaxFileSize)
		}
		if len(s.upload.AllowedExts) > 0 {
			ext := strings.ToLower(filepath.Ext(up.OriginalName))
			allowed := false
			for _, a := range s.upload.AllowedExts {
				if ext == strings.ToLower(a) {
					allowed = true
					break
				}
			}
			if !allowed {
				return fmt.Errorf("%w: file type %q is not allowed", ErrValidation, ext)
			}
		}
	}
	return nil
}

func (s *projectService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout > 0 {
		return context.WithTimeout(ctx, s.opTimeout)
	}
	return ctx, func() {}
}

// stageBlob uploads one payload under a fresh collision-free key.
func (s *projectService) stageBlob(ctx context.Context, up FileUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.OriginalName))
	key := "projects/" + uuid.New().String() + ext

	putCtx, cancel := s.opCtx(ctx)
	defer cancel()

	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	_, err := s.store.Put(putCtx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: ct,
		Metadata:    map[string]string{"original-filename": up.OriginalName},
	})
	if err != nil {
		return "", fmt.Errorf("%w: upload %q: %v", ErrStorage, up.OriginalName, err)
	}
	return key, nil
}

// stageAll uploads every payload and returns the staged file rows. On any
// failure the already-staged blobs are deleted best-effort and the first
// error is returned; no metadata has been written at that point.
func (s *projectService) stageAll(ctx context.Context, userID, projectID string, uploads []FileUpload) ([]model.File, error) {
	now := time.Now().UTC()
	staged := make([]model.File, 0, len(uploads))
	for _, up := range uploads {
		key, err := s.stageBlob(ctx, up)
		if err != nil {
			s.discardStaged(ctx, staged)
			return nil, err
		}
		ct := up.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		staged = append(staged, model.File{
			ID:           uuid.New().String(),
			Title:        up.Title,
			OriginalName: up.OriginalName,
			StorageKey:   key,
			ContentType:  ct,
			Size:         up.Size,
			ProjectID:    projectID,
			UserID:       userID,
			CreatedAt:    now,
		})
	}
	return staged, nil
}

// discardStaged issues best-effort cleanup deletes for staged blobs after a
// failed create or add. Failures are logged and swallowed; an orphaned blob
// is recoverable by audit, a dangling metadata row is not.
func (s *projectService) discardStaged(ctx context.Context, staged []model.File) {
	if len(staged) == 0 {
		return
	}
	keys := make([]string, 0, len(staged))
	for _, f := range staged {
		keys = append(keys, f.StorageKey)
	}
	delCtx, cancel := s.opCtx(context.WithoutCancel(ctx))
	defer cancel()
	if err := s.store.DeleteMany(delCtx, keys); err != nil {
		s.log.WithFields(logrus.Fields{
			"keys":  keys,
			"error": err.Error(),
		}).Warn("cleanup of staged blobs failed")
	}
}

// removeBlob deletes one blob best-effort, never failing the caller.
func (s *projectService) removeBlob(ctx context.Context, key string) {
	delCtx, cancel := s.opCtx(context.WithoutCancel(ctx))
	defer cancel()
	if err := s.store.Delete(delCtx, key); err != nil {
		s.log.WithFields(logrus.Fields{
			"storage_key": key,
			"error":       err.Error(),
		}).Warn("blob delete failed")
	}
}

func (s *projectService) Create(ctx context.Context, userID, name, description string, uploads []FileUpload) (*model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if err := s.validateUploads(uploads); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	project := &model.Project{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
		UserID:      owner.ID,
		RollNumber:  owner.RollNumber,
		CreatedAt:   time.Now().UTC(),
	}

	// Phase one: every blob is staged before any metadata exists.
	staged, err := s.stageAll(ctx, owner.ID, project.ID, uploads)
	if err != nil {
		return nil, err
	}

	// Phase two: one transaction commits the project and all file rows.
	stored, err := s.projects.CreateWithFiles(ctx, project, staged)
	if err != nil {
		s.discardStaged(ctx, staged)
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id": stored.ID,
		"user_id":    owner.ID,
		"files":      len(staged),
	}).Info("project created")

	return stored, nil
}

func (s *projectService) AddFiles(ctx context.Context, userID, projectID string, uploads []FileUpload) ([]model.File, error) {
	if err := s.validateUploads(uploads); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.UserID != userID {
		return nil, ErrForbidden
	}

	staged, err := s.stageAll(ctx, userID, project.ID, uploads)
	if err != nil {
		return nil, err
	}

	created, err := s.files.CreateBatch(ctx, staged)
	if err != nil {
		s.discardStaged(ctx, staged)
		return nil, fmt.Errorf("save file records: %w", err)
	}
	return created, nil
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID string, name, description *string) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.UserID != userID {
		return nil, ErrForbidden
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: project name cannot be empty", ErrValidation)
		}
		project.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		project.Description = *description
	}

	return s.projects.Update(ctx, project)
}

// DeleteProject removes the blobs best-effort, then deletes the project row.
// The metadata row is authoritative: a failed blob delete never blocks it.
func (s *projectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if project.UserID != userID {
		return ErrForbidden
	}

	files, err := s.files.ListByProjectID(ctx, project.ID)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		keys := make([]string, 0, len(files))
		for _, f := range files {
			keys = append(keys, f.StorageKey)
		}
		delCtx, cancel := s.opCtx(ctx)
		if err := s.store.DeleteMany(delCtx, keys); err != nil {
			s.log.WithFields(logrus.Fields{
				"project_id": project.ID,
				"error":      err.Error(),
			}).Warn("blob batch delete failed")
		}
		cancel()
	}

	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id": project.ID,
		"user_id":    userID,
		"files":      len(files),
	}).Info("project deleted")
	return nil
}

func (s *projectService) DeleteFile(ctx context.Context, userID, fileID string) error {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if file.UserID != userID {
		return ErrForbidden
	}

	s.removeBlob(ctx, file.StorageKey)

	if err := s.files.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}

func (s *projectService) ReplaceFile(ctx context.Context, userID, fileID string, upload FileUpload) (*model.File, error) {
	if err := s.validateUploads([]FileUpload{upload}); err != nil {
		return nil, err
	}

	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if file.UserID != userID {
		return nil, ErrForbidden
	}

	// Upload the replacement first; the metadata row must never point at a
	// key that was not successfully written, so the update comes last.
	newKey, err := s.stageBlob(ctx, upload)
	if err != nil {
		return nil, err
	}

	updated := *file
	updated.Title = upload.Title
	updated.OriginalName = upload.OriginalName
	updated.StorageKey = newKey
	updated.ContentType = upload.ContentType
	if updated.ContentType == "" {
		updated.ContentType = "application/octet-stream"
	}
	updated.Size = upload.Size

	stored, err := s.files.Replace(ctx, &updated, file.Version)
	if err != nil {
		// The new blob is unreferenced; clean it up best-effort.
		s.removeBlob(ctx, newKey)
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: file was modified concurrently", ErrConflict)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update file record: %w", err)
	}

	// Old blob is now unreferenced; its deletion is never fatal.
	s.removeBlob(ctx, file.StorageKey)

	return stored, nil
}

func (s *projectService) ListByRollNumber(ctx context.Context, rollNumber string) ([]model.Project, error) {
	if strings.TrimSpace(rollNumber) == "" {
		return nil, fmt.Errorf("%w: roll number is required", ErrValidation)
	}
	return s.projects.ListByRollNumber(ctx, rollNumber)
}

func (s *projectService) Detail(ctx context.Context, projectID string) (*ProjectDetail, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	files, err := s.files.ListByProjectID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	views := make([]FileView, 0, len(files))
	for _, f := range files {
		view := FileView{File: f}
		url, err := s.store.PresignGet(ctx, f.StorageKey, downloadURLExpiry)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"file_id": f.ID,
				"error":   err.Error(),
			}).Warn("presign download url failed")
		} else {
			view.DownloadURL = url
		}
		views = append(views, view)
	}

	return &ProjectDetail{Project: project, Files: views}, nil
}

func (s *projectService) OpenFile(ctx context.Context, fileID string) (io.ReadCloser, *model.File, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	r, _, err := s.store.Get(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %q: %v", ErrStorage, file.StorageKey, err)
	}
	return r, file, nil
}
