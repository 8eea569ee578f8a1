package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"studentfolio/internal/http/middleware"
	"studentfolio/internal/service"
)

// parseUploads pairs uploaded files with their titles positionally: the
// i-th file gets the i-th title. A count mismatch rejects the whole
// request before anything is stored. The returned closers must be closed
// after the service call.
func parseUploads(form *multipart.Form, fileField, titleField string) ([]service.FileUpload, []io.Closer, error) {
	files := form.File[fileField]
	titles := form.Value[titleField]

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("at least one %q file is required", fileField)
	}
	if len(files) != len(titles) {
		return nil, nil, fmt.Errorf("got %d files but %d titles; each file needs exactly one title", len(files), len(titles))
	}

	uploads := make([]service.FileUpload, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, fmt.Errorf("cannot open uploaded file %q", fh.Filename)
		}
		closers = append(closers, f)
		uploads = append(uploads, service.FileUpload{
			Title:        titles[i],
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Reader:       f,
		})
	}
	return uploads, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}

// CreateProject handles POST /api/projects/create (multipart/form-data).
// Fields: name, description, projectFiles (repeated), fileTitle_projectFiles
// (repeated, one per file).
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "request must be multipart/form-data")
		}

		name := c.FormValue("name")
		description := c.FormValue("description")

		uploads, closers, err := parseUploads(form, "projectFiles", "fileTitle_projectFiles")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		defer closeAll(closers)

		project, err := svc.Create(c.UserContext(), middleware.UserID(c), name, description, uploads)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// AddProjectFiles handles POST /api/projects/add-files/:projectId (multipart/form-data).
// Fields: newProjectFiles (repeated), fileTitle_newProjectFiles (repeated).
func AddProjectFiles(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "request must be multipart/form-data")
		}

		uploads, closers, err := parseUploads(form, "newProjectFiles", "fileTitle_newProjectFiles")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		defer closeAll(closers)

		files, err := svc.AddFiles(c.UserContext(), middleware.UserID(c), c.Params("projectId"), uploads)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"files": files})
	}
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateProject handles PUT /api/projects/:id. Absent fields stay unchanged.
func UpdateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in updateProjectRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		project, err := svc.UpdateProject(c.UserContext(), middleware.UserID(c), c.Params("id"), in.Name, in.Description)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(project)
	}
}

// DeleteProject handles DELETE /api/projects/:id.
func DeleteProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteProject(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "project deleted"})
	}
}

// ReplaceProjectFile handles POST /api/projects/replace-file/:fileId (multipart/form-data).
// Fields: newFile (exactly one), fileName (the new title).
func ReplaceProjectFile(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("newFile")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "a replacement file is required in the newFile field")
		}
		title := c.FormValue("fileName")
		if title == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "fileName is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		file, err := svc.ReplaceFile(c.UserContext(), middleware.UserID(c), c.Params("fileId"), service.FileUpload{
			Title:        title,
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Reader:       f,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(file)
	}
}

// DeleteProjectFile handles DELETE /api/projects/delete-file/:fileId.
func DeleteProjectFile(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteFile(c.UserContext(), middleware.UserID(c), c.Params("fileId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "file deleted"})
	}
}
