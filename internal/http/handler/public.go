package handler

import (
	"github.com/gofiber/fiber/v2"

	"studentfolio/internal/service"
)

// ListProjectsByRoll handles GET /api/public-projects/view-by-roll?rollNumber=….
// The lookup is public; an unknown roll number yields an empty list, not a 404.
func ListProjectsByRoll(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projects, err := svc.ListByRollNumber(c.UserContext(), c.Query("rollNumber"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"projects": projects})
	}
}

// GetProjectDetail handles GET /api/public-projects/:id, public.
func GetProjectDetail(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := svc.Detail(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(detail)
	}
}

// DownloadFile handles GET /api/public-projects/files/:fileId/download,
// public. The blob is streamed through the server so both storage drivers
// behave the same.
func DownloadFile(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, file, err := svc.OpenFile(c.UserContext(), c.Params("fileId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		// No Close here: fasthttp consumes the body stream after the handler
		// returns and closes it itself once it is drained.

		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.OriginalName+`"`)
		return c.SendStream(r, int(file.Size))
	}
}
