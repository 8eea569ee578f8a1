package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studentfolio/internal/auth"
	"studentfolio/internal/http/middleware"
	"studentfolio/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; the services own the business rules.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	projectSvc service.ProjectService,
	tokens *auth.TokenManager,
	registry *prometheus.Registry,
) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	requireAuth := middleware.RequireAuth(tokens)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(authSvc))
	authGroup.Post("/login", Login(authSvc))
	authGroup.Post("/forgot-password", ForgotPassword(authSvc))
	authGroup.Post("/reset-password", ResetPassword(authSvc))
	authGroup.Get("/user/details", requireAuth, UserDetails(authSvc))

	// Owner-only mutations.
	projects := api.Group("/projects", requireAuth)
	projects.Post("/create", CreateProject(projectSvc))
	projects.Post("/add-files/:projectId", AddProjectFiles(projectSvc))
	projects.Post("/replace-file/:fileId", ReplaceProjectFile(projectSvc))
	projects.Delete("/delete-file/:fileId", DeleteProjectFile(projectSvc))
	projects.Put("/:id", UpdateProject(projectSvc))
	projects.Delete("/:id", DeleteProject(projectSvc))

	// Public portfolio lookups. Literal prefixes register before /:id so
	// they are not captured by the param route.
	public := api.Group("/public-projects")
	public.Get("/view-by-roll", ListProjectsByRoll(projectSvc))
	public.Get("/files/:fileId/download", DownloadFile(projectSvc))
	public.Get("/:id", GetProjectDetail(projectSvc))
}
