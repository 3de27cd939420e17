package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything the router mounts. Candidates may be nil when
// no vector index is configured.
type Handlers struct {
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Screening    *ScreeningHandler
	Candidates   *CandidateHandler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public endpoints
	api.Get("/jobs", h.Jobs.HandleListJobs)
	api.Get("/jobs/:id", h.Jobs.HandleGetJob)
	api.Post("/jobs/:id/applications", h.Applications.HandleSubmitApplication)

	// Admin endpoints
	admin := api.Group("/admin")
	admin.Post("/jobs", h.Jobs.HandleCreateJob)
	admin.Post("/jobs/from-document", h.Jobs.HandleParseJobDocument)
	admin.Get("/jobs/:id/applications/export", h.Jobs.HandleExportApplications)
	admin.Get("/applications/:id", h.Applications.HandleGetApplication)
	admin.Patch("/applications/:id/status", h.Applications.HandleUpdateStatus)
	admin.Post("/applications/:id/screen", h.Screening.HandleScreen)
	admin.Post("/applications/:id/screen/async", h.Screening.HandleScreenAsync)
	admin.Post("/applications/:id/interview-questions", h.Screening.HandleInterviewQuestions)

	if h.Candidates != nil {
		admin.Get("/candidates/search", h.Candidates.HandleSearch)
	}
}
