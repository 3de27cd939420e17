package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type ScreeningHandler struct {
	appRepo    repositories.ApplicationRepository
	screening  services.ScreeningService
	worker     services.Worker
	summarizer services.ResumeSummarizer
	questions  services.InterviewQuestionGenerator
}

func NewScreeningHandler(
	appRepo repositories.ApplicationRepository,
	screening services.ScreeningService,
	worker services.Worker,
	summarizer services.ResumeSummarizer,
	questions services.InterviewQuestionGenerator,
) *ScreeningHandler {
	return &ScreeningHandler{
		appRepo:    appRepo,
		screening:  screening,
		worker:     worker,
		summarizer: summarizer,
		questions:  questions,
	}
}

// HandleScreen handles POST /admin/applications/:id/screen
//
// A completed application is only screened again with ?force=true.
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id", "application")
	if err != nil {
		return err
	}

	app, err := h.appRepo.FindByID(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}

	if app.ScreeningStatus == models.ScreeningCompleted && !c.QueryBool("force") {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Application already screened; pass force=true to screen again",
		})
	}

	analysis, err := h.screening.ScreenApplication(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ScreeningResponse{
		ID:              appID.String(),
		ScreeningStatus: string(models.ScreeningCompleted),
		Analysis:        analysis,
		DegradedFields:  services.DegradedFields(analysis),
	})
}

// HandleScreenAsync handles POST /admin/applications/:id/screen/async
func (h *ScreeningHandler) HandleScreenAsync(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id", "application")
	if err != nil {
		return err
	}

	app, err := h.appRepo.FindByID(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}

	if app.ScreeningStatus == models.ScreeningCompleted && !c.QueryBool("force") {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Application already screened; pass force=true to screen again",
		})
	}

	// Enqueue job to worker
	if err := h.worker.EnqueueJob(appID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ScreeningResponse{
		ID:              appID.String(),
		ScreeningStatus: string(app.ScreeningStatus),
	})
}

// HandleInterviewQuestions handles POST /admin/applications/:id/interview-questions
func (h *ScreeningHandler) HandleInterviewQuestions(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id", "application")
	if err != nil {
		return err
	}

	app, err := h.appRepo.FindByID(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.summarizer.SummarizeResume(c.UserContext(), app)
	if err != nil {
		return respondError(c, err)
	}

	questions, err := h.questions.GenerateInterviewQuestions(c.UserContext(), app.CoverLetter, summary)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.InterviewQuestionsResponse{
		ApplicationID: appID.String(),
		Questions:     questions,
	})
}
