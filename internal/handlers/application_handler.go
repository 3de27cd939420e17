package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type ApplicationHandler struct {
	jobRepo        repositories.JobRepository
	appRepo        repositories.ApplicationRepository
	storageService services.StorageService
	maxFileSize    int64
	log            *zap.Logger
}

func NewApplicationHandler(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	storageService services.StorageService,
	maxFileSize int64,
	log *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		jobRepo:        jobRepo,
		appRepo:        appRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            logger.OrNop(log),
	}
}

// HandleSubmitApplication handles POST /jobs/:id/applications
func (h *ApplicationHandler) HandleSubmitApplication(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return err
	}

	job, err := h.jobRepo.FindByID(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, err)
	}

	if !job.AcceptsApplications() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This job is not accepting applications",
		})
	}

	var req models.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": extractValidationErrors(err),
		})
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, _, err := h.storageService.SaveFile(resumeFile, "resume")
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now()
	app := &models.Application{
		ID:                 uuid.New(),
		JobID:              job.ID,
		JobTitle:           job.Title,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.TrimSpace(req.Email),
		Phone:              strings.TrimSpace(req.Phone),
		LinkedinURL:        optionalString(req.LinkedinURL),
		PortfolioURL:       optionalString(req.PortfolioURL),
		CoverLetter:        req.CoverLetter,
		AvailableStartDate: req.AvailableStartDate,
		ExperienceYears:    req.ExperienceYears,
		ResumeRef:          filename,
		Status:             models.ApplicationSubmitted,
		ScreeningStatus:    models.ScreeningPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.appRepo.Create(c.UserContext(), app); err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(filename); delErr != nil {
			h.log.Warn("failed to remove orphaned resume", zap.String("resume_ref", filename), zap.Error(delErr))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save application",
		})
	}

	h.log.Info("application submitted", logger.ApplicationID(app.ID), logger.JobID(job.ID))

	return c.Status(fiber.StatusCreated).JSON(models.SubmitApplicationResponse{
		ID:              app.ID.String(),
		Status:          string(app.Status),
		ScreeningStatus: string(app.ScreeningStatus),
	})
}

// HandleGetApplication handles GET /admin/applications/:id
func (h *ApplicationHandler) HandleGetApplication(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id", "application")
	if err != nil {
		return err
	}

	app, err := h.appRepo.FindByID(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(app)
}

// HandleUpdateStatus handles PATCH /admin/applications/:id/status
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	appID, err := parseIDParam(c, "id", "application")
	if err != nil {
		return err
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": extractValidationErrors(err),
		})
	}

	status := models.ApplicationStatus(req.Status)
	if err := h.appRepo.UpdateStatus(c.UserContext(), appID, status); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":     appID.String(),
		"status": status,
	})
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
