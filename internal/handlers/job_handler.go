package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobHandler struct {
	jobRepo     repositories.JobRepository
	export      services.ExportService
	storage     services.StorageService
	parser      services.JobDescriptionParser
	maxFileSize int64
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	export services.ExportService,
	storage services.StorageService,
	parser services.JobDescriptionParser,
	maxFileSize int64,
) *JobHandler {
	return &JobHandler{
		jobRepo:     jobRepo,
		export:      export,
		storage:     storage,
		parser:      parser,
		maxFileSize: maxFileSize,
	}
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.ListOpen(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	return c.JSON(jobs)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return err
	}

	job, err := h.jobRepo.FindByID(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, err)
	}

	if job.ApplicationMethod == models.ApplicationMethodInternalOnly || !job.IsActive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(job)
}

// HandleCreateJob handles POST /admin/jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

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

	var remoteType *string
	if req.RemoteOption {
		if !models.IsValidRemoteType(req.RemoteType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid remote_type %q", req.RemoteType),
			})
		}
		rt := req.RemoteType
		remoteType = &rt
	}

	now := time.Now()
	job := &models.Job{
		ID:                uuid.New(),
		Title:             strings.TrimSpace(req.Title),
		Department:        strings.TrimSpace(req.Department),
		City:              strings.TrimSpace(req.City),
		State:             strings.TrimSpace(req.State),
		RemoteOption:      req.RemoteOption,
		RemoteType:        remoteType,
		Description:       req.Description,
		IsActive:          true,
		ApplicationMethod: models.ApplicationMethod(req.ApplicationMethod),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.jobRepo.Create(c.UserContext(), job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleParseJobDocument handles POST /admin/jobs/from-document
//
// The posting is parsed into a draft for the admin to review; nothing is saved.
func (h *JobHandler) HandleParseJobDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Document too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	doc, err := h.storage.ReadUpload(file)
	if err != nil {
		return respondError(c, err)
	}

	draft, err := h.parser.ParseJobDescription(c.UserContext(), *doc)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(draft)
}

// HandleExportApplications handles GET /admin/jobs/:id/applications/export
func (h *JobHandler) HandleExportApplications(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return err
	}

	buf, filename, err := h.export.ExportJobApplications(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, err)
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
