package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type CandidateHandler struct {
	index services.CandidateIndex
}

func NewCandidateHandler(index services.CandidateIndex) *CandidateHandler {
	return &CandidateHandler{index: index}
}

// HandleSearch handles GET /admin/candidates/search?q=&job_id=&limit=
func (h *CandidateHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	jobID := uuid.Nil
	if raw := c.Query("job_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job_id format",
			})
		}
		jobID = parsed
	}

	matches, err := h.index.SearchCandidates(c.UserContext(), query, jobID, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}

	results := make([]models.CandidateSearchResponse, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.CandidateSearchResponse{
			ApplicationID: m.ApplicationID,
			JobID:         m.JobID,
			OverallScore:  m.OverallScore,
			Skills:        m.Skills,
			Similarity:    m.Similarity,
		})
	}

	return c.JSON(results)
}
