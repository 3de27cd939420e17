package models

type SubmitApplicationRequest struct {
	FirstName          string `form:"first_name" json:"first_name" validate:"required"`
	LastName           string `form:"last_name" json:"last_name" validate:"required"`
	Email              string `form:"email" json:"email" validate:"required,email"`
	Phone              string `form:"phone" json:"phone" validate:"required"`
	LinkedinURL        string `form:"linkedin_url" json:"linkedin_url" validate:"omitempty,url"`
	PortfolioURL       string `form:"portfolio_url" json:"portfolio_url" validate:"omitempty,url"`
	CoverLetter        string `form:"cover_letter" json:"cover_letter" validate:"required"`
	AvailableStartDate string `form:"available_start_date" json:"available_start_date" validate:"required"`
	ExperienceYears    string `form:"experience_years" json:"experience_years" validate:"required"`
}

type SubmitApplicationResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ScreeningStatus string `json:"screening_status"`
}

type CreateJobRequest struct {
	Title             string `json:"title" validate:"required,min=3"`
	Department        string `json:"department" validate:"required,min=2"`
	City              string `json:"city" validate:"required,min=2"`
	State             string `json:"state" validate:"required,min=2"`
	RemoteOption      bool   `json:"remote_option"`
	RemoteType        string `json:"remote_type" validate:"required_if=RemoteOption true"`
	Description       string `json:"description" validate:"required,min=10"`
	ApplicationMethod string `json:"application_method" validate:"required,oneof=enabled internal-only unlisted disabled"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted feedback interviewing offer hired disqualified"`
}

type ScreeningResponse struct {
	ID              string               `json:"id"`
	ScreeningStatus string               `json:"screening_status"`
	Analysis        *AIScreeningAnalysis `json:"analysis,omitempty"`
	DegradedFields  []string             `json:"degraded_fields,omitempty"`
}

type InterviewQuestionsResponse struct {
	ApplicationID string   `json:"application_id"`
	Questions     []string `json:"questions"`
}

type CandidateSearchResponse struct {
	ApplicationID string   `json:"application_id"`
	JobID         string   `json:"job_id"`
	OverallScore  int      `json:"overall_score"`
	Skills        []string `json:"skills"`
	Similarity    float32  `json:"similarity"`
}
