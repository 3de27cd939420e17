package services

import (
	"fmt"
	"strings"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the prompt for the resume criteria. The
// resume itself travels as an inline document next to this text.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(jobDescription, experienceYears string) string {
	return fmt.Sprintf(`You are an experienced recruiter screening a candidate for an open position.
The candidate's resume is attached as a document.

JOB DESCRIPTION:
%s

CANDIDATE'S SELF-REPORTED EXPERIENCE:
%s

Step 1: list the technical and soft skills the resume demonstrates as a flat list of short strings.

Step 2: score the candidate from 0 to 100 on each criterion and give a short justification:
1. skills_and_role_alignment - how closely the skills and past work in the resume match the core duties and requirements of the job description.
2. relevant_experience - whether the resume supports the self-reported experience band (%s). Judge the depth and relevance of the roles held, not only how long they lasted.
3. education - whether the candidate holds the degrees, certifications or qualifications the job asks for. Count equivalent hands-on experience where it reasonably substitutes.

Return only JSON:
{
  "skills_and_role_alignment": {"score": <0-100>, "justification": "<1-3 sentences>"},
  "relevant_experience": {"score": <0-100>, "justification": "<1-3 sentences>"},
  "education": {"score": <0-100>, "justification": "<1-3 sentences>"},
  "extracted_skills": ["<skill>", "..."]
}`, jobDescription, experienceYears, experienceYears)
}

// BuildCoverLetterAnalysisPrompt creates the prompt for the cover letter criterion.
func (pb *PromptBuilder) BuildCoverLetterAnalysisPrompt(coverLetter, jobDescription string) string {
	return fmt.Sprintf(`You are an experienced recruiter reading a candidate's cover letter for an open position.

JOB DESCRIPTION:
%s

COVER LETTER:
%s

Score from 0 to 100 how well the letter shows quantifiable achievements and impact in previous roles:
metrics, project outcomes, or concrete descriptions of what changed because of the candidate's work.

Return only JSON:
{
  "quantifiable_achievements": {"score": <0-100>, "justification": "<1-3 sentences>"}
}`, jobDescription, coverLetter)
}

// BuildInterviewQuestionsPrompt creates the prompt for recruiter interview questions.
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(coverLetter, resumeSummary string) string {
	return fmt.Sprintf(`You help recruiters prepare for candidate interviews.

Using the cover letter and resume below, write interview questions that test the candidate's
skills, experience and fit for the role. Refer to specifics from the documents where possible.

COVER LETTER:
%s

RESUME:
%s

Return only JSON:
{
  "questions": ["<question>", "..."]
}`, coverLetter, resumeSummary)
}

// BuildJobDescriptionPrompt creates the prompt that turns an attached job
// posting document into structured fields.
func (pb *PromptBuilder) BuildJobDescriptionPrompt() string {
	return `You are an expert at reading job postings from PDF and Word documents.
The posting is attached as a document.

Extract the job title, the department, the location and a comprehensive description of the
responsibilities and qualifications. Format the location as "City, State". Use an empty string
for a department or location the document does not state.

Return only JSON:
{
  "title": "<job title>",
  "department": "<department>",
  "location": "<City, State>",
  "description": "<full description>"
}`
}

// BuildCandidateProfile renders a screened candidate as plain text for embedding.
func (pb *PromptBuilder) BuildCandidateProfile(jobTitle string, analysis *models.AIScreeningAnalysis) string {
	var sb strings.Builder

	if jobTitle != "" {
		sb.WriteString(fmt.Sprintf("Applied for: %s\n", jobTitle))
	}
	if len(analysis.ExtractedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(analysis.ExtractedSkills, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Skills and role alignment: %s\n", analysis.SkillsAndRoleAlignment.Justification))
	sb.WriteString(fmt.Sprintf("Relevant experience: %s\n", analysis.RelevantExperience.Justification))
	sb.WriteString(fmt.Sprintf("Education: %s\n", analysis.Education.Justification))
	sb.WriteString(fmt.Sprintf("Achievements: %s\n", analysis.QuantifiableAchievements.Justification))

	return sb.String()
}
