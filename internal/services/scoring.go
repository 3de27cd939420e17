package services

import "github.com/PathSynch-CEO/careers-page-v2/internal/models"

// Criterion weights. They sum to 1.0 and are not configurable.
const (
	WeightSkillsAndRoleAlignment   = 0.4
	WeightRelevantExperience       = 0.3
	WeightEducation                = 0.1
	WeightQuantifiableAchievements = 0.2
)

// The same weights in tenths, so the overall score is computed without
// floating point.
const (
	skillsTenths       = 4
	experienceTenths   = 3
	educationTenths    = 1
	achievementsTenths = 2
)

// FailedAnalysisJustification marks a criterion whose analyzer did not produce a result.
const FailedAnalysisJustification = "Analysis failed or data not available."

// FailedCriterion is the placeholder for a criterion that could not be scored.
func FailedCriterion() models.EvaluationCriterion {
	return models.EvaluationCriterion{Score: 0, Justification: FailedAnalysisJustification}
}

// OverallScore returns round_half_up(0.4a + 0.3b + 0.1c + 0.2d). Inputs are
// clamped to [0, 100].
func OverallScore(skills, experience, education, achievements int) int {
	tenths := skillsTenths*clampScore(skills) +
		experienceTenths*clampScore(experience) +
		educationTenths*clampScore(education) +
		achievementsTenths*clampScore(achievements)

	return (tenths + 5) / 10
}

// CombineAnalyses merges both analyzer results into the stored aggregate.
// A nil side is replaced with failed placeholders and no skills.
func CombineAnalyses(resume *models.ResumeAnalysis, coverLetter *models.CoverLetterAnalysis) *models.AIScreeningAnalysis {
	analysis := &models.AIScreeningAnalysis{
		SkillsAndRoleAlignment:   FailedCriterion(),
		RelevantExperience:       FailedCriterion(),
		Education:                FailedCriterion(),
		QuantifiableAchievements: FailedCriterion(),
		ExtractedSkills:          []string{},
	}

	if resume != nil {
		analysis.SkillsAndRoleAlignment = resume.SkillsAndRoleAlignment
		analysis.RelevantExperience = resume.RelevantExperience
		analysis.Education = resume.Education
		if resume.ExtractedSkills != nil {
			analysis.ExtractedSkills = resume.ExtractedSkills
		}
	}

	if coverLetter != nil {
		analysis.QuantifiableAchievements = coverLetter.QuantifiableAchievements
	}

	analysis.OverallScore = OverallScore(
		analysis.SkillsAndRoleAlignment.Score,
		analysis.RelevantExperience.Score,
		analysis.Education.Score,
		analysis.QuantifiableAchievements.Score,
	)

	return analysis
}

// DegradedFields names the criteria that carry the failure placeholder.
func DegradedFields(analysis *models.AIScreeningAnalysis) []string {
	if analysis == nil {
		return nil
	}

	var fields []string
	criteria := []struct {
		name      string
		criterion models.EvaluationCriterion
	}{
		{"skills_and_role_alignment", analysis.SkillsAndRoleAlignment},
		{"relevant_experience", analysis.RelevantExperience},
		{"education", analysis.Education},
		{"quantifiable_achievements", analysis.QuantifiableAchievements},
	}
	for _, c := range criteria {
		if c.criterion.Score == 0 && c.criterion.Justification == FailedAnalysisJustification {
			fields = append(fields, c.name)
		}
	}
	return fields
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
