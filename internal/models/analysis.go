package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// EvaluationCriterion is one scored axis produced by the evaluator.
type EvaluationCriterion struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// UnmarshalJSON accepts integral scores written as floats (e.g. 85.0).
func (c *EvaluationCriterion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Score         float64 `json:"score"`
		Justification string  `json:"justification"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Score != math.Trunc(raw.Score) {
		return fmt.Errorf("score %v is not an integer", raw.Score)
	}
	c.Score = int(raw.Score)
	c.Justification = raw.Justification
	return nil
}

type ResumeAnalysis struct {
	SkillsAndRoleAlignment EvaluationCriterion `json:"skills_and_role_alignment"`
	RelevantExperience     EvaluationCriterion `json:"relevant_experience"`
	Education              EvaluationCriterion `json:"education"`
	ExtractedSkills        []string            `json:"extracted_skills"`
}

type CoverLetterAnalysis struct {
	QuantifiableAchievements EvaluationCriterion `json:"quantifiable_achievements"`
}

// AIScreeningAnalysis is the persisted aggregate. OverallScore is always
// derived from the four criteria and is never edited on its own.
type AIScreeningAnalysis struct {
	OverallScore             int                 `json:"overall_score"`
	SkillsAndRoleAlignment   EvaluationCriterion `json:"skills_and_role_alignment"`
	RelevantExperience       EvaluationCriterion `json:"relevant_experience"`
	Education                EvaluationCriterion `json:"education"`
	QuantifiableAchievements EvaluationCriterion `json:"quantifiable_achievements"`
	ExtractedSkills          []string            `json:"extracted_skills"`
}
