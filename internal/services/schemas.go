package services

// JSON schemas handed to the model as its response schema and re-checked
// locally before any output is decoded.

const criterionSchemaFragment = `{
      "type": "object",
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "justification": {"type": "string", "minLength": 1}
      },
      "required": ["score", "justification"]
    }`

const resumeAnalysisSchema = `{
  "type": "object",
  "properties": {
    "skills_and_role_alignment": ` + criterionSchemaFragment + `,
    "relevant_experience": ` + criterionSchemaFragment + `,
    "education": ` + criterionSchemaFragment + `,
    "extracted_skills": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["skills_and_role_alignment", "relevant_experience", "education", "extracted_skills"]
}`

const coverLetterAnalysisSchema = `{
  "type": "object",
  "properties": {
    "quantifiable_achievements": ` + criterionSchemaFragment + `
  },
  "required": ["quantifiable_achievements"]
}`

const interviewQuestionsSchema = `{
  "type": "object",
  "properties": {
    "questions": {"type": "array", "items": {"type": "string", "minLength": 1}}
  },
  "required": ["questions"]
}`

const jobDescriptionSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "department": {"type": "string"},
    "location": {"type": "string"},
    "description": {"type": "string", "minLength": 1}
  },
  "required": ["title", "department", "location", "description"]
}`
