package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	FieldApplicationID = "application_id"
	FieldJobID         = "job_id"
	FieldTask          = "task"
	FieldModel         = "ai_model"
)

func ApplicationID(id uuid.UUID) zap.Field {
	return zap.String(FieldApplicationID, id.String())
}

func JobID(id uuid.UUID) zap.Field {
	return zap.String(FieldJobID, id.String())
}

func Task(name string) zap.Field {
	return zap.String(FieldTask, name)
}

func Model(name string) zap.Field {
	return zap.String(FieldModel, name)
}
