package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
)

// CriterionEvaluator runs one structured-output evaluation. On success out
// holds a value that satisfied req.Schema; on any failure out is untouched
// and the error wraps ErrAnalysisFailure.
type CriterionEvaluator interface {
	Evaluate(ctx context.Context, req EvaluationRequest, out any) error
}

type EvaluationRequest struct {
	Task     string
	Prompt   string
	Document *Document
	Schema   string
}

type criterionEvaluator struct {
	gemini     GeminiService
	timeout    time.Duration
	maxRetries int
	log        *zap.Logger
}

func NewCriterionEvaluator(gemini GeminiService, timeout time.Duration, maxRetries int, log *zap.Logger) CriterionEvaluator {
	return &criterionEvaluator{
		gemini:     gemini,
		timeout:    timeout,
		maxRetries: maxRetries,
		log:        logger.OrNop(log),
	}
}

func (e *criterionEvaluator) Evaluate(ctx context.Context, req EvaluationRequest, out any) error {
	log := e.log.With(logger.Task(req.Task))

	if strings.TrimSpace(req.Schema) == "" {
		return fmt.Errorf("%w: %s: no response schema", ErrAnalysisFailure, req.Task)
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := e.gemini.GenerateJSONWithRetry(callCtx, GenerateRequest{
		Prompt:         req.Prompt,
		Document:       req.Document,
		ResponseSchema: json.RawMessage(req.Schema),
		Temperature:    0.2,
	}, e.maxRetries)
	if err != nil {
		log.Warn("evaluator call failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrAnalysisFailure, req.Task, err)
	}

	payload := extractJSON(raw)
	if payload == "" {
		return fmt.Errorf("%w: %s: empty response", ErrAnalysisFailure, req.Task)
	}

	if err := validateJSON(req.Schema, payload); err != nil {
		log.Warn("evaluator output rejected",
			zap.String("output", logger.Truncate(payload, 300)),
			zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrAnalysisFailure, req.Task, err)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %w", ErrAnalysisFailure, req.Task, err)
	}

	log.Debug("evaluator call succeeded", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// SchemaViolation lists the fields of a document that did not satisfy its schema.
type SchemaViolation struct {
	Fields []string
}

func (v *SchemaViolation) Error() string {
	return "response does not match schema: " + strings.Join(v.Fields, "; ")
}

func validateJSON(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violation := &SchemaViolation{Fields: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violation.Fields = append(violation.Fields, field+": "+desc.Description())
	}
	return violation
}

// extractJSON strips markdown fences and surrounding prose from a model reply.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}

	return text[start : end+1]
}
