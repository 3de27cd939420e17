package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
)

type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertCandidate(ctx context.Context, point CandidatePoint) error
	SearchCandidates(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]CandidateMatch, error)
	DeleteCandidate(ctx context.Context, applicationID uuid.UUID) error
}

// CandidatePoint is one screened application stored in the vector index.
type CandidatePoint struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	OverallScore  int
	Skills        []string
	Profile       string
	Embedding     []float32
}

type CandidateMatch struct {
	ApplicationID string
	JobID         string
	OverallScore  int
	Skills        []string
	Similarity    float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize uint64, log *zap.Logger) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	if vectorSize == 0 {
		vectorSize = 768
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		log:            logger.OrNop(log),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Info("✅ Collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("✅ Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// UpsertCandidate implements QdrantService. The point id is the application
// id, so re-screening replaces the earlier point.
func (q *qdrantService) UpsertCandidate(ctx context.Context, point CandidatePoint) error {
	skills := make([]interface{}, 0, len(point.Skills))
	for _, s := range point.Skills {
		skills = append(skills, s)
	}

	payload, err := qdrant.TryValueMap(map[string]interface{}{
		"application_id": point.ApplicationID.String(),
		"job_id":         point.JobID.String(),
		"overall_score":  int64(point.OverallScore),
		"skills":         skills,
		"profile":        point.Profile,
	})
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(point.ApplicationID.String()),
			Vectors: qdrant.NewVectors(point.Embedding...),
			Payload: payload,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchCandidates implements QdrantService.
func (q *qdrantService) SearchCandidates(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]CandidateMatch, error) {
	var filter *qdrant.Filter
	if jobID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_id", jobID),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]CandidateMatch, 0, len(points))
	for _, point := range points {
		payload := point.Payload

		match := CandidateMatch{
			ApplicationID: payload["application_id"].GetStringValue(),
			JobID:         payload["job_id"].GetStringValue(),
			OverallScore:  int(payload["overall_score"].GetIntegerValue()),
			Skills:        []string{},
			Similarity:    point.Score,
		}
		for _, v := range payload["skills"].GetListValue().GetValues() {
			match.Skills = append(match.Skills, v.GetStringValue())
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteCandidate implements QdrantService.
func (q *qdrantService) DeleteCandidate(ctx context.Context, applicationID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(applicationID.String())),
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}

	return nil
}
