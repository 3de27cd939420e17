// Package bootstrap wires configuration, storage and AI clients into the
// services shared by the API server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PathSynch-CEO/careers-page-v2/internal/config"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type Container struct {
	DB        *gorm.DB
	Jobs      repositories.JobRepository
	Apps      repositories.ApplicationRepository
	Storage   services.StorageService
	Screening services.ScreeningService
	Index     services.CandidateIndex
	Export    services.ExportService
	Questions services.InterviewQuestionGenerator
	JobParser services.JobDescriptionParser
	Summaries services.ResumeSummarizer
	Worker    services.Worker

	cache *services.RedisCache
}

// New connects to every backing store named in cfg. The candidate index is
// left nil when no Qdrant URL is configured.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	c := &Container{
		DB:   db,
		Jobs: repositories.NewJobRepository(db),
		Apps: repositories.NewApplicationRepository(db),
	}
	log.Info("✅ Repositories initialized")

	c.Storage = services.NewStorageService(cfg.Storage.UploadPath)
	if err := c.Storage.EnsureUploadDir(); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)
	if err != nil {
		return nil, fmt.Errorf("initialize gemini: %w", err)
	}
	log.Info("✅ Gemini AI initialized", zap.String("ai_model", gemini.Model()))

	if cfg.Qdrant.URL != "" {
		qdrant, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Qdrant.VectorSize, log)
		if err != nil {
			return nil, fmt.Errorf("initialize qdrant: %w", err)
		}
		if err := qdrant.InitCollection(ctx); err != nil {
			return nil, fmt.Errorf("initialize qdrant collection: %w", err)
		}
		c.Index = services.NewCandidateIndex(gemini, qdrant, log)
		log.Info("✅ Qdrant initialized", zap.String("collection", cfg.Qdrant.Collection))
	} else {
		log.Warn("QDRANT_URL not set, candidate index disabled")
	}

	c.cache = services.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, log)

	evaluator := services.NewCriterionEvaluator(gemini, cfg.Gemini.Timeout, cfg.Gemini.MaxRetries, log)
	tracker := services.NewStatusTracker(c.Apps, cfg.Worker.StaleScreeningAfter, log)

	c.Screening = services.NewScreeningService(
		c.Apps,
		c.Jobs,
		c.Storage,
		services.NewResumeAnalyzer(evaluator),
		services.NewCoverLetterAnalyzer(evaluator),
		tracker,
		c.Index,
		log,
	)
	c.Questions = services.NewInterviewQuestionGenerator(evaluator, c.cache, log)
	c.JobParser = services.NewJobDescriptionParser(evaluator)
	c.Summaries = services.NewResumeSummarizer(c.Storage, services.NewPDFParserService(), log)
	c.Export = services.NewExportService(c.Jobs, c.Apps)
	c.Worker = services.NewWorker(c.Apps, c.Screening, services.WorkerOptions{
		Concurrency:  cfg.Worker.Concurrency,
		QueueSize:    cfg.Worker.QueueSize,
		AutoScreen:   cfg.Worker.AutoScreen,
		PollInterval: cfg.Worker.PollInterval,
	}, log)
	log.Info("✅ Services initialized")

	return c, nil
}

// Close releases the cache and database connections.
func (c *Container) Close() error {
	var firstErr error
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
