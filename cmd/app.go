package main

import (
	"context"
	"time"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/config"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/database"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/cache"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/events"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/extract"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/llm"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// coreModule provides everything below the HTTP layer.
func coreModule(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),

		// Infrastructure
		fx.Provide(
			database.NewDatabase,
			NewCache,
			NewPublisher,
			NewLLMClient,
			func(cfg *config.Config) extract.Extractor {
				return extract.NewHTTPExtractor(time.Duration(cfg.Extract.TimeoutSeconds) * time.Second)
			},
		),

		// Repositories Layer
		fx.Provide(
			repository.NewResumeRepository,
			repository.NewAssessmentRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTextService,
			service.NewGeneratorService,
			service.NewAIJudgeService,
			service.NewReportService,
			service.NewResumeAdminService,
			func(
				assessmentRepo repository.AssessmentRepository,
				attemptRepo repository.AttemptRepository,
				cacheService cache.CacheService,
				cfg *config.Config,
			) service.AttemptService {
				ttl := time.Duration(cfg.Redis.CacheTTLSeconds) * time.Second
				return service.NewAttemptService(assessmentRepo, attemptRepo, cacheService, ttl)
			},
			func(
				assessmentRepo repository.AssessmentRepository,
				attemptRepo repository.AttemptRepository,
				answerRepo repository.AnswerRepository,
				judge service.AIJudgeService,
				reports service.ReportService,
				cacheService cache.CacheService,
				publisher events.Publisher,
				cfg *config.Config,
			) service.GradingService {
				return service.NewGradingService(assessmentRepo, attemptRepo, answerRepo, judge, reports, cacheService, publisher, cfg.Grading.Concurrency)
			},
		),
	)
}

func NewCache(lc fx.Lifecycle, cfg *config.Config) cache.CacheService {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cacheService, client := cache.New(ctx, cfg.Redis.URL)
	if client != nil {
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return closeRedis(client) }})
	}
	return cacheService
}

func closeRedis(client *redis.Client) error {
	log.Info().Msg("Closing redis client")
	return client.Close()
}

func NewPublisher(lc fx.Lifecycle, cfg *config.Config) (events.Publisher, error) {
	publisher, err := events.NewPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.Kafka.Brokers,
		TopicName:    cfg.Kafka.Topic,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return publisher.Close() }})
	return publisher, nil
}

func NewLLMClient(lc fx.Lifecycle, cfg *config.Config) (llm.Client, error) {
	client, err := llm.NewGeminiClient(context.Background(), llm.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
	return client, nil
}
