package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"webqa/internal/ai"
	appsvc "webqa/internal/app"
	"webqa/internal/cache"
	"webqa/internal/config"
	"webqa/internal/fetcher"
	"webqa/internal/model"
	mysqlClient "webqa/internal/platform/mysql"
	rabbitmqClient "webqa/internal/platform/rabbitmq"
	redisClient "webqa/internal/platform/redis"
	"webqa/internal/repository"
	"webqa/internal/worker"
)

// App holds the pipeline and the optional infrastructure behind it. Redis, MySQL and
// RabbitMQ are nil unless enabled in config.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Pipeline  *appsvc.Pipeline
	Redis     *redis.Client
	MySQL     *gorm.DB
	MQConn    *amqp.Connection
	RunRepo   *repository.IngestRunRepository
	RunWorker *worker.IngestRunWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := newLogger(cfg)
	a := &App{Config: cfg, Logger: logger, StartedAt: time.Now()}

	deps := appsvc.PipelineDeps{Logger: logger}

	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		deps.Cache = cache.NewAnswerCache(a.Redis, cfg.AnswerTTL())
	}

	if cfg.History.Enabled {
		if err := a.startHistory(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		deps.Recorder = rabbitmqClient.NewIngestRunPublisher(a.MQConn, cfg.RabbitMQ.IngestRunQueue)
	}

	llmClient := ai.NewOpenAICompatibleClient(cfg.LLMTimeout())
	deps.Fetcher = fetcher.New(cfg.FetchTimeout(), cfg.Ingest.UserAgent, cfg.Ingest.MaxPageBytes)
	deps.Embedder = ai.NewEmbeddingModel(llmClient, ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	}, cfg.LLM.EmbeddingBatchSize)
	deps.Synthesizer = appsvc.NewSynthesizer(llmClient, ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})

	a.Pipeline = appsvc.NewPipeline(deps, appsvc.Options{
		ChunkSize:     cfg.Ingest.ChunkSize,
		ChunkOverlap:  cfg.Ingest.ChunkOverlap,
		TopK:          cfg.Ingest.TopK,
		FailurePolicy: cfg.Ingest.FailurePolicy,
	})

	if cfg.LLM.APIKey == "" {
		logger.Warn("no LLM API key configured; ingestion and queries will fail until LLM_API_KEY is set")
	}
	return a, nil
}

func (a *App) startHistory(ctx context.Context) error {
	cfg := a.Config

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return err
	}
	a.MySQL = mysqlDB
	if err := mysqlDB.AutoMigrate(&model.IngestRun{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	a.RunRepo = repository.NewIngestRunRepository(mysqlDB)

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.IngestRunQueue)
	if err != nil {
		return err
	}
	a.MQConn = mqConn

	a.RunWorker = worker.NewIngestRunWorker(mqConn, a.RunRepo, cfg.RabbitMQ.IngestRunQueue, a.Logger)
	if err := a.RunWorker.Start(ctx); err != nil {
		return fmt.Errorf("start ingest run worker failed: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.App.Env != "dev" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With("app", cfg.App.Name)
	slog.SetDefault(logger)
	return logger
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.RunWorker != nil {
		a.RunWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
