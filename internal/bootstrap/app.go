package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/ai"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/app"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/cache"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/config"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/mail"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
	mysqlClient "github.com/ammarraza1199/Mock-interview-Backend/internal/platform/mysql"
	rabbitmqClient "github.com/ammarraza1199/Mock-interview-Backend/internal/platform/rabbitmq"
	redisClient "github.com/ammarraza1199/Mock-interview-Backend/internal/platform/redis"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/repository"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/worker"
)

type App struct {
	Config            *config.Config
	MySQL             *gorm.DB
	Redis             *redis.Client
	MQConn            *amqp.Connection
	FeedbackWorker    *worker.FeedbackPersistWorker
	FeedbackPublisher *rabbitmqClient.FeedbackPublisher

	Cipher      *filecrypt.Cipher
	Generator   app.TextGenerator
	Transcriber app.Transcriber
	Mailer      app.Mailer
	RateLimiter *cache.RateLimiter

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	cipher, err := filecrypt.New(cfg.Crypto.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("init artifact cipher failed: %w", err)
	}

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Upload{},
		&model.Feedback{},
		&model.AnalysisFeedback{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	feedbackRepo := repository.NewFeedbackRepository(mysqlDB)
	feedbackWorker := worker.NewFeedbackPersistWorker(mqConn, feedbackRepo, cfg.RabbitMQ.FeedbackPersistQueue)
	if err := feedbackWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start feedback worker failed: %w", err)
	}

	return &App{
		Config:            cfg,
		MySQL:             mysqlDB,
		Redis:             redisCli,
		MQConn:            mqConn,
		FeedbackWorker:    feedbackWorker,
		FeedbackPublisher: rabbitmqClient.NewFeedbackPublisher(mqConn, cfg.RabbitMQ.FeedbackPersistQueue),
		Cipher:            cipher,
		Generator:         generator,
		Transcriber:       ai.NewAssemblyAITranscriber(cfg.AssemblyAI.APIKey),
		Mailer:            mail.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From),
		RateLimiter:       cache.NewRateLimiter(redisCli, cfg.RateLimit.AIRequestsPerMinute, time.Minute),
		StartedAt:         time.Now(),
	}, nil
}

func newGenerator(ctx context.Context, cfg *config.Config) (app.TextGenerator, error) {
	switch cfg.LLM.Provider {
	case "gemini", "":
		return ai.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	case "openai":
		return ai.NewOpenAICompatibleClient(ai.ChatConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.FeedbackWorker != nil {
		a.FeedbackWorker.Close()
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
