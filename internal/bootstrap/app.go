package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/storage"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cofflyze-api/internal/config"
	"cofflyze-api/internal/model"
	gcsClient "cofflyze-api/internal/platform/gcs"
	mysqlClient "cofflyze-api/internal/platform/mysql"
	rabbitmqClient "cofflyze-api/internal/platform/rabbitmq"
	redisClient "cofflyze-api/internal/platform/redis"
	"cofflyze-api/internal/vision"
	"cofflyze-api/internal/worker"
)

// App holds the process-wide resources. Redis and MQConn are nil when
// their section is not configured.
type App struct {
	Config     *config.Config
	Location   *time.Location
	MySQL      *gorm.DB
	GCS        *storage.Client
	Images     *gcsClient.ImageStore
	Classifier *vision.Classifier
	Redis      *redis.Client
	MQConn     *amqp.Connection

	OrphanWorker *worker.OrphanCleanupWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone failed: %w", err)
	}

	a := &App{Config: cfg, Location: loc}
	if err := a.open(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			log.Printf("close partially opened resources failed: %v", closeErr)
		}
		return nil, err
	}
	a.StartedAt = time.Now()
	return a, nil
}

func (a *App) open(ctx context.Context) error {
	cfg := a.Config

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return err
	}
	a.MySQL = mysqlDB
	if err := mysqlDB.AutoMigrate(&model.Prediction{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}

	gcs, err := gcsClient.New(ctx, cfg.GCS.CredentialsFile)
	if err != nil {
		return err
	}
	a.GCS = gcs
	a.Images = gcsClient.NewImageStore(gcs, cfg.GCS.Bucket)

	classifier, err := vision.NewClassifier(cfg.Vision.ModelPath, cfg.Vision.ONNXSharedLibPath)
	if err != nil {
		return fmt.Errorf("load model failed: %w", err)
	}
	a.Classifier = classifier
	log.Printf("model loaded from %s", classifier.ModelPath())

	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		a.Redis = redisCli
	}

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.OrphanQueue)
		if err != nil {
			return err
		}
		a.MQConn = mqConn

		orphanWorker := worker.NewOrphanCleanupWorker(mqConn, a.Images, cfg.RabbitMQ.OrphanQueue)
		if err := orphanWorker.Start(ctx); err != nil {
			return fmt.Errorf("start orphan cleanup worker failed: %w", err)
		}
		a.OrphanWorker = orphanWorker
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.OrphanWorker != nil {
		a.OrphanWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Classifier != nil {
		if err := a.Classifier.Close(); err != nil {
			closeErr = err
		}
	}
	if a.GCS != nil {
		if err := a.GCS.Close(); err != nil {
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
