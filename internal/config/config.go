package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	MySQL    MySQLConfig    `toml:"mysql"`
	GCS      GCSConfig      `toml:"gcs"`
	Vision   VisionConfig   `toml:"vision"`
	Predict  PredictConfig  `toml:"predict"`
	Storage  StorageConfig  `toml:"storage"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

type GCSConfig struct {
	Bucket          string `toml:"bucket"`
	CredentialsFile string `toml:"credentials_file"`
}

type VisionConfig struct {
	ModelPath         string `toml:"model_path"`
	ONNXSharedLibPath string `toml:"onnx_shared_lib_path"`
}

type PredictConfig struct {
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	Timezone            string  `toml:"timezone"`
	MaxUploadMB         int     `toml:"max_upload_mb"`
}

type StorageConfig struct {
	// CleanupOrphans deletes uploaded images whose request failed after the
	// upload. Off by default.
	CleanupOrphans bool `toml:"cleanup_orphans"`
}

// RedisConfig is optional; an empty Addr disables the history cache.
type RedisConfig struct {
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	HistoryTTLSeconds int    `toml:"history_ttl_seconds"`
}

// RabbitMQConfig is optional; an empty URL makes orphan cleanup run inline.
type RabbitMQConfig struct {
	URL         string `toml:"url"`
	OrphanQueue string `toml:"orphan_queue"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	envPath := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(envPath); err == nil {
		// Load never overrides variables that are already set.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load env file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.GCS.Bucket) == "" {
		errs = append(errs, errors.New("GCS_BUCKET_NAME not set"))
	}
	if c.MySQL.Host == "" || c.MySQL.User == "" || c.MySQL.DB == "" {
		errs = append(errs, errors.New("database host, user and name are required"))
	}
	if c.Vision.ModelPath == "" {
		errs = append(errs, errors.New("vision model path is required"))
	}
	if c.Predict.ConfidenceThreshold < 0 || c.Predict.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("confidence threshold %v outside [0,1]", c.Predict.ConfidenceThreshold))
	}
	if _, err := time.LoadLocation(c.Predict.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Predict.Timezone, err))
	}
	return errors.Join(errs...)
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Predict.MaxUploadMB) << 20
}

// Location is the zone prediction timestamps are rendered in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Predict.Timezone)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "cofflyze-api",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		MySQL: MySQLConfig{
			Host:   "127.0.0.1",
			Port:   3306,
			User:   "root",
			DB:     "cofflyze",
			Params: "charset=utf8mb4",
		},
		Vision: VisionConfig{
			ModelPath: "model/my_model.onnx",
		},
		Predict: PredictConfig{
			ConfidenceThreshold: 0.7,
			Timezone:            "Asia/Jakarta",
			MaxUploadMB:         16,
		},
		Redis: RedisConfig{
			HistoryTTLSeconds: 30,
		},
		RabbitMQ: RabbitMQConfig{
			OrphanQueue: "predict.orphan.cleanup",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.MySQL.Host = getEnv("DB_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("DB_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("DB_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("DB_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("DB_NAME", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("DB_PARAMS", cfg.MySQL.Params)

	cfg.GCS.Bucket = getEnv("GCS_BUCKET_NAME", cfg.GCS.Bucket)
	cfg.GCS.CredentialsFile = getEnv("GCS_CREDENTIALS_FILE", cfg.GCS.CredentialsFile)

	cfg.Vision.ModelPath = getEnv("VISION_MODEL_PATH", cfg.Vision.ModelPath)
	cfg.Vision.ONNXSharedLibPath = getEnv("VISION_ONNX_LIB", cfg.Vision.ONNXSharedLibPath)

	cfg.Predict.ConfidenceThreshold = getEnvAsFloat("PREDICT_CONFIDENCE_THRESHOLD", cfg.Predict.ConfidenceThreshold)
	cfg.Predict.Timezone = getEnv("PREDICT_TIMEZONE", cfg.Predict.Timezone)
	cfg.Predict.MaxUploadMB = getEnvAsInt("PREDICT_MAX_UPLOAD_MB", cfg.Predict.MaxUploadMB)

	cfg.Storage.CleanupOrphans = getEnvAsBool("STORAGE_CLEANUP_ORPHANS", cfg.Storage.CleanupOrphans)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.HistoryTTLSeconds = getEnvAsInt("REDIS_HISTORY_TTL_SECONDS", cfg.Redis.HistoryTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.OrphanQueue = getEnv("RABBITMQ_ORPHAN_QUEUE", cfg.RabbitMQ.OrphanQueue)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
