package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.toml"))
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, key := range []string{
		"GCS_BUCKET_NAME", "DB_HOST", "DB_USER", "DB_NAME", "DB_PORT",
		"PREDICT_CONFIDENCE_THRESHOLD", "PREDICT_TIMEZONE", "STORAGE_CLEANUP_ORPHANS",
		"REDIS_ADDR", "RABBITMQ_URL", "VISION_MODEL_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_FromTOML(t *testing.T) {
	dir := isolateEnv(t)
	path := writeFile(t, dir, "config.toml", `
[app]
port = 9090

[mysql]
host = "db.internal"
user = "cofflyze"
db = "leaf"

[gcs]
bucket = "leaf-images"

[predict]
confidence_threshold = 0.8

[storage]
cleanup_orphans = true
`)
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.App.Port)
	}
	if cfg.GCS.Bucket != "leaf-images" {
		t.Errorf("expected bucket leaf-images, got %q", cfg.GCS.Bucket)
	}
	if cfg.Predict.ConfidenceThreshold != 0.8 {
		t.Errorf("expected threshold 0.8, got %v", cfg.Predict.ConfidenceThreshold)
	}
	if cfg.Predict.Timezone != "Asia/Jakarta" {
		t.Errorf("expected default timezone Asia/Jakarta, got %q", cfg.Predict.Timezone)
	}
	if !cfg.Storage.CleanupOrphans {
		t.Errorf("expected cleanup_orphans true")
	}
	if got := cfg.MySQLDSN(); got != "cofflyze:@tcp(db.internal:3306)/leaf?charset=utf8mb4" {
		t.Errorf("unexpected DSN %q", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolateEnv(t)
	path := writeFile(t, dir, "config.toml", `
[gcs]
bucket = "from-file"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GCS_BUCKET_NAME", "from-env")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("PREDICT_CONFIDENCE_THRESHOLD", "0.65")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GCS.Bucket != "from-env" {
		t.Errorf("expected bucket from-env, got %q", cfg.GCS.Bucket)
	}
	if cfg.MySQL.Port != 3307 {
		t.Errorf("expected port 3307, got %d", cfg.MySQL.Port)
	}
	if cfg.Predict.ConfidenceThreshold != 0.65 {
		t.Errorf("expected threshold 0.65, got %v", cfg.Predict.ConfidenceThreshold)
	}
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolateEnv(t)
	envPath := writeFile(t, dir, ".env", "GCS_BUCKET_NAME=from-dotenv\nDB_NAME=dotenv_db\n")
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("DB_NAME", "shell_db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GCS.Bucket != "from-dotenv" {
		t.Errorf("expected bucket from .env, got %q", cfg.GCS.Bucket)
	}
	if cfg.MySQL.DB != "shell_db" {
		t.Errorf("expected DB_NAME from environment, got %q", cfg.MySQL.DB)
	}
}

func TestLoad_MissingBucketFails(t *testing.T) {
	isolateEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing bucket, got nil")
	}
	if !strings.Contains(err.Error(), "GCS_BUCKET_NAME") {
		t.Fatalf("expected error to mention GCS_BUCKET_NAME, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with bucket", func(c *Config) {}, false},
		{"threshold above one", func(c *Config) { c.Predict.ConfidenceThreshold = 1.5 }, true},
		{"unknown timezone", func(c *Config) { c.Predict.Timezone = "Mars/Olympus" }, true},
		{"no model", func(c *Config) { c.Vision.ModelPath = "" }, true},
		{"no db name", func(c *Config) { c.MySQL.DB = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.GCS.Bucket = "bucket"
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.MaxUploadBytes(); got != 16<<20 {
		t.Fatalf("expected %d, got %d", 16<<20, got)
	}
}

func TestLocation(t *testing.T) {
	cfg := defaultConfig()
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location error: %v", err)
	}
	if loc.String() != "Asia/Jakarta" {
		t.Fatalf("expected Asia/Jakarta, got %s", loc)
	}
}
