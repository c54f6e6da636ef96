package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cofflyze-api/internal/bootstrap"
	"cofflyze-api/internal/config"
)

func newHealthApp(t *testing.T) *bootstrap.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{}
	cfg.App.Name = "cofflyze-api"
	cfg.App.Env = "test"
	return &bootstrap.App{Config: cfg, MySQL: db, StartedAt: time.Now()}
}

func TestHealthCheck_ModelNotLoaded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(newHealthApp(t)).Check)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a model, got %d", rec.Code)
	}

	var body struct {
		App          string                      `json:"app"`
		Dependencies map[string]dependencyStatus `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.App != "cofflyze-api" {
		t.Errorf("unexpected app %q", body.App)
	}
	if !body.Dependencies["mysql"].OK {
		t.Errorf("expected mysql ok, got %+v", body.Dependencies["mysql"])
	}
	if s := body.Dependencies["redis"]; !s.OK || s.Message != "disabled" {
		t.Errorf("expected redis disabled, got %+v", s)
	}
	if s := body.Dependencies["rabbitmq"]; !s.OK || s.Message != "disabled" {
		t.Errorf("expected rabbitmq disabled, got %+v", s)
	}
	if body.Dependencies["model"].OK {
		t.Errorf("expected model not ok")
	}
}
