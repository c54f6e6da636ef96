package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	"cofflyze-api/internal/model"
)

func newTestCache(t *testing.T, ttl time.Duration) (*PredictionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPredictionCache(client, ttl), mr
}

func TestPredictionCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.GetHistory(ctx); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := []model.Prediction{
		{ID: 2, Gambar: "https://example/b.jpg", Akurasi: "80.00", Tanggal: "2024-12-02 10:00:00", Penyakit: "Phoma"},
		{ID: 1, Gambar: "https://example/a.jpg", Akurasi: "95.10", Tanggal: "2024-12-01 10:00:00", Penyakit: "Rust"},
	}
	if _, err := c.SetHistory(ctx, 0, want); err != nil {
		t.Fatalf("SetHistory error: %v", err)
	}

	got, ok, err := c.GetHistory(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d predictions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prediction %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestPredictionCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, err := c.SetHistory(ctx, 0, []model.Prediction{}); err != nil {
		t.Fatalf("SetHistory error: %v", err)
	}
	got, ok, err := c.GetHistory(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestPredictionCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, err := c.SetHistory(ctx, 0, []model.Prediction{{ID: 1}}); err != nil {
		t.Fatalf("SetHistory error: %v", err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	if mr.Exists(historyKey) {
		t.Fatalf("expected key %q to be deleted", historyKey)
	}
	if _, ok, _ := c.GetHistory(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestPredictionCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	if _, err := c.SetHistory(ctx, 0, []model.Prediction{{ID: 1}}); err != nil {
		t.Fatalf("SetHistory error: %v", err)
	}
	mr.FastForward(11 * time.Second)
	if _, ok, _ := c.GetHistory(ctx); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestPredictionCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	if err := mr.Set(historyKey, "{not json"); err != nil {
		t.Fatalf("miniredis set error: %v", err)
	}
	if _, _, err := c.GetHistory(context.Background()); err == nil {
		t.Fatalf("expected unmarshal error, got nil")
	}
}

func TestPredictionCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()
	if _, _, err := c.GetHistory(context.Background()); err == nil {
		t.Fatalf("expected error when redis is down, got nil")
	}
}

func TestPredictionCache_InvalidateBumpsGeneration(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	if err != nil || gen != 0 {
		t.Fatalf("expected generation 0, got %d err=%v", gen, err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	if gen, _ := c.Generation(ctx); gen != 1 {
		t.Fatalf("expected generation 1 after invalidate, got %d", gen)
	}
}

func TestPredictionCache_StaleListingIsNotWritten(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation error: %v", err)
	}
	// an insert lands between the read of the table and the write-back
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}

	written, err := c.SetHistory(ctx, gen, []model.Prediction{})
	if err != nil {
		t.Fatalf("SetHistory error: %v", err)
	}
	if written {
		t.Fatalf("expected stale listing to be dropped")
	}
	if mr.Exists(historyKey) {
		t.Fatalf("stale listing reached redis")
	}

	current, _ := c.Generation(ctx)
	written, err = c.SetHistory(ctx, current, []model.Prediction{{ID: 1}})
	if err != nil || !written {
		t.Fatalf("expected current listing to be written, got written=%v err=%v", written, err)
	}
}
