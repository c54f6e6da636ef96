package app

import (
	"context"
	"log"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"

	"cofflyze-api/internal/disease"
	"cofflyze-api/internal/model"
	"cofflyze-api/internal/vision"
)

const (
	DefaultConfidenceThreshold = 0.7

	// TimestampLayout is the tanggal format stored and returned.
	TimestampLayout = "2006-01-02 15:04:05"

	orphanCleanupTimeout = 10 * time.Second
)

// Asia/Jakarta observes WIB (UTC+7) all year.
var wib = time.FixedZone("WIB", 7*60*60)

type ImageStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, name string) error
}

// LeafClassifier maps a preprocessed (1,150,150,3) tensor to class
// probabilities in disease.ClassOrder.
type LeafClassifier interface {
	Predict(input []float32) ([]float32, error)
}

type PredictionStore interface {
	Create(ctx context.Context, prediction *model.Prediction) error
	ListNewestFirst(ctx context.Context) ([]model.Prediction, error)
}

// PredictionCache holds the GET listing. SetHistory must drop a listing
// read under a generation that Invalidate has since moved past.
type PredictionCache interface {
	GetHistory(ctx context.Context) ([]model.Prediction, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetHistory(ctx context.Context, generation int64, predictions []model.Prediction) (bool, error)
	Invalidate(ctx context.Context) error
}

type OrphanCollector interface {
	Collect(ctx context.Context, orphan model.OrphanedObject) error
}

// PredictDeps are the collaborators of PredictService. Cache and Orphans
// are optional.
type PredictDeps struct {
	Images      ImageStore
	Classifier  LeafClassifier
	Predictions PredictionStore
	Cache       PredictionCache
	Orphans     OrphanCollector
}

// PredictOptions tune the pipeline. A zero ConfidenceThreshold means
// DefaultConfidenceThreshold and a nil Location means WIB.
type PredictOptions struct {
	ConfidenceThreshold float64
	Location            *time.Location
	MaxUploadBytes      int64
	CleanupOrphans      bool
}

// Upload is the image part of a POST /predict request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type PredictResult struct {
	ImageURL     string `json:"image_url"`
	Confidence   string `json:"confidence"`
	Penyakit     string `json:"penyakit"`
	Deskripsi    string `json:"deskripsi"`
	Penyebab     string `json:"penyebab"`
	Gejala       string `json:"gejala"`
	FaktorRisiko string `json:"faktor_risiko"`
	Penanganan   string `json:"penanganan"`
	Pencegahan   string `json:"pencegahan"`
	Tanggal      string `json:"tanggal"`
}

type PredictService struct {
	images      ImageStore
	classifier  LeafClassifier
	predictions PredictionStore
	cache       PredictionCache
	orphans     OrphanCollector
	opts        PredictOptions

	now           func() time.Time
	newObjectName func() string
}

func NewPredictService(deps PredictDeps, opts PredictOptions) *PredictService {
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if opts.Location == nil {
		opts.Location = wib
	}
	orphans := deps.Orphans
	if orphans == nil {
		orphans = inlineOrphanCollector{images: deps.Images}
	}
	return &PredictService{
		images:        deps.Images,
		classifier:    deps.Classifier,
		predictions:   deps.Predictions,
		cache:         deps.Cache,
		orphans:       orphans,
		opts:          opts,
		now:           time.Now,
		newObjectName: func() string { return uuid.NewString() + ".jpg" },
	}
}

// Predict stores, classifies and records one leaf image. Steps run in
// order and the first failure ends the request.
func (s *PredictService) Predict(ctx context.Context, upload *Upload) (*PredictResult, error) {
	if err := s.validate(upload); err != nil {
		return nil, err
	}

	objectName := s.newObjectName()
	imageURL, err := s.images.Save(ctx, objectName, upload.ContentType, upload.Data)
	if err != nil {
		return nil, storageError(err)
	}

	result, err := s.classify(upload.Data)
	if err != nil {
		s.collectOrphan(ctx, objectName, "prediction error")
		return nil, inferenceError(err)
	}

	confidence := vision.Percent(result.Confidence)
	if result.Confidence < s.opts.ConfidenceThreshold {
		s.collectOrphan(ctx, objectName, "not recognized as a coffee leaf")
		return nil, lowConfidenceError(confidence + "%")
	}

	profile := disease.Lookup(result.Label)
	tanggal := s.now().In(s.opts.Location).Format(TimestampLayout)

	record := &model.Prediction{
		Gambar:       imageURL,
		Akurasi:      confidence,
		Tanggal:      tanggal,
		Penyakit:     result.Label.String(),
		Deskripsi:    profile.Description,
		Penyebab:     profile.Cause,
		Gejala:       profile.Symptoms,
		FaktorRisiko: profile.RiskFactors,
		Penanganan:   profile.Treatment,
		Pencegahan:   profile.Prevention,
	}
	if err := s.predictions.Create(ctx, record); err != nil {
		s.collectOrphan(ctx, objectName, "database error")
		return nil, persistenceError(err)
	}
	s.invalidateHistory(ctx)

	return &PredictResult{
		ImageURL:     imageURL,
		Confidence:   confidence + "%",
		Penyakit:     record.Penyakit,
		Deskripsi:    profile.Description,
		Penyebab:     profile.Cause,
		Gejala:       profile.Symptoms,
		FaktorRisiko: profile.RiskFactors,
		Penanganan:   profile.Treatment,
		Pencegahan:   profile.Prevention,
		Tanggal:      tanggal,
	}, nil
}

// History lists every stored prediction, newest first.
func (s *PredictService) History(ctx context.Context) ([]model.Prediction, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, ok, err := s.cache.GetHistory(ctx)
		if err != nil {
			log.Printf("read history cache failed: %v", err)
		} else if ok {
			return cached, nil
		}

		// read before listing so an insert racing with the query
		// invalidates this snapshot
		generation, err = s.cache.Generation(ctx)
		if err != nil {
			log.Printf("read history generation failed: %v", err)
		} else {
			cacheable = true
		}
	}

	predictions, err := s.predictions.ListNewestFirst(ctx)
	if err != nil {
		return nil, persistenceError(err)
	}
	if predictions == nil {
		predictions = []model.Prediction{}
	}

	if cacheable {
		if _, err := s.cache.SetHistory(ctx, generation, predictions); err != nil {
			log.Printf("write history cache failed: %v", err)
		}
	}
	return predictions, nil
}

func (s *PredictService) validate(upload *Upload) error {
	switch {
	case upload == nil:
		return validationError(MsgNoImage)
	case strings.TrimSpace(upload.Filename) == "":
		return validationError(MsgNoFileSelected)
	case !strings.HasPrefix(mediaType(upload.ContentType), "image/"):
		return validationError(MsgNotAnImage)
	case s.opts.MaxUploadBytes > 0 && int64(len(upload.Data)) > s.opts.MaxUploadBytes:
		return validationError(MsgImageTooLarge)
	}
	return nil
}

// mediaType lowercases the declared type and drops its parameters.
func mediaType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func (s *PredictService) classify(data []byte) (vision.Result, error) {
	tensor, err := vision.PreprocessBytes(data)
	if err != nil {
		return vision.Result{}, err
	}
	probs, err := s.classifier.Predict(tensor)
	if err != nil {
		return vision.Result{}, err
	}
	return vision.Interpret(probs)
}

func (s *PredictService) invalidateHistory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("invalidate history cache failed: %v", err)
	}
}

// collectOrphan hands an uploaded image without a tbl_predict row to the
// orphan collector. It never changes the response.
func (s *PredictService) collectOrphan(ctx context.Context, objectName, reason string) {
	if !s.opts.CleanupOrphans {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orphanCleanupTimeout)
	defer cancel()

	orphan := model.OrphanedObject{
		Object:   objectName,
		Reason:   reason,
		FailedAt: s.now(),
	}
	if err := s.orphans.Collect(cleanupCtx, orphan); err != nil {
		log.Printf("collect orphaned image %s failed: %v", objectName, err)
	}
}

// inlineOrphanCollector deletes the object right away when no queue is
// configured.
type inlineOrphanCollector struct {
	images ImageStore
}

func (c inlineOrphanCollector) Collect(ctx context.Context, orphan model.OrphanedObject) error {
	return c.images.Delete(ctx, orphan.Object)
}
