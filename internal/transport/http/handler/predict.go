package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"cofflyze-api/internal/app"
	"cofflyze-api/internal/model"
	"cofflyze-api/internal/transport/http/response"
)

const (
	imageField = "image"
	// room for multipart boundaries and headers on top of the image itself
	multipartOverhead = 1 << 20
)

type PredictService interface {
	Predict(ctx context.Context, upload *app.Upload) (*app.PredictResult, error)
	History(ctx context.Context) ([]model.Prediction, error)
}

// PredictHandler serves /predict.
type PredictHandler struct {
	service        PredictService
	maxUploadBytes int64
}

func NewPredictHandler(service PredictService, maxUploadBytes int64) *PredictHandler {
	return &PredictHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// List returns every stored prediction, newest first.
func (h *PredictHandler) List(c *gin.Context) {
	predictions, err := h.service.History(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, predictions)
}

// Create accepts a multipart form with an "image" file and diagnoses it.
func (h *PredictHandler) Create(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	upload, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.service.Predict(c.Request.Context(), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, result)
}

// readUpload returns the first "image" part that carries a filename
// parameter, or nil when there is none. A part sent with filename=""
// yields an Upload with an empty Filename. A plain text field named
// "image" is not a file and is skipped.
func readUpload(c *gin.Context) (*app.Upload, error) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, nil
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, uploadError(err)
		}

		filename, isFile := partFilename(part)
		if part.FormName() != imageField || !isFile {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, uploadError(err)
		}
		return &app.Upload{
			Filename:    filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}
}

// partFilename reports the raw filename parameter of the part's
// Content-Disposition and whether the parameter is present at all.
func partFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	filename, ok := params["filename"]
	return filename, ok
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &app.PredictError{Kind: app.KindValidation, Message: app.MsgImageTooLarge, Err: err}
	}
	return &app.PredictError{Kind: app.KindValidation, Message: app.MsgNoImage, Err: err}
}

func writeError(c *gin.Context, err error) {
	var perr *app.PredictError
	if !errors.As(err, &perr) {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	switch perr.Kind {
	case app.KindValidation:
		response.Error(c, http.StatusBadRequest, perr.Message)
	case app.KindLowConfidence:
		response.Rejected(c, http.StatusBadRequest, perr.Message, perr.Confidence)
	default:
		response.Error(c, http.StatusInternalServerError, perr.Message)
	}
}
