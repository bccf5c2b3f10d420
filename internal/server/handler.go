package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/storage"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/verify"
)

// Service defines the interface for the verification pipeline.
type Service interface {
	Verify(ctx context.Context, payload []byte, kind constants.ContentKind) (verify.Result, error)
}

type Handler struct {
	service        Service
	store          *storage.Store
	metrics        *Metrics
	logger         *slog.Logger
	maxUploadBytes int64
}

func New(service Service, store *storage.Store, metrics *Metrics, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 16 << 20
	}
	if metrics == nil {
		// a private registry keeps the default collector set clean and
		// repeated construction panic-free
		metrics = NewMetrics(prometheus.NewRegistry())
	}
	return &Handler{
		service:        service,
		store:          store,
		metrics:        metrics,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
}

// HandleVerify accepts a multipart upload under the "file" field and runs
// the extraction pipeline over it. The declared content type is gated here,
// before any recognition work; the pipeline re-checks it on its own.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(ctx, "missing or oversized upload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file field is required"})
		return
	}
	defer func() { _ = file.Close() }()

	kind := constants.ContentKind(header.Header.Get("Content-Type"))
	if !constants.IsAllowed(kind) {
		h.metrics.IncrementOutcome("rejected")
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "invalid file type"})
		return
	}

	payload, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(ctx, "read upload failed", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read upload"})
		return
	}

	// best-effort persistence; verification does not depend on it
	if h.store != nil {
		if _, err := h.store.Save(payload, header.Filename); err != nil {
			h.logger.WarnContext(ctx, "upload persistence failed", "error", err)
		}
	}

	res, err := h.service.Verify(ctx, payload, kind)
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedMediaKind) {
			h.metrics.IncrementOutcome("rejected")
		} else {
			h.metrics.IncrementOutcome("error")
		}
		h.logger.ErrorContext(ctx, "verification rejected", "error", err)
		writeJSON(w, common.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	h.metrics.ObserveVerify(start)
	if res.Valid {
		h.metrics.IncrementOutcome("valid")
	} else {
		h.metrics.IncrementOutcome("invalid")
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore
	// encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}
