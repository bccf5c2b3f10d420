package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/engine"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/ocr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/pages"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/qr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/secureqr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/server"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/storage"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/verify"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := engine.ExecRunner{Logger: logger}
	mat := pages.NewMaterializer(pages.Config{
		Pdftoppm: cfg.OCR.Pdftoppm,
		DPI:      cfg.OCR.DPI,
		MaxPages: cfg.OCR.MaxPages,
	}, runner, logger)
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, mat, runner, logger)
	verifier := verify.NewVerifier(mat, qr.NewScanner(logger), secureqr.Decoder{}, extractor, logger)

	store := storage.NewStore(cfg.Upload.Dir, logger)
	h := server.New(verifier, store, server.NewMetrics(nil), logger, cfg.Server.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	h.Register(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
