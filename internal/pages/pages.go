// Package pages turns an uploaded payload into an ordered sequence of page
// images: length 1 for a raster image, one per page for a PDF. PDF
// rasterization is delegated to the external pdftoppm binary.
package pages

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	_ "image/jpeg"
	"image/png"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/engine"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rasterization DPI, default 300
	MaxPages int    // 0 = no limit
}

type Materializer struct {
	cfg    Config
	runner engine.Runner
	logger *slog.Logger
}

func NewMaterializer(cfg Config, runner engine.Runner, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if runner == nil {
		runner = engine.ExecRunner{Logger: logger}
	}
	return &Materializer{cfg: cfg, runner: runner, logger: logger}
}

// Materialize picks a strategy based on the declared content kind.
// The declared kind is rejected before any recognition work begins.
func (m *Materializer) Materialize(ctx context.Context, payload []byte, kind constants.ContentKind) ([]image.Image, error) {
	switch {
	case kind == constants.KindPDF:
		return m.rasterizePDF(ctx, payload)
	case constants.IsImage(kind):
		img, _, err := image.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return []image.Image{img}, nil
	default:
		m.logger.Error("unsupported content kind", "kind", kind)
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaKind, kind)
	}
}

func (m *Materializer) rasterizePDF(ctx context.Context, payload []byte) ([]image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "av-pp-*")
	if err != nil {
		return nil, err
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			m.logger.Warn("failed to remove temp dir", "path", path, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(in, payload, 0o600); err != nil {
		return nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := m.runner.Run(ctx, m.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", m.cfg.DPI), "-png", in, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (stderr: %s)", err, errb)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if m.cfg.MaxPages > 0 && len(matches) > m.cfg.MaxPages {
		matches = matches[:m.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pages rendered")
	}

	imgs := make([]image.Image, 0, len(matches))
	for _, p := range matches {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode rendered page %s: %w", filepath.Base(p), err)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}
