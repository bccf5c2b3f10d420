package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/engine"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/pages"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/preprocess"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default
}

type Extractor struct {
	cfg    Config
	pages  *pages.Materializer
	runner engine.Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, mat *pages.Materializer, runner engine.Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if runner == nil {
		runner = engine.ExecRunner{Logger: logger}
	}
	return &Extractor{cfg: cfg, pages: mat, runner: runner, logger: logger}
}

// ExtractText runs OCR over every page of the payload and returns the
// concatenated, normalized text. Each page goes through the preprocess pass
// first. A page that fails to OCR contributes an empty string; there is no
// retry.
//
// The content-kind guard is duplicated here on purpose: this component may
// be invoked independently of the page materializer's own call site.
func (e *Extractor) ExtractText(ctx context.Context, payload []byte, kind constants.ContentKind) (string, error) {
	if !constants.IsAllowed(kind) {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedMediaKind, kind)
	}

	imgs, err := e.pages.Materialize(ctx, payload, kind)
	if err != nil {
		return "", err
	}

	e.logger.Debug("starting ocr extraction", "kind", kind, "pages", len(imgs))

	var b strings.Builder
	for i, img := range imgs {
		txt, err := e.recognize(ctx, preprocess.Enhance(img))
		if err != nil {
			e.logger.Warn("page ocr failed", "page", i+1, "error", err)
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}
	return Normalize(b.String()), nil
}

// recognize writes the prepared page to a temp file and shells out to
// tesseract for it.
func (e *Extractor) recognize(ctx context.Context, img image.Image) (string, error) {
	f, err := os.CreateTemp("", "av-ocr-*.png")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("failed to remove temp page", "path", path, "error", err)
		}
	}()

	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("encode page: %w", err)
	}

	// tesseract <file> stdout -l <lang>
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (stderr: %s)", err, truncateStderr(errb))
	}

	// minor cleanup of obvious line noise
	return reBoxNoise.ReplaceAllString(string(out), ""), nil
}

func truncateStderr(b []byte) string {
	const max = 512
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "...(truncated)"
}
