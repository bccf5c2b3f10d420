// One-shot verification of a file from disk. Prints the result record as
// JSON. The content kind is derived from the file extension.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/engine"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/ocr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/pages"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/qr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/secureqr"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/verify"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.pdf|file.jpg|file.png>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	path := os.Args[1]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	kind := constants.MapExtToKind(filepath.Ext(path))
	if kind == "" {
		fmt.Fprintf(os.Stderr, "unsupported file extension: %s\n", filepath.Ext(path))
		os.Exit(2)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
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

	res, err := verifier.Verify(context.Background(), payload, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
}
