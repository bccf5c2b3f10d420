// Package engine invokes the external recognition binaries (tesseract,
// pdftoppm) as subprocesses.
package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// stderr logged on failure is capped at this many bytes.
const stderrLogCap = 8 << 10

// Runner lets us stub external engine commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs engine binaries via os/exec. A nil Logger falls back to
// the default logger.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("engine invocation failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
			"stderr", capStderr(errb.String()),
		)
		return out.Bytes(), errb.Bytes(), err
	}

	logger.Debug("engine invocation ok",
		"cmd", name,
		"args", strings.Join(args, " "),
		"duration_ms", elapsed.Milliseconds(),
		"stdout_bytes", out.Len(),
		"stderr_bytes", errb.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

func capStderr(s string) string {
	if len(s) <= stderrLogCap {
		return s
	}
	return s[:stderrLogCap] + "...(truncated)"
}
