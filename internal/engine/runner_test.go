package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	var logs bytes.Buffer
	r := ExecRunner{Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	out, _, err := r.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestExecRunnerLogsFailureToInjectedLogger(t *testing.T) {
	var logs bytes.Buffer
	r := ExecRunner{Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	_, _, err := r.Run(context.Background(), "definitely-not-a-binary-on-path")
	require.Error(t, err)
	assert.Contains(t, logs.String(), "engine invocation failed")
}

func TestCapStderr(t *testing.T) {
	short := "exit status 1"
	assert.Equal(t, short, capStderr(short))

	long := strings.Repeat("x", stderrLogCap+1)
	capped := capStderr(long)
	assert.Len(t, capped, stderrLogCap+len("...(truncated)"))
	assert.True(t, strings.HasSuffix(capped, "...(truncated)"))
}
