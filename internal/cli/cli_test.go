package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtbridge/sinks"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv(sinks.ForceColorEnvVar, "0")

	var stdout, stderr bytes.Buffer
	cmd := NewCommand("test")
	cmd.Reader = strings.NewReader(stdin)
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr

	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestEmit(t *testing.T) {
	r := run(t, "", "emit", "--level", "warn", "--context", "Orders", "-p", "Region=eu",
		"Order {Id} delayed", "42")

	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "WRN] (Orders) Order 42 delayed {Region=eu}")
}

func TestEmitNestedContextAndError(t *testing.T) {
	r := run(t, "", "emit", "--level", "error", "--context", "App", "--context", "Db",
		"--error", "connection reset", "Query failed")

	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "ERR] (App.Db) Query failed")
	assert.Contains(t, r.stdout, "connection reset")
}

func TestEmitMetrics(t *testing.T) {
	r := run(t, "", "emit", "--metrics", "hello")

	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `mtbridge_bridge_events_forwarded_total{direction="outbound"} 1`)
}

func TestEmitBelowMinimumLevel(t *testing.T) {
	r := run(t, "", "emit", "--level", "debug", "--metrics", "quiet")

	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "quiet")
	assert.Contains(t, r.stdout, `mtbridge_bridge_events_skipped_total{direction="outbound"} 1`)
}

func TestEmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"missing template", []string{"emit"}, "missing message template"},
		{"invalid level", []string{"emit", "--level", "loud", "x"}, `invalid level "loud"`},
		{"invalid property", []string{"emit", "-p", "novalue", "x"}, `invalid property "novalue"`},
		{"missing config", []string{"--config", "/does/not/exist.yaml", "emit", "x"}, "exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			require.Error(t, r.err)
			assert.Contains(t, r.err.Error(), tt.errMsg)
		})
	}
}

func TestEmitWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "events.clef")
	config := filepath.Join(dir, "mtbridge.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`mtbridge:
  minimumLevel: Debug
  writeTo:
    - name: File
      args:
        path: `+out+`
        format: clef
`), 0o600))

	r := run(t, "", "--config", config, "emit", "--level", "debug", "Cache {Key} missed", "user:1")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@mt":"Cache {Key} missed"`)
	assert.Contains(t, string(data), `"Key":"user:1"`)
}

const clefInput = `{"@t":"2025-01-29T15:30:45.123Z","@mt":"Order {Id} placed","@l":"Warning","Id":42,"SourceContext":"App.Orders"}
not json

{"@t":"2025-01-29T15:30:46Z","@mt":"Trace detail","@l":"Verbose"}
`

func TestReplayText(t *testing.T) {
	r := run(t, clefInput, "replay")

	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-01-29T15:30:45.123Z WARN  [App.Orders] Order 42 placed Id=42", lines[0])
	assert.Equal(t, "2025-01-29T15:30:46.000Z DEBUG Trace detail", lines[1])
	assert.Equal(t, "replayed 2 events, skipped 1 lines\n", r.stderr)
}

func TestReplayMinimumLevel(t *testing.T) {
	r := run(t, clefInput, "replay", "--level", "info")

	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Order 42 placed")
	assert.NotContains(t, r.stdout, "Trace detail")
}

func TestReplayStrict(t *testing.T) {
	r := run(t, clefInput, "replay", "--strict")

	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "line 2")
	assert.Contains(t, r.stdout, "Order 42 placed")
}

func TestReplayLogr(t *testing.T) {
	r := run(t, clefInput, "replay", "--format", "logr", "--level", "info")

	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"logger":"App.Orders"`)
	assert.Contains(t, lines[0], `"msg":"Order 42 placed"`)
	assert.Contains(t, lines[0], `"severity":"WARN"`)
}

func TestReplayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.clef")
	require.NoError(t, os.WriteFile(path, []byte(clefInput), 0o600))

	r := run(t, "", "replay", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Order 42 placed")

	r = run(t, "", "replay", filepath.Join(t.TempDir(), "missing.clef"))
	require.Error(t, r.err)
}

func TestReplayUnknownFormat(t *testing.T) {
	r := run(t, "", "replay", "--format", "xml")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `unknown output format: "xml"`)
}

func TestConfigDump(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "mtbridge.yaml")
	require.NoError(t, os.WriteFile(config, []byte("mtbridge:\n  minimumLevel: Warning\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mtbridge.production.yaml"),
		[]byte("mtbridge:\n  minimumLevel: Error\n"), 0o600))

	r := run(t, "", "--config", config, "config", "--validate")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "minimumLevel: Warning")

	r = run(t, "", "--config", config, "--environment", "production", "config")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "minimumLevel: Error")
}

func TestConfigValidateFails(t *testing.T) {
	config := filepath.Join(t.TempDir(), "mtbridge.yaml")
	require.NoError(t, os.WriteFile(config, []byte("mtbridge:\n  writeTo:\n    - name: Nowhere\n"), 0o600))

	r := run(t, "", "--config", config, "config", "--validate")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "invalid configuration")
}

func TestConfigEnv(t *testing.T) {
	r := run(t, "", "config", "--env")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "MTBRIDGE_MINIMUM_LEVEL")
}

func TestLevels(t *testing.T) {
	r := run(t, "", "levels")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "  WARN   Warning\n")
	assert.Contains(t, r.stdout, "  Verbose      DEBUG\n")
	assert.Contains(t, r.stdout, "  Debug        DEBUG\n")
}
