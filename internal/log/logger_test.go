package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/polyforge/internal/errors"
)

// capture returns a JSON logger writing into buf at the given level.
func capture(buf *bytes.Buffer, level Level) *Logger {
	return New(Config{
		Level:  level,
		Format: FormatJSON,
		Output: NewOutput(buf),
	})
}

// lastEntry decodes the final JSON log line written to buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[0], "expected at least one log line")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})
	jsonLogger.Info("run started", "run_id", "r1")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "JSON format emits JSON lines")

	buf.Reset()
	textLogger := New(Config{Level: LevelInfo, Format: FormatText, Output: NewOutput(&buf)})
	textLogger.Info("run started", "run_id", "r1")
	assert.Contains(t, buf.String(), "run_id=r1")

	buf.Reset()
	fallback := New(Config{Level: LevelInfo, Format: Format(99), Output: NewOutput(&buf)})
	fallback.Info("run started")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "unknown formats fall back to JSON")
}

func TestDefaultConstructors(t *testing.T) {
	assert.Equal(t, LevelInfo, Default().Config().Level)
	assert.Equal(t, LevelDebug, Development().Config().Level)
	assert.Equal(t, FormatText, Development().Config().Format)
	assert.Equal(t, LevelInfo, Production().Config().Level)
	assert.Equal(t, FormatJSON, Production().Config().Format)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelWarn)

	l.Debug("generation cache hit", "target", "web-react")
	l.Info("run complete", "targets", 12)
	assert.Empty(t, buf.String(), "below-threshold records are dropped")

	l.Warn("target task timed out", "target", "backend-java")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "target task timed out", entry["msg"])
	assert.Equal(t, "backend-java", entry["target"])
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo).With("run_id", "r42", "spec_id", "spec-shop")

	l.Info("validating outputs")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "r42", entry["run_id"])
	assert.Equal(t, "spec-shop", entry["spec_id"])
}

func TestWithGroup(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo).WithGroup("run")

	l.Info("generated", "target", "mobile-ios")
	entry := lastEntry(t, &buf)
	group, ok := entry["run"].(map[string]any)
	require.True(t, ok, "grouped attributes nest under the group key")
	assert.Equal(t, "mobile-ios", group["target"])
}

func TestWithErrorForge(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	err := errors.Wrap(errors.ErrCodeFileReadFailed, "read spec file",
		assert.AnError).
		WithSuggestion("Check that the path exists")
	l.WithError(err).Warn("load failed")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "read spec file", entry["error"])
	assert.Equal(t, string(errors.ErrCodeFileReadFailed), entry["error_code"])
	assert.Contains(t, entry["cause"], assert.AnError.Error())
	suggestions, ok := entry["suggestions"].([]any)
	require.True(t, ok)
	assert.Contains(t, suggestions, "Check that the path exists")
}

func TestWithErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	l.WithError(assert.AnError).Warn("load failed")
	entry := lastEntry(t, &buf)
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.NotContains(t, entry, "error_code")
}

func TestWithErrorNil(t *testing.T) {
	l := Default()
	assert.Same(t, l, l.WithError(nil), "nil errors add nothing")
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	err := errors.New(errors.ErrCodeTargetsFailed, "3 of 12 targets failed").
		WithSuggestion("Inspect the per-target findings in the evidence report").
		WithDocs("https://github.com/polyforge/polyforge")
	l.LogError(err)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, string(errors.ErrCodeTargetsFailed), entry["error_code"])
	assert.Equal(t, "3 of 12 targets failed", entry["error_message"])
	assert.Equal(t, "https://github.com/polyforge/polyforge", entry["docs_url"])
}

func TestLogErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	l.LogError(assert.AnError)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestLogErrorNil(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	l.LogError(nil)
	l.LogErrorContext(context.Background(), nil)
	assert.Empty(t, buf.String())
}

func TestLogErrorContext(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelInfo)

	err := errors.NewRunCancelledError()
	l.LogErrorContext(context.Background(), err)

	entry := lastEntry(t, &buf)
	assert.Equal(t, string(errors.ErrCodeRunCancelled), entry["error_code"])
}

func TestContextMethods(t *testing.T) {
	var buf bytes.Buffer
	l := capture(&buf, LevelDebug)
	ctx := context.Background()

	l.DebugContext(ctx, "scheduling", "target", "t0")
	l.InfoContext(ctx, "generated", "target", "t0")
	l.WarnContext(ctx, "retrying", "target", "t0")
	l.ErrorContext(ctx, "exhausted", "target", "t0")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "exhausted", entry["msg"])
}

func TestEnabled(t *testing.T) {
	l := capture(&bytes.Buffer{}, LevelWarn)
	ctx := context.Background()

	assert.False(t, l.Enabled(ctx, LevelDebug))
	assert.False(t, l.Enabled(ctx, LevelInfo))
	assert.True(t, l.Enabled(ctx, LevelWarn))
	assert.True(t, l.Enabled(ctx, LevelError))
}

func TestHandlerAndConfig(t *testing.T) {
	cfg := Config{Level: LevelError, Format: FormatText, Output: OutputStderr()}
	l := New(cfg)
	assert.NotNil(t, l.Handler())
	assert.Equal(t, cfg.Level, l.Config().Level)
	assert.Equal(t, cfg.Format, l.Config().Format)
}

func TestWithContextPassthrough(t *testing.T) {
	l := Default()
	assert.NotNil(t, l.WithContext(context.Background()))
}
