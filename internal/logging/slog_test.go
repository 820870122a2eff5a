package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines decodes every JSON line written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestJSONLogger_LevelsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "identity token rejected", "method", "/svc/Get")
	log.Info(ctx, "login", "user_id", "u-1")
	log.Warn(ctx, "notification dispatch failed", "kind", "password_reset")
	log.Error(ctx, "load user failed", "user_id", "u-2")

	got := lines(t, &buf)
	require.Len(t, got, 4)

	want := []struct{ level, msg, key, val string }{
		{"DEBUG", "identity token rejected", "method", "/svc/Get"},
		{"INFO", "login", "user_id", "u-1"},
		{"WARN", "notification dispatch failed", "kind", "password_reset"},
		{"ERROR", "load user failed", "user_id", "u-2"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, got[i]["level"])
		assert.Equal(t, w.msg, got[i]["msg"])
		assert.Equal(t, w.val, got[i][w.key])
	}
}

func TestJSONLogger_ModuleChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, "info")
	ctx := context.Background()

	auth := root.With("module", "auth_service")
	worker := root.With("module", "notifications").With("component", "worker")

	auth.Info(ctx, "login", "user_id", "u-1")
	worker.Info(ctx, "mail", "to", "a@example.com")
	root.Info(ctx, "Starting app...")

	got := lines(t, &buf)
	require.Len(t, got, 3)

	assert.Equal(t, "auth_service", got[0]["module"])
	assert.Equal(t, "u-1", got[0]["user_id"])

	assert.Equal(t, "notifications", got[1]["module"])
	assert.Equal(t, "worker", got[1]["component"])

	_, tagged := got[2]["module"]
	assert.False(t, tagged, "children never leak attributes into the parent")
}

func TestJSONLogger_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "debug").With("module", "auth_service", "Access_Token", "eyJ...")

	log.Debug(context.Background(), "login attempt", "email", "a@example.com", "password", "hunter22", "password_hash", "$argon2id$...")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "a@example.com", got[0]["email"])
	assert.Equal(t, redactedValue, got[0]["password"])
	assert.Equal(t, redactedValue, got[0]["password_hash"])
	assert.Equal(t, redactedValue, got[0]["Access_Token"])
	assert.NotContains(t, buf.String(), "hunter22")
}

func TestNewJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "k", "v")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["msg"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestSlogLogger_WrapsGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log.With("module", "grpc_server").Info(context.Background(), "rpc", "code", "OK")
	assert.Contains(t, buf.String(), "module=grpc_server")
	assert.Contains(t, buf.String(), "code=OK")
}

func TestNop_SatisfiesLogger(t *testing.T) {
	var l Logger = Nop{}
	l.With("module", "x").Info(context.Background(), "nothing")
}
