package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewProdWritesJSONWithServiceInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, EnvProd, ServiceInfo{Name: "reminder", Version: "v1"}, Module("daily-reminder"))

	logger.InfoContext(context.Background(), "hello", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"msg":     "hello",
		"service": "reminder",
		"version": "v1",
		"module":  "daily-reminder",
		"key":     "value",
	} {
		if got, _ := entry[key].(string); got != want {
			t.Errorf("%s: got %q, want %q", key, got, want)
		}
	}
	if _, ok := entry["revision"]; ok {
		t.Errorf("revision should be omitted when empty")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, EnvDev, ServiceInfo{Name: "reminder"}, Module("daily-reminder"))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}
