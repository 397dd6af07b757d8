package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framepass/internal/config"
	"framepass/internal/logging"
	"framepass/internal/status"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerHeaderAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := status.WithPass(status.WithFrameID(context.Background(), "frame-7"), 2)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "resolver"))
	logger.Info("denoise disabled for frame",
		logging.Args(append(logging.DecisionAttrs("denoise_gate", "disabled", "height 1081 not aligned to 4"),
			logging.String("journal_path", "/tmp/journal.db"))...)...)

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO [resolver] Frame frame-7 · Pass 2 – denoise disabled for frame") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "- Decision: denoise_gate") || !strings.Contains(content, "- Reason: height 1081 not aligned to 4") {
		t.Fatalf("decision fields missing: %q", content)
	}
	if strings.Contains(content, "/tmp/journal.db") || !strings.Contains(content, "+ 1 more field hidden") {
		t.Fatalf("path fields should be hidden at info: %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("info lines should not carry source: %q", content)
	}
}

func TestConsoleLoggerDebugListsEveryField(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("node split", logging.String("pass1", "csc@sfc[enabled,sfc]"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "DEBUG") || !strings.Contains(content, "    pass1: csc@sfc[enabled,sfc]") {
		t.Fatalf("debug fields missing: %q", content)
	}
}

func TestNewFromConfigWritesJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "pass failed", "pass_failed", logging.Error(errors.New("boom")))

	content := readLog(t, cfg.LogPath())
	line := strings.TrimSpace(strings.Split(content, "\n")[0])
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, line)
	}
	if record["level"] != "error" || record["msg"] != "pass failed" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record[logging.FieldEventType] != "pass_failed" || record[logging.FieldErrorHint] == nil {
		t.Fatalf("error context not injected: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContextFields(t *testing.T) {
	if fields := logging.ContextFields(context.Background()); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
	ctx := status.WithPass(status.WithFrameID(context.Background(), "abc"), 1)
	fields := logging.ContextFields(ctx)
	if len(fields) != 2 || fields[0].Key != logging.FieldFrameID || fields[1].Key != logging.FieldPass {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "journal unavailable", "journal_open_failed", logging.String(logging.FieldErrorHint, "check state_dir"))

	content := readLog(t, logPath)
	for _, want := range []string{`"event_type":"journal_open_failed"`, `"error_hint":"check state_dir"`, `"impact":`} {
		if !strings.Contains(content, want) {
			t.Fatalf("missing %s in %q", want, content)
		}
	}
}
