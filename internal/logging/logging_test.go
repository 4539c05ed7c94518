package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closer, err := Open(path, "warn")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Info("hidden")
	log.Warn("save failed", "count", 2)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "save failed") || !strings.Contains(out, "count=2") {
		t.Fatalf("missing warn record: %s", out)
	}
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	log, closer, err := Open("", "debug")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Debug("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
