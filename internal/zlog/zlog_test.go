package zlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCompactHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Info("parsed corpus", "laws", 3)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Fatalf("missing level in output: %q", out)
	}
	if !strings.Contains(out, "parsed corpus") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "laws=3") {
		t.Fatalf("missing attr in output: %q", out)
	}
}

func TestCompactHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}
}

func TestJSONHandlerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, slog.LevelInfo)
	logger.Info("parsed corpus")
	if !strings.Contains(buf.String(), `"msg":"parsed corpus"`) {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
}
