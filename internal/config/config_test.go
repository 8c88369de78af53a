package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	limits := Default()
	if limits.MaxDepth != 64 {
		t.Errorf("MaxDepth = %d, want 64", limits.MaxDepth)
	}
	if limits.MaxTokenCount != 1<<20 {
		t.Errorf("MaxTokenCount = %d, want %d", limits.MaxTokenCount, 1<<20)
	}
	if limits.PatternTopK != 10 {
		t.Errorf("PatternTopK = %d, want 10", limits.PatternTopK)
	}
}

func TestLoadWithNoFilePresent(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	limits, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits != Default() {
		t.Fatalf("Load() with no file = %+v, want defaults", limits)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	content := "max_depth: 8\npattern_top_k: 3\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	limits, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", limits.MaxDepth)
	}
	if limits.PatternTopK != 3 {
		t.Errorf("PatternTopK = %d, want 3", limits.PatternTopK)
	}
	if limits.MaxTokenCount != Default().MaxTokenCount {
		t.Errorf("MaxTokenCount = %d, want default unchanged", limits.MaxTokenCount)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("not: [valid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	return func() { os.Chdir(old) }
}
