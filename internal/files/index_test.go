package files

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestBuild_PatternMatching(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "sunset-beach_12345_o.jpg")
	write(t, dir, "holiday_777.mp4")
	write(t, dir, "photo_12345.json") // metadata, must be ignored
	write(t, dir, "README.txt")       // no id pattern, ignored

	idx, err := Build(dir)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx) != 2 {
		t.Fatalf("index size=%d want=2: %v", len(idx), idx)
	}
	if idx["12345"] != filepath.Join(dir, "sunset-beach_12345_o.jpg") {
		t.Fatalf("12345 -> %q", idx["12345"])
	}
	if idx["777"] != filepath.Join(dir, "holiday_777.mp4") {
		t.Fatalf("777 -> %q", idx["777"])
	}
}

func TestBuild_LastMatchWins(t *testing.T) {
	dir := t.TempDir()
	// two files claim the same id; later directory entry wins, no error
	write(t, dir, "a_42.jpg")
	write(t, dir, "b_42_o.png")

	idx, err := Build(dir)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx) != 1 {
		t.Fatalf("index size=%d want=1", len(idx))
	}
	if idx["42"] == "" {
		t.Fatalf("id 42 not indexed")
	}
}

func TestBuild_EmptyDirNotAnError(t *testing.T) {
	idx, err := Build(t.TempDir())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx) != 0 {
		t.Fatalf("expect empty index, got %v", idx)
	}
}

func TestBuild_MissingDir(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expect error for missing dir")
	}
}
