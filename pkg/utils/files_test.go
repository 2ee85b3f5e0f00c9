package utils

import (
	"path/filepath"
	"testing"
)

func TestResolveInputPathMakesRelativePathAbsolute(t *testing.T) {
	full, parent, err := ResolveInputPath("model.scad")
	if err != nil {
		t.Fatalf("ResolveInputPath: %v", err)
	}
	if !filepath.IsAbs(full) {
		t.Fatalf("got %q, want an absolute path", full)
	}
	if filepath.Dir(full) != parent {
		t.Fatalf("got parent %q, want %q", parent, filepath.Dir(full))
	}
}
