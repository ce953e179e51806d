package main

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRunWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	var stderr bytes.Buffer
	err := run([]string{"-w", "40", "-h", "30", "-dry", "20", "-o", path}, &bytes.Buffer{}, &stderr)
	if err != nil {
		t.Fatalf("run: %v (%s)", err, stderr.String())
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("output is %v, want 40x30", b)
	}
	if !strings.Contains(stderr.String(), "wrote") {
		t.Fatalf("missing summary line: %q", stderr.String())
	}
}

func TestRunStreamsPNG(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-w", "16", "-h", "16", "-demo=false", "-dry", "0", "-o", "-", "-v"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := png.Decode(&stdout)
	if err != nil {
		t.Fatalf("stdout is not a PNG: %v", err)
	}
	r, g, b, _ := img.At(8, 8).RGBA()
	if r>>8 < 200 || g>>8 < 200 || b>>8 < 200 {
		t.Fatalf("blank canvas should render near white, got %d %d %d", r>>8, g>>8, b>>8)
	}
	if !strings.Contains(stderr.String(), "engine created") {
		t.Fatalf("-v should install a logger: %q", stderr.String())
	}
}

func TestRunRejectsBadTexture(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.png")
	err := run([]string{"-w", "8", "-h", "8", "-texture", missing, "-o", "-"}, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected an error for a missing texture")
	}
}
