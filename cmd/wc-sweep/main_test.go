package main

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
)

func TestFloatListSet(t *testing.T) {
	l := floatList{1}
	if err := l.Set("0.1, 0.2,,0.3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !slices.Equal(l, floatList{0.1, 0.2, 0.3}) {
		t.Fatalf("got %v", l)
	}
	if l.String() != "0.1,0.2,0.3" {
		t.Fatalf("String() = %q", l.String())
	}
	if err := l.Set("x"); err == nil {
		t.Fatalf("expected a parse error")
	}
	if err := l.Set(" , "); err == nil {
		t.Fatalf("expected an error for an empty list")
	}
}

func TestRunPrintsRankedResults(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{
		"-w", "20", "-h", "20", "-steps", "50", "-workers", "2", "-top", "2",
		"-adhesion", "0.05", "-granularity", "0,1", "-evaporation", "0.01",
		"-set", "dt=1",
	}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (%s)", err, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Sweeping 2 candidates") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, " 1) score=") || !strings.Contains(out, " 2) score=") {
		t.Fatalf("missing ranked lines: %q", out)
	}
}
