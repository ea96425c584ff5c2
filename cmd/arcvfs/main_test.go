package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nabbar/arcvfs/entry"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("copy: %v", err)
	}
	return buf.String()
}

func TestPrintTableAlignsAndFlagsBroken(t *testing.T) {
	entries := []*entry.Info{
		entry.New("a.txt", "a.txt", entry.File, "a.txt"),
		entry.New("broken.zip", "broken.zip", entry.Archive, "broken.zip"),
	}
	entries[1].Status = entry.Broken

	out := captureStdout(t, func() { printTable(entries) })
	if !strings.Contains(out, "a.txt") || !strings.Contains(out, "broken.zip") {
		t.Fatalf("expected both names in output, got %q", out)
	}
	if !strings.Contains(out, "(broken)") {
		t.Fatalf("expected broken marker, got %q", out)
	}
}

func TestPrintEntryIncludesBrokenReason(t *testing.T) {
	e := entry.New("x.zip", "x.zip", entry.Archive, "x.zip")
	e.Status = entry.Broken
	e.BrokenReason = "truncated central directory"

	out := captureStdout(t, func() { printEntry(e) })
	if !strings.Contains(out, "truncated central directory") {
		t.Fatalf("expected broken reason in output, got %q", out)
	}
}
