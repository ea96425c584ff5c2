package vlog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nabbar/arcvfs/internal/vlog"
	"github.com/sirupsen/logrus"
)

func TestDiscardLoggerNeverWrites(t *testing.T) {
	vlog.Discard.Info("should not panic", vlog.F("k", "v"))
	chained := vlog.Discard.WithField("a", 1).WithFields(vlog.F("b", 2))
	chained.Error("also silent")
}

func TestNewLoggerWritesTextLines(t *testing.T) {
	var buf bytes.Buffer
	l := vlog.New(&buf, logrus.InfoLevel)

	l.WithField("path", "a.zip").Info("materializing archive")

	out := buf.String()
	if !strings.Contains(out, "materializing archive") || !strings.Contains(out, "path=a.zip") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestNewJSONLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := vlog.NewJSON(&buf, logrus.DebugLevel)

	l.Debug("scanning base path")

	out := buf.String()
	if !strings.Contains(out, `"msg":"scanning base path"`) {
		t.Fatalf("expected JSON output, got %q", out)
	}
}
