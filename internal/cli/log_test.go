package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerContextRoundtrip(t *testing.T) {
	l := newLogger(io.Discard, log.DebugLevel)
	ctx := withLogger(context.Background(), l)

	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to a usable logger")
	}
}

func TestProgressLogsElapsed(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)

	prog := newProgress(l)
	prog.done("layout computed")

	out := buf.String()
	if !strings.Contains(out, "layout computed") {
		t.Errorf("progress output missing message: %q", out)
	}
	if !strings.Contains(out, "s)") && !strings.Contains(out, "ms)") {
		t.Errorf("progress output missing elapsed duration: %q", out)
	}
}
