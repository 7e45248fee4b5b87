package debug_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-genseq/debug"
)

func TestLogWritesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := debug.EnableAt(path); err != nil {
		t.Fatalf("EnableAt failed: %v", err)
	}
	defer debug.Disable()

	debug.Log("clock", "started at %d", 0)
	debug.Warn("unknown genre %q", "polka")
	for i := 0; i < 4; i++ {
		debug.LogEvery(2, "pulse", "tick")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Debug logging started", "clock", "started at 0", "warn", `unknown genre "polka"`, "count=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "pulse"); got != 2 {
		t.Errorf("expected 2 sampled pulse lines, got %d", got)
	}
}

func TestSetOutputAndDisable(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	debug.Log("midi", "send failed: %v", "boom")
	debug.Disable()
	debug.Log("midi", "nobody listens")
	debug.LogEvery(1, "midi", "nobody listens")

	out := buf.String()
	if !strings.Contains(out, "send failed: boom") {
		t.Errorf("missing message:\n%s", out)
	}
	if strings.Contains(out, "nobody listens") {
		t.Errorf("logged after Disable:\n%s", out)
	}
}
