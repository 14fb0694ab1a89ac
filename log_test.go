package mceval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/tevino/abool/v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		s    string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"Warn", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.s)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.s, got, err)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	lg := NewLogger(&buf)
	lg.Debugf("hidden %d", 1)
	lg.Infof("hidden %d", 2)
	lg.Warnf("shown %d", 3)
	lg.Errorf("shown %d", 4)
	if got := buf.String(); got != "[WARN] shown 3\n[ERROR] shown 4\n" {
		t.Fatalf("got %q", got)
	}
	var nilLogger *Logger
	nilLogger.Errorf("discarded")
}

func TestEvaluatorDebugLog(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	lg := NewLogger(&buf)
	lg.Level = LevelDebug
	in := &Interp{Lazy: true, Log: lg}
	env := globalEnv()
	mustRun(t, in, env, `(define (id x) x)`)
	expectNumber(t, mustRun(t, in, env, `(id 5)`), 5)
	out := buf.String()
	for _, want := range []string{
		"[DEBUG] apply #<compound-procedure (x)> to (#<thunk>)",
		"[DEBUG] force #<thunk>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q lacks %q", out, want)
		}
	}
}

func TestInterruptIsLoggedAsWarning(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	in := &Interp{Interrupt: abool.New(), Log: NewLogger(&buf)}
	env := globalEnv()
	mustRun(t, in, env, `(define (forever) (forever))`)
	in.Interrupt.Set()
	if _, err := run(t, in, env, `(forever)`); err == nil {
		t.Fatal("evaluation was not interrupted")
	}
	if !strings.HasPrefix(buf.String(), "[WARN] evaluation interrupted") {
		t.Errorf("log %q", buf.String())
	}
}
