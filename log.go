package mceval

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
)

// Level is a logging level.
type Level int

const (
	LevelDebug Level = iota + 1
	LevelInfo
	LevelWarn
	LevelError
)

var levelStr = [...]string{"", "DEBUG", "INFO", "WARN", "ERROR"}

var levelColor = [...]*color.Color{
	nil,
	color.New(color.FgBlue),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgRed, color.Bold),
}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelStr[l]
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	for l := LevelDebug; l <= LevelError; l++ {
		if strings.EqualFold(s, levelStr[l]) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Logger writes messages at or above its level.
// A nil *Logger discards everything.
type Logger struct {
	Level Level
	out   *log.Logger
}

// NewLogger returns a logger writing to w at LevelWarn.
func NewLogger(w io.Writer) *Logger {
	return &Logger{LevelWarn, log.New(w, "", 0)}
}

// Enabled reports whether messages at level l are written.
func (lg *Logger) Enabled(l Level) bool {
	return lg != nil && lg.Level <= l
}

func (lg *Logger) logf(l Level, format string, args ...Any) {
	if !lg.Enabled(l) {
		return
	}
	tag := levelColor[l].Sprint("[" + levelStr[l] + "]")
	lg.out.Println(tag, fmt.Sprintf(format, args...))
}

func (lg *Logger) Debugf(format string, args ...Any) { lg.logf(LevelDebug, format, args...) }
func (lg *Logger) Infof(format string, args ...Any)  { lg.logf(LevelInfo, format, args...) }
func (lg *Logger) Warnf(format string, args ...Any)  { lg.logf(LevelWarn, format, args...) }
func (lg *Logger) Errorf(format string, args ...Any) { lg.logf(LevelError, format, args...) }
