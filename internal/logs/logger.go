// Package logs is the leveled logger of the cutrelease CLI.
//
// Log lines go to stderr so stdout stays reserved for command output (text
// or --json). The level comes from --log-level, --verbose forces DEBUG, and
// CUTRELEASE_LOG_LEVEL overrides the default when no flag is given.
package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity.
type Level int

const (
	// LevelDebug shows resolution details such as parsed tags and derived names.
	LevelDebug Level = iota
	// LevelInfo shows each git step of a run. It is the default.
	LevelInfo
	// LevelWarn shows conditions the operator has to resolve by hand.
	LevelWarn
	// LevelError shows failures only.
	LevelError
)

// EnvLevel names the environment variable consulted by Init.
const EnvLevel = "CUTRELEASE_LOG_LEVEL"

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a level name. WARNING and CRITICAL are accepted as
// aliases of WARN and ERROR.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR", "CRITICAL":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q (valid: DEBUG, INFO, WARN, ERROR)", s)
	}
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	logger = log.New(os.Stderr, "", log.Ltime)
)

// Init sets the level and destination. An empty levelName falls back to
// $CUTRELEASE_LOG_LEVEL and then INFO; verbose forces DEBUG.
func Init(w io.Writer, levelName string, verbose bool) error {
	if levelName == "" {
		levelName = os.Getenv(EnvLevel)
	}

	lvl := LevelInfo
	if levelName != "" {
		parsed, err := ParseLevel(levelName)
		if err != nil {
			return err
		}
		lvl = parsed
	}
	if verbose {
		lvl = LevelDebug
	}

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	logger = log.New(w, "", log.Ltime)
	return nil
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

func logf(l Level, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	_ = logger.Output(3, fmt.Sprintf("[%-5s] ", l.String())+fmt.Sprintf(format, v...))
}

// Debug logs at LevelDebug. Arguments are handled in the manner of fmt.Printf.
func Debug(format string, v ...interface{}) { logf(LevelDebug, format, v...) }

// Info logs at LevelInfo.
func Info(format string, v ...interface{}) { logf(LevelInfo, format, v...) }

// Warn logs at LevelWarn.
func Warn(format string, v ...interface{}) { logf(LevelWarn, format, v...) }

// Error logs at LevelError.
func Error(format string, v ...interface{}) { logf(LevelError, format, v...) }
