package util

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

const (
	// LevelError error only
	LevelError = iota
	// LevelWarning error and warning
	LevelWarning
	// LevelInformational default level
	LevelInformational
	// LevelDebug everything
	LevelDebug
)

var GloablLogger *Logger
var Level = LevelDebug

// Logger leveled logger
type Logger struct {
	level int
}

// Println prints a timestamped log line
func (ll *Logger) Println(prefix string, msg string) {
	c := color.New()
	_, _ = c.Printf(
		"%s%s %s\n",
		prefix,
		time.Now().Format("2006-01-02 15:04:05"),
		msg,
	)
}

// Panic logs the message and exits
func (ll *Logger) Panic(format string, v ...interface{}) {
	if LevelError > ll.level {
		os.Exit(0)
	}
	msg := fmt.Sprintf(format, v...)
	ll.Println(color.New(color.FgCyan).Sprint("[Panic] "), msg)
	os.Exit(0)
}

// Error logs an error message
func (ll *Logger) Error(format string, v ...interface{}) {
	if LevelError > ll.level {
		return
	}
	msg := fmt.Sprintf(format, v...)
	ll.Println(color.New(color.FgRed).Sprint("[Error] "), msg)
}

// Warning logs a warning message
func (ll *Logger) Warning(format string, v ...interface{}) {
	if LevelWarning > ll.level {
		return
	}
	msg := fmt.Sprintf(format, v...)
	ll.Println(color.New(color.FgYellow).Sprint("[Warning] "), msg)
}

// Info logs an informational message
func (ll *Logger) Info(format string, v ...interface{}) {
	if LevelInformational > ll.level {
		return
	}
	msg := fmt.Sprintf(format, v...)
	ll.Println(color.New(color.FgCyan).Sprint("[Info] "), msg)
}

// Debug logs a debug message
func (ll *Logger) Debug(format string, v ...interface{}) {
	if LevelDebug > ll.level {
		return
	}
	msg := fmt.Sprintf(format, v...)
	ll.Println(color.New(color.FgWhite).Sprint("[Debug] "), msg)
}

// BuildLogger builds the global logger for the given level name
func BuildLogger(level string) {
	intLevel := LevelError
	switch level {
	case "error":
		intLevel = LevelError
	case "warning":
		intLevel = LevelWarning
	case "info":
		intLevel = LevelInformational
	case "debug":
		intLevel = LevelDebug
	}
	Level = intLevel
	l := Logger{
		level: intLevel,
	}
	GloablLogger = &l
}

// Log returns the global logger, building one if absent
func Log() *Logger {
	if GloablLogger == nil {
		l := Logger{
			level: Level,
		}
		GloablLogger = &l
	}
	return GloablLogger
}
