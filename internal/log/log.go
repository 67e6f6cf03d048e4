// Package log is a small levelled wrapper around the standard logger.
package log

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "NONE"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelNone {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name to a Level. Unknown names fall back to INFO.
func ParseLevel(s string) Level {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "WARNING":
		return LevelWarn
	case "OFF":
		return LevelNone
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	return LevelInfo
}

// Logger prefixes each line with its level and drops lines below the
// configured threshold.
type Logger struct {
	out   *log.Logger
	level Level
}

func New(w io.Writer, level Level) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags|log.Lmicroseconds), level: level}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) logf(level Level, format string, v []interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(level.String()+": "+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(LevelDebug, format, v) }
func (l *Logger) Infof(format string, v ...interface{})  { l.logf(LevelInfo, format, v) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.logf(LevelWarn, format, v) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(LevelError, format, v) }
