// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Level is the severity of a message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "INFO":
		return InfoLevel
	case "DEBUG":
		return DebugLevel
	case "WARN":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	}
	return InfoLevel
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled messages. Loggers derived with With share
// the writer and its lock.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	prefix string
}

// New creates a new logger writing to w messages at level or above.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		mu:    &sync.Mutex{},
		out:   w,
		level: level,
	}
}

// With returns a logger which prepends prefix to every message.
func (l *Logger) With(prefix string) *Logger {
	if l.prefix != "" {
		prefix = l.prefix + ": " + prefix
	}
	return &Logger{
		mu:     l.mu,
		out:    l.out,
		level:  l.level,
		prefix: prefix,
	}
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, msg string) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.prefix != "" {
		fmt.Fprintf(l.out, "[%s] %s: %s\n", level, l.prefix, msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }
