/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	logger *Logger
	once   sync.Once
	mu     sync.RWMutex
)

// Logger wraps slog with the service field helpers and audit events.
type Logger struct {
	internal *slog.Logger
}

// Options selects the level, the record format and the destination. Output defaults to stdout.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// GetLogger returns the process logger, creating an INFO text logger on first use when
// neither Init nor Configure ran.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = newLogger(slog.LevelInfo, FormatText, os.Stdout)
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init replaces the process logger with a text logger at the given level.
func Init(logLevel string) error {
	return Configure(Options{Level: logLevel})
}

// Configure replaces the process logger.
func Configure(opts Options) error {
	level, err := parseLogLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unsupported log format %q", opts.Format)
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	mu.Lock()
	logger = newLogger(level, format, out)
	mu.Unlock()
	return nil
}

func newLogger(level slog.Level, format string, out io.Writer) *Logger {
	handlerOptions := &slog.HandlerOptions{Level: level}
	var logHandler slog.Handler
	if format == FormatJSON {
		logHandler = slog.NewJSONHandler(out, handlerOptions)
	} else {
		logHandler = slog.NewTextHandler(out, handlerOptions)
	}
	return &Logger{internal: slog.New(logHandler).With(slog.String("service", "mms"))}
}

// With returns a child logger carrying the given fields on every record.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{internal: l.internal.With(convertFields(fields)...)}
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.internal.Info(msg, convertFields(fields)...)
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.internal.Debug(msg, convertFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.internal.Warn(msg, convertFields(fields)...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
}

// Fatal logs at error level and exits with status 1.
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
	os.Exit(1)
}

func parseLogLevel(logLevel string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(logLevel))); err != nil {
		return slog.LevelError, err
	}
	return level, nil
}

func convertFields(fields []Field) []any {
	attrs := make([]any, 0, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}
	return attrs
}
