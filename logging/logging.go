// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"rivaas.dev/gemini"
)

// HandlerType selects the log output format.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level is the slog level used across the package.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger wraps an [slog.Logger] configured for a Gemini service. Service
// identity attributes are attached to every entry.
//
// Example:
//
//	log := logging.MustNew(
//	    logging.WithServiceName("capsule"),
//	    logging.WithConsoleHandler(),
//	)
//	log.Info("listening", "address", ":1965")
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       Level

	serviceName    string
	serviceVersion string
	environment    string

	addSource      bool
	registerGlobal bool

	slogger *slog.Logger
}

// Option configures a Logger at construction time.
type Option func(*Logger)

func defaults() *Logger {
	return &Logger{
		handlerType:    JSONHandler,
		output:         os.Stdout,
		level:          LevelInfo,
		serviceName:    "gemini",
		serviceVersion: "unknown",
		environment:    "development",
	}
}

// New creates a configured Logger.
//
// The global slog default is left untouched unless [WithGlobalLogger] is
// given, so several Logger instances can coexist in one process.
func New(opts ...Option) (*Logger, error) {
	l := defaults()
	for _, opt := range opts {
		opt(l)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	handler, err := l.buildHandler()
	if err != nil {
		return nil, err
	}
	l.slogger = slog.New(handler).With(
		"service", l.serviceName,
		"version", l.serviceVersion,
		"environment", l.environment,
	)
	if l.registerGlobal {
		slog.SetDefault(l.slogger)
	}
	return l, nil
}

// MustNew creates a Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

func (l *Logger) validate() error {
	if l.output == nil {
		return ErrNilOutput
	}
	if l.serviceName == "" {
		return ErrEmptyServiceName
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHandler, l.handlerType)
	}
	return nil
}

func (l *Logger) buildHandler() (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:     l.level,
		AddSource: l.addSource,
	}
	switch l.handlerType {
	case JSONHandler:
		return slog.NewJSONHandler(l.output, opts), nil
	case TextHandler:
		return slog.NewTextHandler(l.output, opts), nil
	case ConsoleHandler:
		return newConsoleHandler(l.output, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, l.handlerType)
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slogger.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.slogger.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slogger.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.slogger.Error(msg, args...) }

// LogRequest writes one access-log entry for a completed request. Failure
// categories are logged at warn level so they stand out without being
// treated as server errors; the cause of a generic 50 travels through the
// router's diagnostic hook, not through here.
func (l *Logger) LogRequest(req *gemini.Request, status gemini.Status, routePattern string, duration time.Duration) {
	attrs := []any{
		"url", req.RawURL,
		"status", int(status),
		"category", status.Category().String(),
		"route", routePattern,
		"duration", duration,
	}
	if req.Identity != nil {
		attrs = append(attrs, "client_cert", req.Identity.Fingerprint)
	}

	switch status.Category() {
	case gemini.CategoryTemporaryFailure, gemini.CategoryPermanentFailure:
		l.slogger.Warn("request", attrs...)
	default:
		l.slogger.Info("request", attrs...)
	}
}
