// Package utils holds small helpers shared across the CLI and its
// supporting packages: fanning a log record out to more than one sink,
// tagging a subprocess's output as it's captured, and resolving
// user-supplied config/registry paths.
package utils

import (
	"context"
	"errors"
	"log/slog"
)

// MultiLogHandler fans a single slog record out to the console handler and
// the log-file handler rfm's root command wires up in setupLogging, so a
// run's output lands in both places without duplicating log call sites.
type MultiLogHandler struct {
	handlers []slog.Handler
}

// NewMultiLogHandler builds a MultiLogHandler forwarding to every given handler.
func NewMultiLogHandler(handlers ...slog.Handler) *MultiLogHandler {
	return &MultiLogHandler{
		handlers: handlers,
	}
}

func (h *MultiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle forwards r to every enabled handler, joining their failures rather
// than letting a later handler's success mask an earlier one's error.
func (h *MultiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if e := handler.Handle(ctx, r); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *MultiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return NewMultiLogHandler(handlers...)
}

func (h *MultiLogHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return NewMultiLogHandler(handlers...)
}
