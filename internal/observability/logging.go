// Package observability provides context-scoped structured logging helpers so
// that website, page and tenant identifiers follow a request through the
// content, render and publish layers.
package observability

import (
	"context"
	"log/slog"
)

// LogContext holds structured logging context information.
type LogContext struct {
	WebsiteID string
	PageID    string
	TenantID  string
	Operation string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithWebsiteID adds a website ID to the context.
func WithWebsiteID(ctx context.Context, websiteID string) context.Context {
	lc := extractLogContext(ctx)
	lc.WebsiteID = websiteID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithPageID adds a page ID to the context.
func WithPageID(ctx context.Context, pageID string) context.Context {
	lc := extractLogContext(ctx)
	lc.PageID = pageID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTenantID adds a tenant ID to the context.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	lc := extractLogContext(ctx)
	lc.TenantID = tenantID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	lc := extractLogContext(ctx)
	lc.Operation = op
	return context.WithValue(ctx, logContextKey, lc)
}

// extractLogContext retrieves or creates a LogContext from the context.
func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// getLogAttrs returns slog attributes from the context's LogContext.
func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}

	if lc.WebsiteID != "" {
		attrs = append(attrs, slog.String("website.id", lc.WebsiteID))
	}
	if lc.PageID != "" {
		attrs = append(attrs, slog.String("page.id", lc.PageID))
	}
	if lc.TenantID != "" {
		attrs = append(attrs, slog.String("tenant.id", lc.TenantID))
	}
	if lc.Operation != "" {
		attrs = append(attrs, slog.String("operation", lc.Operation))
	}

	return attrs
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	allAttrs := append(getLogAttrs(ctx), attrs...)
	slog.LogAttrs(ctx, slog.LevelInfo, msg, allAttrs...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	allAttrs := append(getLogAttrs(ctx), attrs...)
	slog.LogAttrs(ctx, slog.LevelWarn, msg, allAttrs...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	allAttrs := append(getLogAttrs(ctx), attrs...)
	slog.LogAttrs(ctx, slog.LevelError, msg, allAttrs...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	allAttrs := append(getLogAttrs(ctx), attrs...)
	slog.LogAttrs(ctx, slog.LevelDebug, msg, allAttrs...)
}
