package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Field keys shared by every storefront logger.
const (
	FieldBusinessID = "business_id"
	FieldPageType   = "page_type"
	FieldBlockID    = "block_id"
	FieldBlockType  = "block_type"
)

type fieldsKey struct{}

// WithFields returns a child logger carrying fields when the logger can hold
// them. Loggers without field support are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return scoped.WithFields(maps.Clone(fields))
}

// ContextWithFields stores fields on ctx, merged over any set by a parent.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextWithSession tags ctx with the business and page an editing session
// works on. Loggers bound with WithContext emit both on every entry.
func ContextWithSession(ctx context.Context, businessID any, pageType string) context.Context {
	fields := map[string]any{FieldBusinessID: businessID}
	if pageType != "" {
		fields[FieldPageType] = pageType
	}
	return ContextWithFields(ctx, fields)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
