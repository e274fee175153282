package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	rootModule     = "storefront"
	pagesModule    = "storefront.pages"
	builderModule  = "storefront.builder"
	profilesModule = "storefront.profiles"
	renderModule   = "storefront.render"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// PagesLogger returns the logger namespace reserved for block list editing.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// BuilderLogger returns the logger namespace reserved for editing sessions.
func BuilderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, builderModule)
}

// ProfilesLogger returns the logger namespace reserved for profile storage.
func ProfilesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, profilesModule)
}

// RenderLogger returns the logger namespace reserved for the renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// WithBlockContext enriches the logger with the page type and block being
// edited. Empty values are ignored.
func WithBlockContext(logger interfaces.Logger, pageType, blockID, blockType string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageType); trimmed != "" {
		fields[FieldPageType] = trimmed
	}
	if trimmed := strings.TrimSpace(blockID); trimmed != "" {
		fields[FieldBlockID] = trimmed
	}
	if trimmed := strings.TrimSpace(blockType); trimmed != "" {
		fields[FieldBlockType] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
