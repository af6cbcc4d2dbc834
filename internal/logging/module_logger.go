package logging

import (
	"context"
	"strings"

	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

const (
	rootModule      = "site"
	contentModule   = "site.content"
	overridesModule = "site.overrides"
	titlesModule    = "site.titles"
	backfillModule  = "site.backfill"
	blogModule      = "site.blog"
	httpModule      = "site.http"
)

const (
	fieldLocale = "locale"
	fieldKind   = "kind"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as a structured field.
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

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for the content store.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// OverridesLogger returns the logger namespace reserved for layout overrides.
func OverridesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, overridesModule)
}

// TitlesLogger returns the logger namespace reserved for the title resolver.
func TitlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, titlesModule)
}

// BackfillLogger returns the logger namespace reserved for translation backfills.
func BackfillLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, backfillModule)
}

// BlogLogger returns the logger namespace reserved for blog imports.
func BlogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blogModule)
}

// HTTPLogger returns the logger namespace reserved for HTTP handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithLocaleContext attaches kind and locale fields, skipping empty values.
func WithLocaleContext(logger interfaces.Logger, kind, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldKind] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
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
