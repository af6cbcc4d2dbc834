package logging

import (
	"context"
	"testing"

	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "site.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, titlesModule)

	if len(provider.requested) != 1 || provider.requested[0] != titlesModule {
		t.Fatalf("expected module %s, got %v", titlesModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != titlesModule {
		t.Fatalf("expected module field %s, got %v", titlesModule, got)
	}
	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestNamedLoggersRequestTheirModule(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		contentModule:   ContentLogger,
		overridesModule: OverridesLogger,
		titlesModule:    TitlesLogger,
		backfillModule:  BackfillLogger,
		blogModule:      BlogLogger,
		httpModule:      HTTPLogger,
	}
	for module, fn := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = fn(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithLocaleContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	WithLocaleContext(rec, "service", " ")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0]["kind"] != "service" {
		t.Fatalf("expected kind field, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0]["locale"]; ok {
		t.Fatalf("expected locale to be omitted, got %v", rec.fields[0])
	}
}

func TestContextFieldsRoundTrip(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	ctx = ContextWithFields(ctx, map[string]any{"locale": "es"})
	fields := ContextFields(ctx)
	if fields["request_id"] != "r-1" || fields["locale"] != "es" {
		t.Fatalf("expected merged context fields, got %v", fields)
	}
	fields["request_id"] = "mutated"
	if ContextFields(ctx)["request_id"] != "r-1" {
		t.Fatal("expected ContextFields to return a copy")
	}
}

func TestWithFieldsNilAndEmpty(t *testing.T) {
	if _, ok := WithFields(nil, map[string]any{"kind": "plan"}).(noopLogger); !ok {
		t.Fatal("expected nil logger to become NoOp")
	}
	rec := &recordingLogger{}
	if got := WithFields(rec, nil); got != rec {
		t.Fatalf("expected logger unchanged for empty fields, got %T", got)
	}
	if len(rec.fields) != 0 {
		t.Fatalf("expected no WithFields call, got %d", len(rec.fields))
	}
}
