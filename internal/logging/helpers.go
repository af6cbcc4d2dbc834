package logging

import (
	"maps"

	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// WithFields returns logger annotated with fields. Loggers without
// FieldsLogger support are returned unchanged; a nil logger becomes NoOp.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}
