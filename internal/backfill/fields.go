package backfill

import (
	"context"
	"maps"
	"slices"
)

// nestedKeys are the sub-keys translated inside nested objects.
var nestedKeys = []string{"title", "description"}

// translateFields returns a translated copy of fields. Scalar fields,
// string lists and the title/description of nested objects are translated;
// everything else is copied. Failures keep the original text.
func (j *Job) translateFields(ctx context.Context, fields map[string]any, target string) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		value := fields[key]
		switch typed := value.(type) {
		case string:
			if slices.Contains(j.scalarFields, key) {
				out[key] = j.translateSoft(ctx, typed, target)
				continue
			}
			out[key] = typed
		case []string:
			items := make([]string, len(typed))
			for i, item := range typed {
				items[i] = j.translateSoft(ctx, item, target)
			}
			out[key] = items
		case []any:
			out[key] = j.translateList(ctx, typed, target)
		case map[string]any:
			out[key] = j.translateNested(ctx, typed, target)
		default:
			out[key] = value
		}
	}
	return out
}

func (j *Job) translateList(ctx context.Context, items []any, target string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		switch typed := item.(type) {
		case string:
			out[i] = j.translateSoft(ctx, typed, target)
		case map[string]any:
			out[i] = j.translateNested(ctx, typed, target)
		default:
			out[i] = item
		}
	}
	return out
}

func (j *Job) translateNested(ctx context.Context, object map[string]any, target string) map[string]any {
	out := maps.Clone(object)
	for _, key := range nestedKeys {
		if text, ok := object[key].(string); ok {
			out[key] = j.translateSoft(ctx, text, target)
		}
	}
	return out
}
