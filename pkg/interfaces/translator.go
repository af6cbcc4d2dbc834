package interfaces

import "context"

// Translator converts text between two locales. Implementations may call
// remote vendors and are expected to honour ctx cancellation.
type Translator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}
