package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	"golang.org/x/time/rate"
)

// ErrAllProvidersFailed is returned when no provider in the chain produced a
// translation.
var ErrAllProvidersFailed = errors.New("translation: all providers failed")

// Attempt records the outcome of one provider in a chain call.
type Attempt struct {
	Provider string
	Text     string
	Err      error
	Skipped  bool
}

// Succeeded reports whether the attempt produced text.
func (a Attempt) Succeeded() bool {
	return !a.Skipped && a.Err == nil
}

// ChainError carries every attempt of a failed chain call.
type ChainError struct {
	Attempts []Attempt
}

func (e *ChainError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		if attempt.Skipped {
			parts = append(parts, attempt.Provider+": skipped")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", attempt.Provider, attempt.Err))
	}
	return ErrAllProvidersFailed.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ChainError) Unwrap() error { return ErrAllProvidersFailed }

// Chain tries providers in order and returns the first translation.
type Chain struct {
	providers []Provider
	limiter   *rate.Limiter
	logger    interfaces.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithDelay spaces out vendor calls by at least d. Zero disables pacing.
func WithDelay(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithLogger(logger interfaces.Logger) ChainOption {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChain builds a chain over the given providers. Nil providers are ignored.
func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	chain := &Chain{
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  logging.NoOp(),
	}
	for _, provider := range providers {
		if provider != nil {
			chain.providers = append(chain.providers, provider)
		}
	}
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// Providers returns the configured provider names in order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, provider := range c.providers {
		names[i] = provider.Name()
	}
	return names
}

// Translate satisfies interfaces.Translator.
func (c *Chain) Translate(ctx context.Context, text, source, target string) (string, error) {
	translated, _, err := c.TranslateWithAttempts(ctx, text, source, target)
	return translated, err
}

// TranslateWithAttempts runs the chain and reports every provider outcome.
// Blank text and same-locale requests return the input without calling a
// vendor.
func (c *Chain) TranslateWithAttempts(ctx context.Context, text, source, target string) (string, []Attempt, error) {
	if strings.TrimSpace(text) == "" || baseCode(source) == baseCode(target) {
		return text, nil, nil
	}

	attempts := make([]Attempt, 0, len(c.providers))
	for _, provider := range c.providers {
		if !provider.Available() {
			attempts = append(attempts, Attempt{Provider: provider.Name(), Skipped: true})
			continue
		}
		if err := c.limiter.Wait(ctx); err != nil {
			attempts = append(attempts, Attempt{Provider: provider.Name(), Err: err})
			return "", attempts, err
		}

		translated, err := provider.Translate(ctx, text, source, target)
		attempts = append(attempts, Attempt{Provider: provider.Name(), Text: translated, Err: err})
		if err == nil {
			return translated, attempts, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", attempts, ctxErr
		}
		c.logger.Debug("translation.provider_failed",
			"provider", provider.Name(),
			"source", source,
			"target", target,
			"error", err,
		)
	}
	return "", attempts, &ChainError{Attempts: attempts}
}

var _ interfaces.Translator = (*Chain)(nil)
