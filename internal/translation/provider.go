// Package translation calls the external machine translation vendors and
// chains them into a single fallback translator.
package translation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured marks a vendor without credentials; the chain skips it.
	ErrNotConfigured = errors.New("translation: provider not configured")
	// ErrEmptyTranslation is returned when a vendor answers without text.
	ErrEmptyTranslation = errors.New("translation: provider returned no text")
)

// Provider is one translation vendor.
type Provider interface {
	Name() string
	Available() bool
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// VendorError is a non-2xx vendor response.
type VendorError struct {
	Provider string
	Status   int
	Body     string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("translation: %s responded %d: %s", e.Provider, e.Status, e.Body)
}

const maxErrorBody = 4096

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

// do sends req and returns the body of a 2xx response.
func do(client *http.Client, provider string, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "go-sitecms/1.0")

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("translation: %s request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &VendorError{Provider: provider, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return io.ReadAll(resp.Body)
}

// baseCode strips the region from a locale tag ("pt-BR" becomes "pt").
func baseCode(locale string) string {
	code := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}
