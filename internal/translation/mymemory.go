package translation

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultMyMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemory is the keyless best-effort vendor. An email raises its daily
// quota.
type MyMemory struct {
	enabled  bool
	email    string
	endpoint string
	client   *http.Client
}

func NewMyMemory(enabled bool, email, endpoint string, client *http.Client) *MyMemory {
	if endpoint == "" {
		endpoint = defaultMyMemoryEndpoint
	}
	if client == nil {
		client = defaultHTTPClient()
	}
	return &MyMemory{enabled: enabled, email: strings.TrimSpace(email), endpoint: endpoint, client: client}
}

func (m *MyMemory) Name() string { return "mymemory" }

func (m *MyMemory) Available() bool { return m.enabled }

func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !m.Available() {
		return "", ErrNotConfigured
	}
	endpoint, err := url.Parse(m.endpoint)
	if err != nil {
		return "", err
	}
	query := endpoint.Query()
	query.Set("q", text)
	query.Set("langpair", baseCode(source)+"|"+baseCode(target))
	if m.email != "" {
		query.Set("de", m.email)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	body, err := do(m.client, m.Name(), req)
	if err != nil {
		return "", err
	}

	// Quota and input errors come back as HTTP 200 with the failure in
	// responseStatus and the message in translatedText.
	result := gjson.ParseBytes(body)
	if status := result.Get("responseStatus").Int(); status != http.StatusOK {
		return "", &VendorError{Provider: m.Name(), Status: int(status), Body: result.Get("responseDetails").String()}
	}
	translated := html.UnescapeString(result.Get("responseData.translatedText").String())
	if strings.TrimSpace(translated) == "" {
		return "", ErrEmptyTranslation
	}
	if strings.HasPrefix(translated, "MYMEMORY WARNING") {
		return "", fmt.Errorf("translation: mymemory quota: %s", translated)
	}
	return translated, nil
}
