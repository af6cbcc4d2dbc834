package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultGoogleEndpoint = "https://translation.googleapis.com/language/translate/v2"

// Google speaks the JSON Cloud Translation v2 API.
type Google struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogle(apiKey, endpoint string, client *http.Client) *Google {
	if endpoint == "" {
		endpoint = defaultGoogleEndpoint
	}
	if client == nil {
		client = defaultHTTPClient()
	}
	return &Google{apiKey: strings.TrimSpace(apiKey), endpoint: endpoint, client: client}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Available() bool { return g.apiKey != "" }

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !g.Available() {
		return "", ErrNotConfigured
	}
	payload, err := json.Marshal(googleRequest{
		Q:      text,
		Source: googleCode(source),
		Target: googleCode(target),
		Format: "text",
	})
	if err != nil {
		return "", err
	}

	endpoint, err := url.Parse(g.endpoint)
	if err != nil {
		return "", err
	}
	query := endpoint.Query()
	query.Set("key", g.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := do(g.client, g.Name(), req)
	if err != nil {
		return "", err
	}
	translated := html.UnescapeString(gjson.GetBytes(body, "data.translations.0.translatedText").String())
	if strings.TrimSpace(translated) == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}

func googleCode(locale string) string {
	if code := baseCode(locale); code != "zh" {
		return code
	}
	return "zh-CN"
}
