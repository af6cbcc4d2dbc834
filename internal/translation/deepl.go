package translation

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultDeepLEndpoint = "https://api-free.deepl.com/v2/translate"

// DeepL speaks the form-encoded DeepL v2 API.
type DeepL struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewDeepL(apiKey, endpoint string, client *http.Client) *DeepL {
	if endpoint == "" {
		endpoint = defaultDeepLEndpoint
	}
	if client == nil {
		client = defaultHTTPClient()
	}
	return &DeepL{apiKey: strings.TrimSpace(apiKey), endpoint: endpoint, client: client}
}

func (d *DeepL) Name() string { return "deepl" }

func (d *DeepL) Available() bool { return d.apiKey != "" }

func (d *DeepL) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !d.Available() {
		return "", ErrNotConfigured
	}
	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", strings.ToUpper(baseCode(source)))
	form.Set("target_lang", deepLTarget(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	body, err := do(d.client, d.Name(), req)
	if err != nil {
		return "", err
	}
	translated := gjson.GetBytes(body, "translations.0.text").String()
	if strings.TrimSpace(translated) == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}

// deepLTarget maps site locales to DeepL target codes, which require a
// regional variant for English and Portuguese.
func deepLTarget(locale string) string {
	switch code := baseCode(locale); code {
	case "en":
		return "EN-US"
	case "pt":
		return "PT-PT"
	default:
		return strings.ToUpper(code)
	}
}
