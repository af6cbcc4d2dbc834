package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepLSendsFormAndParsesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "DeepL-Auth-Key secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("text") != "Hello" || r.PostForm.Get("source_lang") != "EN" || r.PostForm.Get("target_lang") != "PT-PT" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Write([]byte(`{"translations":[{"detected_source_language":"EN","text":"Olá"}]}`))
	}))
	defer server.Close()

	deepl := NewDeepL("secret", server.URL, server.Client())
	got, err := deepl.Translate(context.Background(), "Hello", "en", "pt")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Olá" {
		t.Fatalf("expected Olá, got %q", got)
	}
}

func TestDeepLWithoutKeyIsNotConfigured(t *testing.T) {
	t.Parallel()

	deepl := NewDeepL("  ", "", nil)
	if deepl.Available() {
		t.Fatalf("expected provider without key to be unavailable")
	}
	if _, err := deepl.Translate(context.Background(), "Hello", "en", "es"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGoogleSendsJSONAndUnescapesText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "g-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		var body googleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Q != "Binary plan" || body.Source != "en" || body.Target != "zh-CN" || body.Format != "text" {
			t.Errorf("unexpected body %+v", body)
		}
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Plan &quot;binario&quot;"}]}}`))
	}))
	defer server.Close()

	google := NewGoogle("g-key", server.URL, server.Client())
	got, err := google.Translate(context.Background(), "Binary plan", "en", "zh")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != `Plan "binario"` {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestGoogleReportsVendorError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	google := NewGoogle("bad", server.URL, server.Client())
	_, err := google.Translate(context.Background(), "Hello", "en", "es")

	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) {
		t.Fatalf("expected VendorError, got %v", err)
	}
	if vendorErr.Status != http.StatusForbidden || vendorErr.Provider != "google" {
		t.Fatalf("unexpected vendor error %+v", vendorErr)
	}
}

func TestMyMemoryQueryAndStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("langpair") != "en|fr" || query.Get("q") != "Matrix plan" || query.Get("de") != "ops@example.com" {
			t.Errorf("unexpected query %v", query)
		}
		w.Write([]byte(`{"responseData":{"translatedText":"Plan matriciel"},"responseStatus":200}`))
	}))
	defer server.Close()

	mm := NewMyMemory(true, "ops@example.com", server.URL, server.Client())
	got, err := mm.Translate(context.Background(), "Matrix plan", "en-US", "fr")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Plan matriciel" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestMyMemoryQuotaStatusIsAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS"},"responseStatus":429,"responseDetails":"quota exceeded"}`))
	}))
	defer server.Close()

	mm := NewMyMemory(true, "", server.URL, server.Client())
	_, err := mm.Translate(context.Background(), "Hello", "en", "de")

	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) || vendorErr.Status != 429 {
		t.Fatalf("expected 429 vendor error, got %v", err)
	}
}
