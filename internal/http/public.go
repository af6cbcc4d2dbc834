package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/simulators"
	"github.com/cloudmlm/go-sitecms/internal/titles"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// TitleResolver resolves the hero title of a service or plan page.
type TitleResolver interface {
	Resolve(ctx context.Context, slug, locale string) (*titles.ResolvedTitle, error)
}

// PublicAPI serves the unauthenticated read endpoints used by page rendering.
type PublicAPI struct {
	basePath string
	locales  Locales
	layout   overrides.Service
	titles   TitleResolver
	content  content.Service
	logger   interfaces.Logger
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

func NewPublicAPI(locales Locales, opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath: "/api",
		locales:  locales,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithPublicLayout(service overrides.Service) PublicOption {
	return func(api *PublicAPI) {
		api.layout = service
	}
}

func WithPublicTitles(resolver TitleResolver) PublicOption {
	return func(api *PublicAPI) {
		api.titles = resolver
	}
}

func WithPublicContent(service content.Service) PublicOption {
	return func(api *PublicAPI) {
		api.content = service
	}
}

func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

type localeResponse struct {
	Requested string   `json:"requested,omitempty"`
	Locale    string   `json:"locale"`
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil || api.locales == nil {
		return fmt.Errorf("http: public api requires locales")
	}
	base := joinPath(api.basePath, "")
	mux.HandleFunc("GET "+joinPath(base, "locale"), api.handleLocale)
	mux.HandleFunc("GET "+joinPath(base, "{locale}/layout"), api.handleLayout)
	mux.HandleFunc("GET "+joinPath(base, "{locale}/titles/{slug}"), api.handleTitle)
	mux.HandleFunc("GET "+joinPath(base, "{locale}/content/{kind}"), api.handleContent)
	mux.HandleFunc("POST "+joinPath(base, "simulators/{name}"), api.handleSimulator)
	mux.HandleFunc("GET "+joinPath(base, "simulators"), api.handleSimulatorNames)
	return nil
}

func (api *PublicAPI) handleLocale(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimSpace(r.URL.Query().Get("tag"))
	var locale string
	if requested != "" {
		locale = api.locales.Resolve(requested)
	} else {
		locale = api.locales.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	writeJSON(w, http.StatusOK, localeResponse{
		Requested: requested,
		Locale:    locale,
		Default:   api.locales.Default(),
		Supported: api.locales.Supported(),
	})
}

func (api *PublicAPI) handleLayout(w http.ResponseWriter, r *http.Request) {
	if api.layout == nil {
		unavailable(w)
		return
	}
	locale := api.locales.Resolve(r.PathValue("locale"))
	writeJSON(w, http.StatusOK, api.layout.ResolveLayout(r.Context(), locale))
}

func (api *PublicAPI) handleTitle(w http.ResponseWriter, r *http.Request) {
	if api.titles == nil {
		unavailable(w)
		return
	}
	locale := api.locales.Resolve(r.PathValue("locale"))
	resolved, err := api.titles.Resolve(r.Context(), r.PathValue("slug"), locale)
	if err != nil {
		writeError(w, err)
		return
	}
	if resolved == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "no title for slug"})
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

// handleContent never fails page rendering on a store error; the page
// falls back to its static copy when the list is empty.
func (api *PublicAPI) handleContent(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	kind, err := content.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	locale := api.locales.Resolve(r.PathValue("locale"))
	records, err := api.content.List(r.Context(), kind, locale)
	if err != nil {
		logging.WithLocaleContext(api.logger.WithContext(r.Context()), string(kind), locale).
			Warn("http.public.content_unavailable", "error", err)
		records = nil
	}
	if records == nil {
		records = []*content.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *PublicAPI) handleSimulator(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		badRequest(w, "body", "request body could not be read")
		return
	}
	result, err := simulators.Run(r.PathValue("name"), raw)
	if err != nil {
		if errors.Is(err, simulators.ErrUnknownSimulator) {
			writeError(w, err)
			return
		}
		badRequest(w, "body", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *PublicAPI) handleSimulatorNames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, simulators.Names())
}
