package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/overrides"
)

type layoutSettingsResponse struct {
	Stored   overrides.StoredOverrides `json:"stored"`
	Resolved overrides.Layout          `json:"resolved"`
}

func (api *AdminAPI) registerLayoutRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "settings/layout")
	mux.HandleFunc("GET "+root, api.guard(api.handleLayoutList))
	mux.HandleFunc("GET "+root+"/{locale}", api.guard(api.handleLayoutGet))
	mux.HandleFunc("PUT "+root+"/{locale}", api.guard(api.handleLayoutPut))
	mux.HandleFunc("DELETE "+root+"/{locale}", api.guard(api.handleLayoutDelete))
}

func (api *AdminAPI) handleLayoutList(w http.ResponseWriter, r *http.Request) {
	if api.layout == nil {
		unavailable(w)
		return
	}
	list, err := api.layout.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []overrides.StoredOverrides{}
	}
	writeJSON(w, http.StatusOK, list)
}

// The admin surface edits an explicit locale, so unsupported tags are
// rejected instead of collapsing onto the default locale.
func (api *AdminAPI) settingsLocale(w http.ResponseWriter, r *http.Request) (string, bool) {
	locale := strings.ToLower(strings.TrimSpace(r.PathValue("locale")))
	if !api.locales.IsSupported(locale) {
		badRequest(w, "locale", "locale is not supported")
		return "", false
	}
	return locale, true
}

func (api *AdminAPI) handleLayoutGet(w http.ResponseWriter, r *http.Request) {
	if api.layout == nil {
		unavailable(w)
		return
	}
	locale, ok := api.settingsLocale(w, r)
	if !ok {
		return
	}
	stored, err := api.layout.Overrides(r.Context(), locale)
	if errors.Is(err, overrides.ErrOverridesNotFound) {
		stored, err = overrides.StoredOverrides{Locale: locale}, nil
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutSettingsResponse{
		Stored:   stored,
		Resolved: api.layout.ResolveLayout(r.Context(), locale),
	})
}

func (api *AdminAPI) handleLayoutPut(w http.ResponseWriter, r *http.Request) {
	if api.layout == nil {
		unavailable(w)
		return
	}
	locale, ok := api.settingsLocale(w, r)
	if !ok {
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		badRequest(w, "body", "request body could not be read")
		return
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		badRequest(w, "body", "request body is required")
		return
	}
	stored, err := api.layout.SaveOverrides(r.Context(), locale, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutSettingsResponse{
		Stored:   stored,
		Resolved: api.layout.ResolveLayout(r.Context(), locale),
	})
}

func (api *AdminAPI) handleLayoutDelete(w http.ResponseWriter, r *http.Request) {
	if api.layout == nil {
		unavailable(w)
		return
	}
	locale, ok := api.settingsLocale(w, r)
	if !ok {
		return
	}
	if err := api.layout.DeleteOverrides(r.Context(), locale); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
