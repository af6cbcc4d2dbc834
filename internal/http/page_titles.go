package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
)

func (api *AdminAPI) registerPageTitleRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "page-titles")
	mux.HandleFunc("GET "+root, api.guard(api.handlePageTitleList))
	mux.HandleFunc("POST "+root, api.guard(api.handlePageTitleCreate))
	mux.HandleFunc("GET "+root+"/{id}", api.guard(api.handlePageTitleGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.guard(api.handlePageTitleUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.guard(api.handlePageTitleDelete))
}

func (api *AdminAPI) handlePageTitleList(w http.ResponseWriter, r *http.Request) {
	if api.pageTitles == nil {
		unavailable(w)
		return
	}
	list, err := api.pageTitles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*pagetitles.Override{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageTitleGet(w http.ResponseWriter, r *http.Request) {
	if api.pageTitles == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	override, err := api.pageTitles.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

func (api *AdminAPI) handlePageTitleCreate(w http.ResponseWriter, r *http.Request) {
	if api.pageTitles == nil {
		unavailable(w)
		return
	}
	req, ok := decodePageTitleRequest(w, r)
	if !ok {
		return
	}
	override, err := api.pageTitles.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, override)
}

func (api *AdminAPI) handlePageTitleUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pageTitles == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	req, ok := decodePageTitleRequest(w, r)
	if !ok {
		return
	}
	override, err := api.pageTitles.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

func (api *AdminAPI) handlePageTitleDelete(w http.ResponseWriter, r *http.Request) {
	if api.pageTitles == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	if err := api.pageTitles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodePageTitleRequest(w http.ResponseWriter, r *http.Request) (pagetitles.SaveRequest, bool) {
	var req pagetitles.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(w, "body", "request body is required")
		} else {
			badRequest(w, "body", "invalid JSON payload")
		}
		return pagetitles.SaveRequest{}, false
	}
	return req, true
}
