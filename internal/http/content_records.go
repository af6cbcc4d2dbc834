package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/google/uuid"
)

type contentUpdatePayload struct {
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Icon           string         `json:"icon"`
	Image          string         `json:"image"`
	ShowOnHomePage bool           `json:"show_on_home_page"`
	SortOrder      int            `json:"sort_order"`
	Fields         map[string]any `json:"fields"`
}

type groupDeleteResponse struct {
	GroupID uuid.UUID `json:"group_id"`
	Deleted int       `json:"deleted"`
}

func (api *AdminAPI) registerContentRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "content")
	mux.HandleFunc("GET "+root, api.guard(api.handleContentList))
	mux.HandleFunc("POST "+root, api.guard(api.handleContentCreate))
	mux.HandleFunc("GET "+root+"/{id}", api.guard(api.handleContentGet))
	mux.HandleFunc("PUT "+root+"/{id}", api.guard(api.handleContentUpdate))
	mux.HandleFunc("DELETE "+root+"/{id}", api.guard(api.handleContentDelete))
	mux.HandleFunc("GET "+root+"/{id}/translations", api.guard(api.handleContentTranslations))
	mux.HandleFunc("DELETE "+root+"/groups/{groupID}", api.guard(api.handleContentGroupDelete))
}

func (api *AdminAPI) handleContentList(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	var kind content.Kind
	if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
		parsed, err := content.ParseKind(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		kind = parsed
	}
	locale := strings.TrimSpace(r.URL.Query().Get("locale"))
	if locale != "" && !api.locales.IsSupported(locale) {
		badRequest(w, "locale", "locale is not supported")
		return
	}
	records, err := api.content.List(r.Context(), kind, locale)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*content.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleContentGet(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	record, err := api.content.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleContentTranslations(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	records, err := api.content.Translations(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleContentCreate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	var req content.CreateRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(w, "body", "request body is required")
			return
		}
		badRequest(w, "body", "invalid JSON payload")
		return
	}
	record, err := api.content.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	api.logger.WithContext(r.Context()).Info("http.admin.content.created",
		"record_id", record.ID, "kind", record.Kind, "locale", record.Locale)
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	var payload contentUpdatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(w, "body", "request body is required")
			return
		}
		badRequest(w, "body", "invalid JSON payload")
		return
	}
	record, err := api.content.Update(r.Context(), content.UpdateRecordRequest{
		ID:             id,
		Slug:           payload.Slug,
		Title:          payload.Title,
		Description:    payload.Description,
		Icon:           payload.Icon,
		Image:          payload.Image,
		ShowOnHomePage: payload.ShowOnHomePage,
		SortOrder:      payload.SortOrder,
		Fields:         payload.Fields,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id", "invalid id")
		return
	}
	if err := api.content.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleContentGroupDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	groupID, err := parseUUID(r.PathValue("groupID"))
	if err != nil {
		badRequest(w, "group_id", "invalid group id")
		return
	}
	deleted, err := api.content.DeleteGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.logger.WithContext(r.Context()).Info("http.admin.content.group_deleted", "group_id", groupID, "deleted", deleted)
	writeJSON(w, http.StatusOK, groupDeleteResponse{GroupID: groupID, Deleted: deleted})
}
