package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/blog"
	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
)

const defaultAuditLimit = 50

type blogImportPayload struct {
	Source    string `json:"source"`
	Directory string `json:"directory,omitempty"`
}

func (api *AdminAPI) registerJobRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "translations/{kind}/backfill"), api.guard(api.handleBackfill))
	mux.HandleFunc("POST "+joinPath(base, "blog/import"), api.guard(api.handleBlogImport))
	mux.HandleFunc("GET "+joinPath(base, "jobs/audit"), api.guard(api.handleAuditList))
}

func (api *AdminAPI) handleBackfill(w http.ResponseWriter, r *http.Request) {
	if api.backfill == nil {
		unavailable(w)
		return
	}
	var report backfill.Report
	cmd := backfillcmd.RunBackfillCommand{
		Kind:      r.PathValue("kind"),
		Overwrite: parseBoolQuery(r.URL.Query().Get("overwrite"), false),
		ResultCallback: func(result backfill.Report) {
			report = result
		},
	}
	if err := api.backfill.Execute(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	if report.Errors == nil {
		report.Errors = []backfill.ItemError{}
	}
	writeJSON(w, http.StatusOK, report)
}

func (api *AdminAPI) handleBlogImport(w http.ResponseWriter, r *http.Request) {
	var payload blogImportPayload
	if err := decodeJSON(w, r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "body", "invalid JSON payload")
		return
	}

	var report blog.Report
	capture := func(result blog.Report) { report = result }

	switch strings.ToLower(strings.TrimSpace(payload.Source)) {
	case "", blog.SourceWordPress:
		if api.importWP == nil {
			unavailable(w)
			return
		}
		if err := api.importWP.Execute(r.Context(), blogcmd.ImportWordPressCommand{ResultCallback: capture}); err != nil {
			writeError(w, err)
			return
		}
	case blog.SourceMarkdown:
		if api.importMarkdown == nil {
			unavailable(w)
			return
		}
		dir := strings.TrimSpace(payload.Directory)
		if dir == "" {
			dir = api.markdownDir
		}
		cmd := blogcmd.ImportMarkdownCommand{Directory: dir, ResultCallback: capture}
		if err := api.importMarkdown.Execute(r.Context(), cmd); err != nil {
			writeError(w, err)
			return
		}
	default:
		badRequest(w, "source", "source must be wordpress or markdown")
		return
	}

	if report.Errors == nil {
		report.Errors = []string{}
	}
	writeJSON(w, http.StatusOK, report)
}

func (api *AdminAPI) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if api.audit == nil {
		unavailable(w)
		return
	}
	limit := parseIntQuery(r.URL.Query().Get("limit"), defaultAuditLimit)
	events, err := api.audit.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("job")), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []jobs.AuditEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
