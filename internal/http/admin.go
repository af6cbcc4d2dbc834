package http

import (
	"fmt"
	"net/http"
	"strings"

	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// Locales is the subset of the locale resolver the handlers need.
type Locales interface {
	Resolve(tag string) string
	IsSupported(tag string) bool
	Default() string
	Supported() []string
	MatchAcceptLanguage(header string) string
}

// AdminAPI registers the session-gated admin endpoints.
type AdminAPI struct {
	basePath       string
	sessions       interfaces.SessionValidator
	locales        Locales
	content        content.Service
	pageTitles     pagetitles.Service
	layout         overrides.Service
	backfill       command.Commander[backfillcmd.RunBackfillCommand]
	importWP       command.Commander[blogcmd.ImportWordPressCommand]
	importMarkdown command.Commander[blogcmd.ImportMarkdownCommand]
	markdownDir    string
	audit          jobs.AuditRecorder
	logger         interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI. Without a session validator every
// admin request is rejected with 401.
func NewAdminAPI(locales Locales, opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
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

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithSessionValidator(validator interfaces.SessionValidator) AdminOption {
	return func(api *AdminAPI) {
		api.sessions = validator
	}
}

func WithContentService(service content.Service) AdminOption {
	return func(api *AdminAPI) {
		api.content = service
	}
}

func WithPageTitleService(service pagetitles.Service) AdminOption {
	return func(api *AdminAPI) {
		api.pageTitles = service
	}
}

func WithLayoutService(service overrides.Service) AdminOption {
	return func(api *AdminAPI) {
		api.layout = service
	}
}

// WithBackfillHandler wires the command behind POST /translations/{kind}/backfill.
func WithBackfillHandler(handler command.Commander[backfillcmd.RunBackfillCommand]) AdminOption {
	return func(api *AdminAPI) {
		api.backfill = handler
	}
}

// WithBlogImportHandlers wires the commands behind POST /blog/import.
// markdownDir is used when a markdown import does not name a directory.
func WithBlogImportHandlers(wordpress command.Commander[blogcmd.ImportWordPressCommand], markdown command.Commander[blogcmd.ImportMarkdownCommand], markdownDir string) AdminOption {
	return func(api *AdminAPI) {
		api.importWP = wordpress
		api.importMarkdown = markdown
		api.markdownDir = markdownDir
	}
}

func WithAuditRecorder(recorder jobs.AuditRecorder) AdminOption {
	return func(api *AdminAPI) {
		api.audit = recorder
	}
}

func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}
	if api.locales == nil {
		return fmt.Errorf("http: admin api requires locales")
	}

	base := joinPath(api.basePath, "")
	api.registerContentRoutes(mux, base)
	api.registerPageTitleRoutes(mux, base)
	api.registerLayoutRoutes(mux, base)
	api.registerJobRoutes(mux, base)
	return nil
}

// guard rejects requests without a valid admin session.
func (api *AdminAPI) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.sessions == nil {
			writeError(w, interfaces.ErrNoSession)
			return
		}
		session, err := api.sessions.ValidateSession(r.Context(), r)
		if err != nil || session == nil {
			api.logger.WithContext(r.Context()).Debug("http.admin.unauthorized", "path", r.URL.Path)
			writeError(w, interfaces.ErrNoSession)
			return
		}
		ctx := logging.ContextWithFields(r.Context(), map[string]any{"admin_subject": session.Subject})
		next(w, r.WithContext(ctx))
	}
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}
