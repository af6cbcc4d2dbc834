package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/blog"
	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/internal/simulators"
	"github.com/cloudmlm/go-sitecms/internal/titles"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

type issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message,omitempty"`
	Issues  []issue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.Trim(strings.TrimSpace(base), "/")
	trimmedSuffix := strings.Trim(strings.TrimSpace(suffix), "/")
	switch {
	case trimmedBase == "" && trimmedSuffix == "":
		return "/"
	case trimmedBase == "":
		return "/" + trimmedSuffix
	case trimmedSuffix == "":
		return "/" + trimmedBase
	}
	return "/" + trimmedBase + "/" + trimmedSuffix
}

// decodeJSON decodes the request body into target. An empty body leaves
// target untouched and returns io.EOF.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(target)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func badRequest(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "validation_failed",
		Message: message,
		Issues:  []issue{{Field: field, Message: message}},
	})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, interfaces.ErrNoSession) || goerrors.IsCategory(err, goerrors.CategoryAuth) {
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "admin session required"}
	}

	if fieldErrs, ok := goerrors.GetValidationErrors(err); ok || goerrors.IsCategory(err, goerrors.CategoryValidation) {
		resp := errorResponse{Error: "validation_failed", Message: validationMessage(err)}
		for _, fieldErr := range fieldErrs {
			resp.Issues = append(resp.Issues, issue{Field: fieldErr.Field, Message: fieldErr.Message})
		}
		return http.StatusBadRequest, resp
	}

	fieldIssues := []struct {
		target error
		field  string
	}{
		{content.ErrUnknownKind, "kind"},
		{content.ErrKindMismatch, "kind"},
		{content.ErrGroupNotFound, "group_id"},
		{blog.ErrNoWordPressClient, "source"},
	}
	for _, candidate := range fieldIssues {
		if errors.Is(err, candidate.target) {
			return http.StatusBadRequest, errorResponse{
				Error:   "validation_failed",
				Message: err.Error(),
				Issues:  []issue{{Field: candidate.field, Message: err.Error()}},
			}
		}
	}

	if content.IsNotFound(err) || pagetitles.IsNotFound(err) ||
		errors.Is(err, overrides.ErrOverridesNotFound) ||
		errors.Is(err, simulators.ErrUnknownSimulator) ||
		goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	if errors.Is(err, content.ErrDuplicateLocale) ||
		errors.Is(err, pagetitles.ErrDuplicateOverride) ||
		errors.Is(err, titles.ErrAmbiguousMatch) ||
		goerrors.IsCategory(err, goerrors.CategoryConflict) {
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

// validationMessage prefers the go-errors message over the flattened
// error string, which repeats every field.
func validationMessage(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) && typed.Message != "" {
		return typed.Message
	}
	return err.Error()
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntQuery(value string, defaultValue int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
