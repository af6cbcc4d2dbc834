// Package pagetitles stores per-page, per-locale hero title overrides.
package pagetitles

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Override replaces the hero title, badge or subtitle of one page in one
// locale. Empty fields defer to the content record.
type Override struct {
	bun.BaseModel `bun:"table:page_title_overrides,alias:pto"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	PageKey   string    `bun:"page_key,notnull"   json:"page_key"`
	Locale    string    `bun:"locale,notnull"     json:"locale"`
	Title     string    `bun:"title"              json:"title,omitempty"`
	Badge     string    `bun:"badge"              json:"badge,omitempty"`
	Subtitle  string    `bun:"subtitle"           json:"subtitle,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (o *Override) clone() *Override {
	if o == nil {
		return nil
	}
	cloned := *o
	return &cloned
}

// NormalizePageKey trims slashes and whitespace and lower-cases the key, so
// "/Services/MLM-Consulting/" and "services/mlm-consulting" are the same page.
func NormalizePageKey(key string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(key), "/"))
}

var (
	ErrDuplicateOverride = errors.New("pagetitles: an override already exists for this page and locale")
)

// NotFoundError represents missing overrides.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
