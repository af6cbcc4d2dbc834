// Package content stores the localized marketing records (services, plans,
// industry solutions, blog posts and the rest) and keeps translation groups
// consistent.
package content

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind names a content collection.
type Kind string

const (
	KindService          Kind = "service"
	KindPlan             Kind = "plan"
	KindIndustrySolution Kind = "industry_solution"
	KindBlogPost         Kind = "blog_post"
	KindTestimonial      Kind = "testimonial"
	KindDemoItem         Kind = "demo_item"
	KindFAQ              Kind = "faq"
)

var kinds = []Kind{KindService, KindPlan, KindIndustrySolution, KindBlogPost, KindTestimonial, KindDemoItem, KindFAQ}

// Kinds lists every known collection.
func Kinds() []Kind { return slices.Clone(kinds) }

// Valid reports whether k is a known collection.
func (k Kind) Valid() bool { return slices.Contains(kinds, k) }

// ParseKind accepts the collection name in any case, with dashes or
// underscores.
func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_"))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
	return k, nil
}

// Record is one locale variant of a piece of marketing content. Rows of the
// same logical entity share GroupID.
type Record struct {
	bun.BaseModel `bun:"table:content_records,alias:cr"`

	ID             uuid.UUID      `bun:",pk,type:uuid"                             json:"id"`
	GroupID        uuid.UUID      `bun:"group_id,notnull,type:uuid"                json:"group_id"`
	Kind           Kind           `bun:"kind,notnull"                              json:"kind"`
	Locale         string         `bun:"locale,notnull"                            json:"locale"`
	Slug           string         `bun:"slug"                                      json:"slug,omitempty"`
	Title          string         `bun:"title,notnull"                             json:"title"`
	Description    string         `bun:"description"                               json:"description,omitempty"`
	Icon           string         `bun:"icon"                                      json:"icon,omitempty"`
	Image          string         `bun:"image"                                     json:"image,omitempty"`
	ShowOnHomePage bool           `bun:"show_on_home_page,notnull,default:false"   json:"show_on_home_page"`
	SortOrder      int            `bun:"sort_order,notnull,default:0"              json:"sort_order"`
	Fields         map[string]any `bun:"fields,type:jsonb"                         json:"fields,omitempty"`
	CreatedAt      time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// GroupKey ties together variants that were created without a shared group
// id. It is built from the attributes that never change between locales.
func (r *Record) GroupKey() string {
	if r == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(r.Icon)) + "|" + strconv.FormatBool(r.ShowOnHomePage)
}

// SameGroup reports whether other is a translation of r.
func (r *Record) SameGroup(other *Record) bool {
	if r == nil || other == nil || r.Kind != other.Kind {
		return false
	}
	if r.GroupID != uuid.Nil && other.GroupID != uuid.Nil {
		return r.GroupID == other.GroupID
	}
	return r.GroupKey() == other.GroupKey()
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cloned := *r
	cloned.Fields = cloneFields(r.Fields)
	return &cloned
}

func cloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneFields(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(typed)
	default:
		return value
	}
}

// FieldKeys returns the structured field names in a stable order.
func (r *Record) FieldKeys() []string {
	return slices.Sorted(maps.Keys(r.Fields))
}
