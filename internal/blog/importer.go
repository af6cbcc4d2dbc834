// Package blog migrates blog posts into the content store, either from a
// WordPress site or from a directory of markdown files.
package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/identity"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Import sources, used in deterministic ids and audit events.
const (
	SourceWordPress = "wordpress"
	SourceMarkdown  = "markdown"
)

// JobName is the audit job name of import runs.
const JobName = "blog_import"

// ErrNoWordPressClient is returned by ImportWordPress when the importer has
// no client configured.
var ErrNoWordPressClient = errors.New("blog: wordpress client not configured")

// Report counts the posts handled by an import run.
type Report struct {
	Source  string   `json:"source"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Locales is the subset of the locale resolver the importer needs.
type Locales interface {
	Default() string
	IsSupported(tag string) bool
}

// PostSource pages through remote posts.
type PostSource interface {
	Posts(ctx context.Context, page int) (PostPage, error)
}

type Option func(*Importer)

func WithWordPress(source PostSource) Option {
	return func(i *Importer) {
		i.wordpress = source
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(i *Importer) {
		if clock != nil {
			i.now = clock
		}
	}
}

func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(i *Importer) {
		i.audit = recorder
	}
}

// Importer upserts blog_post records. Imported posts get deterministic ids,
// so re-running an import updates rows in place.
type Importer struct {
	repo      content.Repository
	locales   Locales
	wordpress PostSource
	audit     jobs.AuditRecorder
	logger    interfaces.Logger
	now       func() time.Time
}

func NewImporter(repo content.Repository, locales Locales, opts ...Option) *Importer {
	importer := &Importer{
		repo:    repo,
		locales: locales,
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(importer)
		}
	}
	return importer
}

// ImportWordPress walks every page of the configured WordPress site.
func (i *Importer) ImportWordPress(ctx context.Context) (Report, error) {
	report := Report{Source: SourceWordPress, Errors: []string{}}
	if i.wordpress == nil {
		return report, ErrNoWordPressClient
	}
	logger := i.logger.WithContext(ctx)

	for page, total := 1, 1; page <= total; page++ {
		result, err := i.wordpress.Posts(ctx, page)
		if err != nil {
			i.recordAudit(ctx, report, err)
			return report, err
		}
		total = result.TotalPages
		logger.Debug("blog.import.page", "page", page, "total_pages", total, "posts", len(result.Posts))

		for _, post := range result.Posts {
			record, ok := i.recordFromPost(post)
			if !ok {
				report.Skipped++
				continue
			}
			i.upsert(ctx, record, &report)
		}
	}

	i.finish(ctx, logger, report)
	return report, nil
}

// ImportMarkdown imports every .md file under fsys. Drafts are skipped.
func (i *Importer) ImportMarkdown(ctx context.Context, fsys fs.FS) (Report, error) {
	report := Report{Source: SourceMarkdown, Errors: []string{}}
	logger := i.logger.WithContext(ctx)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}
		source, err := fs.ReadFile(fsys, p)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			return nil
		}
		doc, err := ParseDocument(p, source)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			return nil
		}
		record, ok := i.recordFromDocument(doc)
		if !ok {
			report.Skipped++
			return nil
		}
		i.upsert(ctx, record, &report)
		return nil
	})
	if err != nil {
		i.recordAudit(ctx, report, err)
		return report, err
	}

	i.finish(ctx, logger, report)
	return report, nil
}

func (i *Importer) recordFromPost(post Post) (*content.Record, bool) {
	title := plainText(post.TitleHTML)
	if post.ID == 0 || title == "" {
		return nil, false
	}
	slugValue := normalizeSlug(post.Slug, title)
	image := post.FeaturedImage
	if image == "" {
		image = firstImage(post.ContentHTML)
	}
	published := post.PublishedAt
	fields := map[string]any{
		"source":      SourceWordPress,
		"external_id": strconv.FormatInt(post.ID, 10),
		"body_html":   post.ContentHTML,
		"source_url":  post.Link,
	}
	if !published.IsZero() {
		fields["published_at"] = published.UTC().Format(time.RFC3339)
	}
	groupID := identity.ImportedGroupUUID(SourceWordPress, strconv.FormatInt(post.ID, 10))
	return &content.Record{
		ID:          identity.RecordUUID(groupID, i.locales.Default()),
		GroupID:     groupID,
		Kind:        content.KindBlogPost,
		Locale:      i.locales.Default(),
		Slug:        slugValue,
		Title:       title,
		Description: excerpt(post.ExcerptHTML),
		Image:       image,
		Fields:      fields,
	}, true
}

func (i *Importer) recordFromDocument(doc Document) (*content.Record, bool) {
	if doc.Draft || doc.Title == "" {
		return nil, false
	}
	locale := doc.Locale
	if locale == "" || !i.locales.IsSupported(locale) {
		locale = i.locales.Default()
	}
	slugValue := normalizeSlug(doc.Slug, doc.Title)
	if slugValue == "" {
		return nil, false
	}
	description := doc.Summary
	if description == "" {
		description = excerpt(doc.BodyHTML)
	}
	fields := map[string]any{
		"source":    SourceMarkdown,
		"body_html": doc.BodyHTML,
		"file":      doc.Path,
	}
	if len(doc.Tags) > 0 {
		tags := make([]any, len(doc.Tags))
		for n, tag := range doc.Tags {
			tags[n] = tag
		}
		fields["tags"] = tags
	}
	if !doc.Date.IsZero() {
		fields["published_at"] = doc.Date.UTC().Format(time.RFC3339)
	}
	groupID := identity.ImportedGroupUUID(SourceMarkdown, slugValue)
	return &content.Record{
		ID:          identity.RecordUUID(groupID, locale),
		GroupID:     groupID,
		Kind:        content.KindBlogPost,
		Locale:      locale,
		Slug:        slugValue,
		Title:       doc.Title,
		Description: description,
		Image:       doc.Image,
		Fields:      fields,
	}, true
}

// upsert creates the record, updates it when the imported attributes
// changed, and otherwise counts it as skipped. Store failures are collected
// in the report.
func (i *Importer) upsert(ctx context.Context, record *content.Record, report *Report) {
	now := i.now().UTC()
	existing, err := i.repo.GetByID(ctx, record.ID)
	switch {
	case content.IsNotFound(err):
		record.CreatedAt = now
		record.UpdatedAt = now
		if _, err := i.repo.Create(ctx, record); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", record.Slug, err))
			return
		}
		report.Created++
	case err != nil:
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", record.Slug, err))
	case unchanged(existing, record):
		report.Skipped++
	default:
		updated := existing.Clone()
		updated.Slug = record.Slug
		updated.Title = record.Title
		updated.Description = record.Description
		updated.Image = record.Image
		updated.Fields = record.Fields
		updated.UpdatedAt = now
		if _, err := i.repo.Update(ctx, updated); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", record.Slug, err))
			return
		}
		report.Updated++
	}
}

func unchanged(existing, incoming *content.Record) bool {
	return existing.Slug == incoming.Slug &&
		existing.Title == incoming.Title &&
		existing.Description == incoming.Description &&
		existing.Image == incoming.Image &&
		reflect.DeepEqual(existing.Fields, incoming.Fields)
}

func (i *Importer) finish(ctx context.Context, logger interfaces.Logger, report Report) {
	logger.Info("blog.import.completed",
		"source", report.Source,
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
	)
	i.recordAudit(ctx, report, nil)
}

func (i *Importer) recordAudit(ctx context.Context, report Report, runErr error) {
	if i.audit == nil {
		return
	}
	event := jobs.AuditEvent{
		Job:        JobName,
		Subject:    report.Source,
		Action:     jobs.ActionCompleted,
		OccurredAt: i.now(),
		Metadata: map[string]any{
			"created": report.Created,
			"updated": report.Updated,
			"skipped": report.Skipped,
			"errors":  len(report.Errors),
		},
	}
	if runErr != nil {
		event.Action = jobs.ActionFailed
		event.Metadata["error"] = runErr.Error()
	}
	if err := i.audit.Record(context.WithoutCancel(ctx), event); err != nil {
		i.logger.Warn("blog.import.audit_failed", "error", err)
	}
}

func normalizeSlug(explicit, title string) string {
	for _, candidate := range []string{explicit, title} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
			return normalized
		}
	}
	return ""
}
