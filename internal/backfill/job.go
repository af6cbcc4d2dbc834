// Package backfill fills missing locale variants of content records by
// machine translating the default-locale rows.
package backfill

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/internal/identity"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// JobName is the audit job name of backfill runs.
const JobName = "translation_backfill"

// Locales is the subset of the locale resolver the job needs.
type Locales interface {
	Default() string
	NonDefault() []string
}

// Request selects the records to backfill.
type Request struct {
	Kind      content.Kind `json:"kind"`
	Overwrite bool         `json:"overwrite"`
}

// Report summarises a run. Translated and Skipped count (record, locale)
// pairs.
type Report struct {
	Kind       content.Kind `json:"kind"`
	Translated int          `json:"translated"`
	Skipped    int          `json:"skipped"`
	Errors     []ItemError  `json:"errors"`
}

// ItemError is the failure of one (record, locale) pair.
type ItemError struct {
	RecordID string `json:"record_id"`
	Locale   string `json:"locale"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

func (e ItemError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s/%s: %s", e.RecordID, e.Locale, e.Message)
	}
	return fmt.Sprintf("%s/%s %s: %s", e.RecordID, e.Locale, e.Field, e.Message)
}

func (e ItemError) Unwrap() error { return e.Err }

// Option configures a Job.
type Option func(*Job)

func WithLogger(logger interfaces.Logger) Option {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(j *Job) {
		if clock != nil {
			j.now = clock
		}
	}
}

// WithScalarFields sets the string fields translated besides title and
// description. The default is badge and subtitle.
func WithScalarFields(fields ...string) Option {
	return func(j *Job) {
		j.scalarFields = slices.Clone(fields)
	}
}

func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(j *Job) {
		j.audit = recorder
	}
}

// Job runs backfills. Calls to the translator happen one at a time; pacing
// between vendor calls is the translator's concern.
type Job struct {
	repo         content.Repository
	translator   interfaces.Translator
	locales      Locales
	scalarFields []string
	audit        jobs.AuditRecorder
	logger       interfaces.Logger
	now          func() time.Time
}

func NewJob(repo content.Repository, translator interfaces.Translator, locales Locales, opts ...Option) *Job {
	job := &Job{
		repo:         repo,
		translator:   translator,
		locales:      locales,
		scalarFields: []string{"badge", "subtitle"},
		logger:       logging.NoOp(),
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(job)
		}
	}
	return job
}

// Run translates every default-locale record of req.Kind into each missing
// locale, or every locale when req.Overwrite is set. Per-pair failures are
// collected in the report; only listing failures and cancellation abort
// the run.
func (j *Job) Run(ctx context.Context, req Request) (Report, error) {
	report := Report{Kind: req.Kind, Errors: []ItemError{}}
	if !req.Kind.Valid() {
		return report, fmt.Errorf("%w: %q", content.ErrUnknownKind, req.Kind)
	}
	logger := logging.WithLocaleContext(j.logger.WithContext(ctx), string(req.Kind), "")
	started := j.now()

	records, err := j.repo.List(ctx, req.Kind, "")
	if err != nil {
		j.recordAudit(ctx, req, report, err)
		return report, err
	}

	source := j.locales.Default()
	targets := j.locales.NonDefault()
	for _, record := range records {
		if record.Locale != source {
			continue
		}
		existing := siblingsByLocale(record, records)
		for _, target := range targets {
			if err := ctx.Err(); err != nil {
				j.recordAudit(ctx, req, report, err)
				return report, err
			}
			sibling, covered := existing[target]
			if covered && !req.Overwrite {
				report.Skipped++
				continue
			}
			if itemErr := j.translateRecord(ctx, record, sibling, target); itemErr != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					j.recordAudit(ctx, req, report, ctxErr)
					return report, ctxErr
				}
				logger.Warn("backfill.item_failed",
					"record_id", itemErr.RecordID,
					"target_locale", itemErr.Locale,
					"field", itemErr.Field,
					"error", itemErr.Err,
				)
				report.Errors = append(report.Errors, *itemErr)
				continue
			}
			report.Translated++
		}
	}

	logger.Info("backfill.completed",
		"translated", report.Translated,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
		"overwrite", req.Overwrite,
		"duration_ms", j.now().Sub(started).Milliseconds(),
	)
	j.recordAudit(ctx, req, report, nil)
	return report, nil
}

func (j *Job) translateRecord(ctx context.Context, source, sibling *content.Record, target string) *ItemError {
	fail := func(field string, err error) *ItemError {
		return &ItemError{RecordID: source.ID.String(), Locale: target, Field: field, Message: err.Error(), Err: err}
	}

	title, err := j.translate(ctx, source.Title, target)
	if err != nil {
		return fail("title", err)
	}
	description, err := j.translate(ctx, source.Description, target)
	if err != nil {
		return fail("description", err)
	}
	fields := j.translateFields(ctx, source.Fields, target)

	now := j.now().UTC()
	if sibling != nil {
		updated := sibling.Clone()
		updated.Title = title
		updated.Description = description
		updated.Fields = fields
		copyShared(updated, source)
		updated.UpdatedAt = now
		if _, err := j.repo.Update(ctx, updated); err != nil {
			return fail("", err)
		}
		return nil
	}

	created := &content.Record{
		ID:          identity.RecordUUID(source.GroupID, target),
		GroupID:     source.GroupID,
		Kind:        source.Kind,
		Locale:      target,
		Slug:        source.Slug,
		Title:       title,
		Description: description,
		SortOrder:   source.SortOrder,
		Fields:      fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	copyShared(created, source)
	if _, err := j.repo.Create(ctx, created); err != nil {
		return fail("", err)
	}
	return nil
}

func (j *Job) translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	return j.translator.Translate(ctx, text, j.locales.Default(), target)
}

// translateSoft falls back to the original text when every vendor fails.
func (j *Job) translateSoft(ctx context.Context, text, target string) string {
	translated, err := j.translate(ctx, text, target)
	if err != nil {
		return text
	}
	return translated
}

func (j *Job) recordAudit(ctx context.Context, req Request, report Report, runErr error) {
	if j.audit == nil {
		return
	}
	event := jobs.AuditEvent{
		Job:        JobName,
		Subject:    string(req.Kind),
		Action:     jobs.ActionCompleted,
		OccurredAt: j.now(),
		Metadata: map[string]any{
			"overwrite":  req.Overwrite,
			"translated": report.Translated,
			"skipped":    report.Skipped,
			"errors":     len(report.Errors),
		},
	}
	if runErr != nil {
		event.Action = jobs.ActionFailed
		event.Metadata["error"] = runErr.Error()
	}
	// The context may already be cancelled; the audit row should still land.
	if err := j.audit.Record(context.WithoutCancel(ctx), event); err != nil {
		j.logger.Warn("backfill.audit_failed", "error", err)
	}
}

// siblingsByLocale indexes the translations of record by locale.
func siblingsByLocale(record *content.Record, records []*content.Record) map[string]*content.Record {
	out := make(map[string]*content.Record)
	for _, candidate := range records {
		if candidate.ID == record.ID || candidate.Locale == record.Locale || !record.SameGroup(candidate) {
			continue
		}
		if _, exists := out[candidate.Locale]; !exists {
			out[candidate.Locale] = candidate
		}
	}
	return out
}

func copyShared(dst, src *content.Record) {
	dst.Icon = src.Icon
	dst.Image = src.Image
	dst.ShowOnHomePage = src.ShowOnHomePage
}
