package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/identity"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service exposes admin CRUD over content records.
type Service interface {
	List(ctx context.Context, kind Kind, locale string) ([]*Record, error)
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Translations(ctx context.Context, id uuid.UUID) ([]*Record, error)
	Create(ctx context.Context, req CreateRecordRequest) (*Record, error)
	Update(ctx context.Context, req UpdateRecordRequest) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error)
}

// Locales is the subset of the locale resolver the service needs.
type Locales interface {
	IsSupported(tag string) bool
	Default() string
	Supported() []string
}

// CreateRecordRequest creates a record. A nil GroupID starts a new
// translation group; otherwise the record joins the existing group.
type CreateRecordRequest struct {
	GroupID        uuid.UUID      `json:"group_id"`
	Kind           Kind           `json:"kind"`
	Locale         string         `json:"locale"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Icon           string         `json:"icon"`
	Image          string         `json:"image"`
	ShowOnHomePage bool           `json:"show_on_home_page"`
	SortOrder      int            `json:"sort_order"`
	Fields         map[string]any `json:"fields"`
}

// UpdateRecordRequest replaces the editable attributes of a record.
type UpdateRecordRequest struct {
	ID             uuid.UUID      `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Icon           string         `json:"icon"`
	Image          string         `json:"image"`
	ShowOnHomePage bool           `json:"show_on_home_page"`
	SortOrder      int            `json:"sort_order"`
	Fields         map[string]any `json:"fields"`
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator returns new translation group ids.
type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newGroupID = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo       Repository
	locales    Locales
	now        func() time.Time
	newGroupID IDGenerator
	logger     interfaces.Logger
}

// NewService returns the admin content service.
func NewService(repo Repository, locales Locales, opts ...ServiceOption) Service {
	s := &service{
		repo:       repo,
		locales:    locales,
		now:        time.Now,
		newGroupID: uuid.New,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) List(ctx context.Context, kind Kind, locale string) ([]*Record, error) {
	if kind != "" && !kind.Valid() {
		return nil, goerrors.NewValidation("content kind is invalid",
			goerrors.FieldError{Field: "kind", Message: ErrUnknownKind.Error(), Value: string(kind)})
	}
	return s.repo.List(ctx, kind, locale)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Translations returns every locale variant of the record's group,
// including the record itself.
func (s *service) Translations(ctx context.Context, id uuid.UUID) ([]*Record, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListGroup(ctx, record.GroupID)
}

func (s *service) Create(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	req.Locale = normalizeLocale(req.Locale)
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}
	slugValue, err := normalizeSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	groupID := req.GroupID
	var siblings []*Record
	if groupID == uuid.Nil {
		groupID = s.newGroupID()
	} else {
		siblings, err = s.repo.ListGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if len(siblings) == 0 {
			return nil, ErrGroupNotFound
		}
		for _, sibling := range siblings {
			if sibling.Kind != req.Kind {
				return nil, ErrKindMismatch
			}
			if sibling.Locale == req.Locale {
				return nil, ErrDuplicateLocale
			}
		}
	}

	now := s.now().UTC()
	record := &Record{
		ID:             identity.RecordUUID(groupID, req.Locale),
		GroupID:        groupID,
		Kind:           req.Kind,
		Locale:         req.Locale,
		Slug:           slugValue,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Icon:           strings.TrimSpace(req.Icon),
		Image:          strings.TrimSpace(req.Image),
		ShowOnHomePage: req.ShowOnHomePage,
		SortOrder:      req.SortOrder,
		Fields:         cloneFields(req.Fields),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if source := s.defaultVariant(siblings); source != nil && record.Locale != s.locales.Default() {
		copyShared(record, source)
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if created.Locale == s.locales.Default() {
		if err := s.propagate(ctx, created, siblings); err != nil {
			return nil, err
		}
	}
	logging.WithLocaleContext(s.logger.WithContext(ctx), string(created.Kind), created.Locale).
		Info("content.record.created", "record_id", created.ID, "group_id", created.GroupID)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRecordRequest) (*Record, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	slugValue, err := normalizeSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	siblings, err := s.repo.ListGroup(ctx, existing.GroupID)
	if err != nil {
		return nil, err
	}

	existing.Slug = slugValue
	existing.Title = strings.TrimSpace(req.Title)
	existing.Description = strings.TrimSpace(req.Description)
	existing.Icon = strings.TrimSpace(req.Icon)
	existing.Image = strings.TrimSpace(req.Image)
	existing.ShowOnHomePage = req.ShowOnHomePage
	existing.SortOrder = req.SortOrder
	existing.Fields = cloneFields(req.Fields)
	existing.UpdatedAt = s.now().UTC()

	isDefault := existing.Locale == s.locales.Default()
	if !isDefault {
		if source := s.defaultVariant(siblings); source != nil {
			copyShared(existing, source)
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if isDefault {
		if err := s.propagate(ctx, updated, siblings); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	deleted, err := s.repo.DeleteGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, &NotFoundError{Resource: "content_group", Key: groupID.String()}
	}
	s.logger.WithContext(ctx).Info("content.group.deleted", "group_id", groupID, "deleted", deleted)
	return deleted, nil
}

// propagate copies the shared attributes of the default-locale row to every
// sibling that differs.
func (s *service) propagate(ctx context.Context, source *Record, siblings []*Record) error {
	var errs []error
	for _, sibling := range siblings {
		if sibling.ID == source.ID || !sharedDiffers(sibling, source) {
			continue
		}
		copyShared(sibling, source)
		sibling.UpdatedAt = source.UpdatedAt
		if _, err := s.repo.Update(ctx, sibling); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) defaultVariant(siblings []*Record) *Record {
	for _, sibling := range siblings {
		if sibling.Locale == s.locales.Default() {
			return sibling
		}
	}
	return nil
}

func copyShared(dst, src *Record) {
	dst.Icon = src.Icon
	dst.Image = src.Image
	dst.ShowOnHomePage = src.ShowOnHomePage
}

func sharedDiffers(a, b *Record) bool {
	return a.Icon != b.Icon || a.Image != b.Image || a.ShowOnHomePage != b.ShowOnHomePage
}

func (s *service) validateCreate(req CreateRecordRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Kind,
			validation.Required.Error("kind is required"),
			validation.By(func(any) error {
				if !req.Kind.Valid() {
					return validation.NewError("validation_kind_unknown", "kind is not a known content collection")
				}
				return nil
			}),
		),
		validation.Field(&req.Locale,
			validation.Required.Error("locale is required"),
			validation.By(func(any) error {
				if !s.locales.IsSupported(req.Locale) {
					return validation.NewError("validation_locale_unsupported", "locale is not supported")
				}
				return nil
			}),
		),
		validation.Field(&req.Title, validation.Required.Error("title is required"), validation.Length(1, 300)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "content record is invalid")
	}
	return nil
}

func validateUpdate(req UpdateRecordRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.By(func(any) error {
			if req.ID == uuid.Nil {
				return validation.NewError("validation_id_required", "id is required")
			}
			return nil
		})),
		validation.Field(&req.Title, validation.Required.Error("title is required"), validation.Length(1, 300)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "content record is invalid")
	}
	return nil
}

// normalizeSlug validates an explicit slug or derives one from the title.
// Titles that produce no slug (for example CJK titles) leave it empty.
func normalizeSlug(explicit, title string) (string, error) {
	if value := strings.TrimSpace(explicit); value != "" {
		normalized, err := slug.Normalize(value)
		if err != nil || normalized == "" || !slug.IsValid(normalized) {
			return "", goerrors.NewValidation("content record is invalid",
				goerrors.FieldError{Field: "slug", Message: "slug is invalid", Value: explicit})
		}
		return normalized, nil
	}
	normalized, err := slug.Normalize(title)
	if err != nil {
		return "", nil
	}
	return normalized, nil
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
