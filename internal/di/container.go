package di

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/auth"
	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/blog"
	backfillcmd "github.com/cloudmlm/go-sitecms/internal/commands/backfill"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	"github.com/cloudmlm/go-sitecms/internal/content"
	sitehttp "github.com/cloudmlm/go-sitecms/internal/http"
	"github.com/cloudmlm/go-sitecms/internal/jobs"
	"github.com/cloudmlm/go-sitecms/internal/locales"
	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/internal/overrides"
	"github.com/cloudmlm/go-sitecms/internal/pagetitles"
	"github.com/cloudmlm/go-sitecms/internal/runtimeconfig"
	"github.com/cloudmlm/go-sitecms/internal/storage"
	"github.com/cloudmlm/go-sitecms/internal/titles"
	"github.com/cloudmlm/go-sitecms/internal/translation"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies from a validated runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	sessions       interfaces.SessionValidator
	translator     interfaces.Translator

	bunDB         *bun.DB
	store         *storage.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	locales    *locales.Resolver
	urlBuilder *locales.URLBuilder

	contentRepo   content.Repository
	pageTitleRepo pagetitles.Repository
	layoutRepo    overrides.Repository
	audit         jobs.AuditRecorder

	contentSvc   content.Service
	pageTitleSvc pagetitles.Service
	layoutSvc    overrides.Service
	titles       *titles.Resolver

	backfillJob *backfill.Job
	importer    *blog.Importer

	backfillHandler  *backfillcmd.RunHandler
	wordpressHandler *blogcmd.ImportWordPressHandler
	markdownHandler  *blogcmd.ImportMarkdownHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by logging.provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used by SQL repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithHTTPClient sets the client used for translation vendors and
// WordPress.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithTranslator replaces the vendor chain built from configuration.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

// WithSessionValidator replaces the bearer token validator.
func WithSessionValidator(validator interfaces.SessionValidator) Option {
	return func(c *Container) {
		c.sessions = validator
	}
}

// WithAuditRecorder replaces the audit recorder derived from storage.
func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(c *Container) {
		c.audit = recorder
	}
}

// NewContainer validates cfg and builds every service. SQL providers are
// opened here unless a database was supplied through WithBunDB.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := locales.New(cfg.I18N.Locales, cfg.DefaultLocale)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		locales: resolver,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureJobs(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureNavigation()
	return c, nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" || provider == storage.ProviderMemory {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := storage.Open(ctx, c.Config.Storage, storage.WithLogger(logging.ModuleLogger(c.loggerProvider, "site.storage")))
	if err != nil {
		return err
	}
	c.bunDB = db.DB
	c.store = db
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		if c.cacheService != nil {
			c.contentRepo = content.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer).
				WithLogger(logging.ModuleLogger(c.loggerProvider, "site.content"))
		} else {
			c.contentRepo = content.NewBunRepository(c.bunDB)
		}
		c.pageTitleRepo = pagetitles.NewBunRepository(c.bunDB)
		c.layoutRepo = overrides.NewBunRepository(c.bunDB)
		if c.audit == nil {
			c.audit = jobs.NewBunAuditRecorder(c.bunDB)
		}
		return
	}

	c.contentRepo = content.NewMemoryRepository()
	c.pageTitleRepo = pagetitles.NewMemoryRepository()
	c.layoutRepo = overrides.NewMemoryRepository()
	if c.audit == nil {
		c.audit = jobs.NewInMemoryAuditRecorder()
	}
}

func (c *Container) configureServices() error {
	c.contentSvc = content.NewService(c.contentRepo, c.locales,
		content.WithLogger(logging.ContentLogger(c.loggerProvider)))
	c.pageTitleSvc = pagetitles.NewService(c.pageTitleRepo, c.locales)
	c.layoutSvc = overrides.NewService(c.layoutRepo, overrides.SiteDefaults(), c.locales,
		overrides.WithLogger(logging.OverridesLogger(c.loggerProvider)))

	rules, err := titles.RulesFromConfig(c.Config.Titles.Rules)
	if err != nil {
		return err
	}
	c.titles = titles.NewResolver(c.contentSvc, c.pageTitleSvc, c.locales,
		titles.WithRules(rules),
		titles.WithStrictMatching(c.Config.Titles.StrictMatching),
		titles.WithLogger(logging.TitlesLogger(c.loggerProvider)),
	)

	if c.sessions == nil {
		if token := strings.TrimSpace(c.Config.HTTP.AdminToken); token != "" {
			c.sessions = auth.NewTokenValidator(token)
		}
	}
	return nil
}

func (c *Container) configureJobs() error {
	client := c.httpClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	if c.translator == nil {
		c.translator = translation.NewChainFromConfig(c.Config.Translation, client,
			translation.WithLogger(logging.ModuleLogger(c.loggerProvider, "site.translation")))
	}

	backfillLogger := logging.BackfillLogger(c.loggerProvider)
	c.backfillJob = backfill.NewJob(c.contentRepo, c.translator,
		sourceLocales{source: c.Config.SourceLocale(), resolver: c.locales},
		backfill.WithLogger(backfillLogger),
		backfill.WithScalarFields(c.Config.Translation.ScalarFields...),
		backfill.WithAuditRecorder(c.audit),
	)
	c.backfillHandler = backfillcmd.NewRunHandler(c.backfillJob, backfillLogger)

	blogLogger := logging.BlogLogger(c.loggerProvider)
	importerOpts := []blog.Option{
		blog.WithLogger(blogLogger),
		blog.WithAuditRecorder(c.audit),
	}
	if wpURL := strings.TrimSpace(c.Config.Blog.WordPressURL); wpURL != "" {
		wp, err := blog.NewWordPressClient(wpURL, c.Config.Blog.PerPage, c.Config.Blog.Delay, client)
		if err != nil {
			return fmt.Errorf("di: wordpress client: %w", err)
		}
		importerOpts = append(importerOpts, blog.WithWordPress(wp))
	}
	c.importer = blog.NewImporter(c.contentRepo, c.locales, importerOpts...)
	c.wordpressHandler = blogcmd.NewImportWordPressHandler(c.importer, blogLogger)
	c.markdownHandler = blogcmd.NewImportMarkdownHandler(c.importer, os.DirFS, blogLogger)
	return nil
}

func (c *Container) configureNavigation() {
	nav := c.Config.Navigation
	if len(nav.Routes) == 0 {
		return
	}
	c.urlBuilder = locales.NewURLBuilder(c.locales, locales.URLOptions{
		BaseURL:      nav.BaseURL,
		Routes:       nav.Routes,
		LocaleRoutes: nav.LocaleRoutes,
	})
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Migrate creates the SQL schema. It is a no-op on the memory provider.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	return storage.Migrate(ctx, c.bunDB)
}

// RegisterHTTP attaches the admin and public APIs to mux.
func (c *Container) RegisterHTTP(mux *http.ServeMux) error {
	httpLogger := logging.HTTPLogger(c.loggerProvider)
	admin := sitehttp.NewAdminAPI(c.locales,
		sitehttp.WithBasePath(c.Config.HTTP.AdminBasePath),
		sitehttp.WithSessionValidator(c.sessions),
		sitehttp.WithContentService(c.contentSvc),
		sitehttp.WithPageTitleService(c.pageTitleSvc),
		sitehttp.WithLayoutService(c.layoutSvc),
		sitehttp.WithBackfillHandler(c.backfillHandler),
		sitehttp.WithBlogImportHandlers(c.wordpressHandler, c.markdownHandler, c.Config.Blog.MarkdownDir),
		sitehttp.WithAuditRecorder(c.audit),
		sitehttp.WithAdminLogger(httpLogger),
	)
	if err := admin.Register(mux); err != nil {
		return err
	}
	public := sitehttp.NewPublicAPI(c.locales,
		sitehttp.WithPublicBasePath(c.Config.HTTP.PublicBasePath),
		sitehttp.WithPublicLayout(c.layoutSvc),
		sitehttp.WithPublicTitles(c.titles),
		sitehttp.WithPublicContent(c.contentSvc),
		sitehttp.WithPublicLogger(httpLogger),
	)
	return public.Register(mux)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Locales() *locales.Resolver { return c.locales }

// URLBuilder is nil when no navigation routes are configured.
func (c *Container) URLBuilder() *locales.URLBuilder { return c.urlBuilder }

func (c *Container) DB() *bun.DB { return c.bunDB }

func (c *Container) ContentRepository() content.Repository { return c.contentRepo }

func (c *Container) ContentService() content.Service { return c.contentSvc }

func (c *Container) PageTitleService() pagetitles.Service { return c.pageTitleSvc }

func (c *Container) LayoutService() overrides.Service { return c.layoutSvc }

func (c *Container) TitleResolver() *titles.Resolver { return c.titles }

func (c *Container) AuditRecorder() jobs.AuditRecorder { return c.audit }

func (c *Container) Translator() interfaces.Translator { return c.translator }

func (c *Container) BackfillHandler() *backfillcmd.RunHandler { return c.backfillHandler }

func (c *Container) WordPressImportHandler() *blogcmd.ImportWordPressHandler {
	return c.wordpressHandler
}

func (c *Container) MarkdownImportHandler() *blogcmd.ImportMarkdownHandler {
	return c.markdownHandler
}

func (c *Container) Importer() *blog.Importer { return c.importer }
