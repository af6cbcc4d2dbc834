package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrDefaultLocaleRequired    = errors.New("site config: default locale is required")
	ErrLocalesRequired          = errors.New("site config: at least one supported locale is required")
	ErrDefaultLocaleUnsupported = errors.New("site config: default locale must be listed in i18n.locales")
	ErrDuplicateLocale          = errors.New("site config: supported locales must be unique")
	ErrStorageProviderUnknown   = errors.New("site config: storage provider is invalid")
	ErrStorageDSNRequired       = errors.New("site config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid          = errors.New("site config: cache ttl must be positive when cache is enabled")
	ErrTranslationDelayInvalid  = errors.New("site config: translation delay must be zero or positive")
	ErrTranslationSourceLocale  = errors.New("site config: translation source locale must be supported")
	ErrTitleRuleSlugRequired    = errors.New("site config: title rules require a slug")
	ErrBlogPerPageInvalid       = errors.New("site config: blog per_page must be between 1 and 100")
	ErrLoggingProviderUnknown   = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("site config: logging format is invalid")
)

// Config is built once at process start and passed by value to the
// components that need it. Nothing mutates it afterwards.
type Config struct {
	DefaultLocale string            `yaml:"default_locale" env:"DEFAULT_LOCALE"`
	I18N          I18NConfig        `yaml:"i18n" envPrefix:"I18N_"`
	Storage       StorageConfig     `yaml:"storage" envPrefix:"STORAGE_"`
	Cache         CacheConfig       `yaml:"cache" envPrefix:"CACHE_"`
	Logging       LoggingConfig     `yaml:"logging" envPrefix:"LOG_"`
	Navigation    NavigationConfig  `yaml:"navigation" envPrefix:"NAVIGATION_"`
	Titles        TitlesConfig      `yaml:"titles" envPrefix:"TITLES_"`
	Translation   TranslationConfig `yaml:"translation" envPrefix:"TRANSLATION_"`
	HTTP          HTTPConfig        `yaml:"http" envPrefix:"HTTP_"`
	Blog          BlogConfig        `yaml:"blog" envPrefix:"BLOG_"`
}

// I18NConfig lists the locales every component shares.
type I18NConfig struct {
	Locales []string `yaml:"locales" env:"LOCALES" envSeparator:","`
}

// StorageConfig selects the content store backend. Provider is one of
// memory, sqlite or postgres.
type StorageConfig struct {
	Provider string `yaml:"provider" env:"PROVIDER"`
	DSN      string `yaml:"dsn" env:"DSN"`
	Debug    bool   `yaml:"debug" env:"DEBUG"`
}

// CacheConfig toggles the go-repository-cache decorator on SQL repositories.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED"`
	DefaultTTL time.Duration `yaml:"ttl" env:"TTL"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" env:"PROVIDER"`
	Level     string   `yaml:"level" env:"LEVEL"`
	Format    string   `yaml:"format" env:"FORMAT"`
	AddSource bool     `yaml:"add_source" env:"ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"FOCUS" envSeparator:","`
}

// NavigationConfig feeds the go-urlkit route manager used for absolute,
// locale-prefixed links. LocaleRoutes overrides route paths per locale.
type NavigationConfig struct {
	BaseURL      string                       `yaml:"base_url" env:"BASE_URL"`
	Routes       map[string]string            `yaml:"routes"`
	LocaleRoutes map[string]map[string]string `yaml:"locale_routes"`
}

// TitlesConfig holds the static tables used to associate page slugs with
// content records. Empty Rules means the built-in table is used.
type TitlesConfig struct {
	StrictMatching bool              `yaml:"strict_matching" env:"STRICT_MATCHING"`
	Rules          []TitleRuleConfig `yaml:"rules"`
}

// TitleRuleConfig describes one page slug.
type TitleRuleConfig struct {
	Slug          string   `yaml:"slug"`
	PageKey       string   `yaml:"page_key"`
	Kind          string   `yaml:"kind"`
	Variants      []string `yaml:"variants"`
	Aliases       []string `yaml:"aliases"`
	FallbackSlugs []string `yaml:"fallback_slugs"`
	Keywords      []string `yaml:"keywords"`
}

// TranslationConfig configures the vendor chain used by backfills. API keys
// are expected to come from the environment.
type TranslationConfig struct {
	SourceLocale string         `yaml:"source_locale" env:"SOURCE_LOCALE"`
	Delay        time.Duration  `yaml:"delay" env:"DELAY"`
	ScalarFields []string       `yaml:"scalar_fields" env:"SCALAR_FIELDS" envSeparator:","`
	DeepL        VendorConfig   `yaml:"deepl" envPrefix:"DEEPL_"`
	Google       VendorConfig   `yaml:"google" envPrefix:"GOOGLE_"`
	MyMemory     MyMemoryConfig `yaml:"mymemory" envPrefix:"MYMEMORY_"`
}

// VendorConfig is shared by keyed translation vendors.
type VendorConfig struct {
	APIKey   string `yaml:"-" env:"API_KEY"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// MyMemoryConfig configures the keyless best-effort vendor.
type MyMemoryConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Email    string `yaml:"email" env:"EMAIL"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// HTTPConfig configures the JSON API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	AdminBasePath   string        `yaml:"admin_base_path" env:"ADMIN_BASE_PATH"`
	PublicBasePath  string        `yaml:"public_base_path" env:"PUBLIC_BASE_PATH"`
	AdminToken      string        `yaml:"-" env:"ADMIN_TOKEN"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// BlogConfig configures blog imports.
type BlogConfig struct {
	WordPressURL string        `yaml:"wordpress_url" env:"WORDPRESS_URL"`
	PerPage      int           `yaml:"per_page" env:"PER_PAGE"`
	Delay        time.Duration `yaml:"delay" env:"DELAY"`
	MarkdownDir  string        `yaml:"markdown_dir" env:"MARKDOWN_DIR"`
}

// DefaultConfig returns the settings used when no file or environment
// override is present.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales: []string{"en", "es", "fr", "it", "de", "pt", "zh"},
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Navigation: NavigationConfig{
			BaseURL: "https://cloudmlmsoftware.com",
			Routes: map[string]string{
				"home":      "/",
				"service":   "/services/:slug",
				"plan":      "/plans/:slug",
				"industry":  "/industries/:slug",
				"blog_post": "/blog/:slug",
				"pricing":   "/pricing",
			},
		},
		Translation: TranslationConfig{
			SourceLocale: "en",
			Delay:        300 * time.Millisecond,
			ScalarFields: []string{"badge", "subtitle"},
			MyMemory:     MyMemoryConfig{Enabled: true},
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			AdminBasePath:   "/admin/api",
			PublicBasePath:  "/api",
			ShutdownTimeout: 10 * time.Second,
		},
		Blog: BlogConfig{
			PerPage:     20,
			Delay:       500 * time.Millisecond,
			MarkdownDir: "content/blog",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.I18N.Locales) == 0 {
		return ErrLocalesRequired
	}
	seen := make(map[string]struct{}, len(cfg.I18N.Locales))
	for _, locale := range cfg.I18N.Locales {
		key := strings.ToLower(strings.TrimSpace(locale))
		if _, dup := seen[key]; dup || key == "" {
			return fmt.Errorf("%w: %q", ErrDuplicateLocale, locale)
		}
		seen[key] = struct{}{}
	}
	if _, ok := seen[strings.ToLower(defaultLocale)]; !ok {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, defaultLocale)
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Translation.Delay < 0 {
		return ErrTranslationDelayInvalid
	}
	if source := normalize(cfg.Translation.SourceLocale); source != "" {
		if _, ok := seen[source]; !ok {
			return fmt.Errorf("%w: %s", ErrTranslationSourceLocale, source)
		}
	}

	for i, rule := range cfg.Titles.Rules {
		if strings.TrimSpace(rule.Slug) == "" {
			return fmt.Errorf("%w: rule %d", ErrTitleRuleSlugRequired, i)
		}
	}

	if cfg.Blog.PerPage < 1 || cfg.Blog.PerPage > 100 {
		return ErrBlogPerPageInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if !slices.Contains([]string{"console", "gologger"}, provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !slices.Contains(logLevels, level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := normalize(cfg.Logging.Format); format != "" && !slices.Contains([]string{"json", "console", "pretty"}, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// SourceLocale returns the locale backfills translate from.
func (cfg Config) SourceLocale() string {
	if source := normalize(cfg.Translation.SourceLocale); source != "" {
		return source
	}
	return normalize(cfg.DefaultLocale)
}

var logLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
