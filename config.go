package sitecms

import "github.com/cloudmlm/go-sitecms/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrLocalesRequired          = runtimeconfig.ErrLocalesRequired
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrTranslationDelayInvalid  = runtimeconfig.ErrTranslationDelayInvalid
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
)

type (
	Config            = runtimeconfig.Config
	I18NConfig        = runtimeconfig.I18NConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	NavigationConfig  = runtimeconfig.NavigationConfig
	TitlesConfig      = runtimeconfig.TitlesConfig
	TitleRuleConfig   = runtimeconfig.TitleRuleConfig
	TranslationConfig = runtimeconfig.TranslationConfig
	HTTPConfig        = runtimeconfig.HTTPConfig
	BlogConfig        = runtimeconfig.BlogConfig
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over the defaults and applies SITECMS_*
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
