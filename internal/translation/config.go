package translation

import (
	"net/http"

	"github.com/cloudmlm/go-sitecms/internal/runtimeconfig"
)

// NewChainFromConfig builds the DeepL, Google, MyMemory chain. Vendors
// without credentials stay in the chain and are reported as skipped.
func NewChainFromConfig(cfg runtimeconfig.TranslationConfig, client *http.Client, opts ...ChainOption) *Chain {
	providers := []Provider{
		NewDeepL(cfg.DeepL.APIKey, cfg.DeepL.Endpoint, client),
		NewGoogle(cfg.Google.APIKey, cfg.Google.Endpoint, client),
		NewMyMemory(cfg.MyMemory.Enabled, cfg.MyMemory.Email, cfg.MyMemory.Endpoint, client),
	}
	return NewChain(providers, append([]ChainOption{WithDelay(cfg.Delay)}, opts...)...)
}
