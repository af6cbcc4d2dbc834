package di

import (
	"fmt"
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/logging/console"
	"github.com/cloudmlm/go-sitecms/internal/logging/gologger"
)

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return fmt.Errorf("di: unsupported console log level %q", cfg.Level)
		}
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		return fmt.Errorf("di: unsupported logging provider %q", cfg.Provider)
	}
	return nil
}
