package main

import (
	"fmt"
	"os"

	sitecms "github.com/cloudmlm/go-sitecms"
	"github.com/spf13/cobra"
)

// moduleBuilder is swapped in tests.
var moduleBuilder = sitecms.New

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sitecms:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "sitecms",
		Short:         "Content backend for the marketing site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file (SITECMS_* env overrides apply)")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newBackfillCmd(opts),
		newImportBlogCmd(opts),
		newResolveTitleCmd(opts),
	)
	return root
}

// loadModule reads the config, lets the caller adjust it, and builds the
// module.
func (o *rootOptions) loadModule(adjust func(*sitecms.Config)) (*sitecms.Module, error) {
	cfg, err := sitecms.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(&cfg)
	}
	return moduleBuilder(cfg)
}
