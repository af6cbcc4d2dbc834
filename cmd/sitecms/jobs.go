package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	sitecms "github.com/cloudmlm/go-sitecms"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the SQL tables and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.loadModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()
			if err := module.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newBackfillCmd(opts *rootOptions) *cobra.Command {
	var (
		kind      string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Translate a content collection into every other locale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.loadModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()
			report, err := module.Backfill(cmd.Context(), kind, overwrite)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Content collection (service, plan, industry-solution, blog-post, testimonial, demo-item, faq)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Re-translate locales that already have a row")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newImportBlogCmd(opts *rootOptions) *cobra.Command {
	var (
		wordpressURL string
		markdownDir  string
	)
	cmd := &cobra.Command{
		Use:   "import-blog",
		Short: "Import blog posts from WordPress or a markdown directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wordpressURL = strings.TrimSpace(wordpressURL)
			markdownDir = strings.TrimSpace(markdownDir)
			module, err := opts.loadModule(func(cfg *sitecms.Config) {
				if wordpressURL != "" {
					cfg.Blog.WordPressURL = wordpressURL
				}
			})
			if err != nil {
				return err
			}
			defer module.Close()

			var report sitecms.ImportReport
			if markdownDir != "" {
				report, err = module.ImportMarkdown(cmd.Context(), markdownDir)
			} else {
				report, err = module.ImportWordPress(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&wordpressURL, "wordpress-url", "", "WordPress site to import from (defaults to blog.wordpress_url)")
	cmd.Flags().StringVar(&markdownDir, "markdown-dir", "", "Import markdown files from this directory instead of WordPress")
	cmd.MarkFlagsMutuallyExclusive("wordpress-url", "markdown-dir")
	return cmd
}

func newResolveTitleCmd(opts *rootOptions) *cobra.Command {
	var slug, locale string
	cmd := &cobra.Command{
		Use:   "resolve-title",
		Short: "Print the hero title a service or plan page would render",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.loadModule(nil)
			if err != nil {
				return err
			}
			defer module.Close()
			title, err := module.ResolveTitle(cmd.Context(), slug, locale)
			if err != nil {
				return err
			}
			if title == nil {
				return fmt.Errorf("no title for %q in %q", slug, module.ResolveLocale(locale))
			}
			return printJSON(cmd.OutOrStdout(), title)
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "Page slug, for example mlm-consulting")
	cmd.Flags().StringVar(&locale, "locale", "", "Requested locale (unsupported values use the default)")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
