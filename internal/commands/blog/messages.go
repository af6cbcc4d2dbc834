package blogcmd

import (
	"strings"

	"github.com/cloudmlm/go-sitecms/internal/blog"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importWordPressMessageType = "site.blog.import_wordpress"
	importMarkdownMessageType  = "site.blog.import_markdown"
)

// ResultCallback receives the report of a completed import.
type ResultCallback func(blog.Report)

// ImportWordPressCommand pulls every post of the configured WordPress site.
type ImportWordPressCommand struct {
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ImportWordPressCommand) Type() string { return importWordPressMessageType }

func (ImportWordPressCommand) Validate() error { return nil }

// ImportMarkdownCommand imports the markdown files under Directory.
type ImportMarkdownCommand struct {
	Directory      string         `json:"directory"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ImportMarkdownCommand) Type() string { return importMarkdownMessageType }

func (cmd ImportMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("site.blog.import_markdown.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
