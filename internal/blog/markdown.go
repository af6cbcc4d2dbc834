package blog

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Document is a markdown blog post with its front matter.
type Document struct {
	Path     string
	Title    string
	Slug     string
	Summary  string
	Image    string
	Locale   string
	Tags     []string
	Date     time.Time
	Draft    bool
	BodyHTML string
}

type frontMatter struct {
	Title   string    `yaml:"title"`
	Slug    string    `yaml:"slug"`
	Summary string    `yaml:"summary"`
	Image   string    `yaml:"image"`
	Locale  string    `yaml:"locale"`
	Tags    []string  `yaml:"tags"`
	Date    time.Time `yaml:"date"`
	Draft   bool      `yaml:"draft"`
}

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ParseDocument reads front matter and renders the markdown body.
func ParseDocument(path string, source []byte) (Document, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("blog: parse front matter %s: %w", path, err)
	}

	var rendered bytes.Buffer
	if err := markdownEngine.Convert(body, &rendered); err != nil {
		return Document{}, fmt.Errorf("blog: render %s: %w", path, err)
	}

	return Document{
		Path:     path,
		Title:    strings.TrimSpace(meta.Title),
		Slug:     strings.TrimSpace(meta.Slug),
		Summary:  strings.TrimSpace(meta.Summary),
		Image:    strings.TrimSpace(meta.Image),
		Locale:   strings.ToLower(strings.TrimSpace(meta.Locale)),
		Tags:     meta.Tags,
		Date:     meta.Date,
		Draft:    meta.Draft,
		BodyHTML: rendered.String(),
	}, nil
}
