package blogcmd_test

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/cloudmlm/go-sitecms/internal/blog"
	blogcmd "github.com/cloudmlm/go-sitecms/internal/commands/blog"
	goerrors "github.com/goliatone/go-errors"
)

type stubImporter struct {
	wordpressCalls int
	markdownFS     fs.FS
}

func (s *stubImporter) ImportWordPress(context.Context) (blog.Report, error) {
	s.wordpressCalls++
	return blog.Report{Source: blog.SourceWordPress, Created: 3}, nil
}

func (s *stubImporter) ImportMarkdown(_ context.Context, fsys fs.FS) (blog.Report, error) {
	s.markdownFS = fsys
	return blog.Report{Source: blog.SourceMarkdown, Updated: 1}, nil
}

func TestImportWordPressHandler(t *testing.T) {
	t.Parallel()

	importer := &stubImporter{}
	var got blog.Report
	err := blogcmd.NewImportWordPressHandler(importer, nil).Execute(context.Background(), blogcmd.ImportWordPressCommand{
		ResultCallback: func(report blog.Report) { got = report },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if importer.wordpressCalls != 1 || got.Created != 3 {
		t.Fatalf("unexpected calls=%d report=%+v", importer.wordpressCalls, got)
	}
}

func TestImportMarkdownHandlerOpensDirectory(t *testing.T) {
	t.Parallel()

	importer := &stubImporter{}
	fixture := fstest.MapFS{"a.md": {Data: []byte("# A")}}
	var opened string
	open := func(dir string) fs.FS {
		opened = dir
		return fixture
	}

	err := blogcmd.NewImportMarkdownHandler(importer, open, nil).Execute(context.Background(), blogcmd.ImportMarkdownCommand{Directory: "content/blog"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opened != "content/blog" || importer.markdownFS == nil {
		t.Fatalf("expected directory to be opened, got %q", opened)
	}
}

func TestImportMarkdownHandlerRequiresDirectory(t *testing.T) {
	t.Parallel()

	err := blogcmd.NewImportMarkdownHandler(&stubImporter{}, nil, nil).Execute(context.Background(), blogcmd.ImportMarkdownCommand{Directory: " "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	issues, ok := goerrors.GetValidationErrors(err)
	if !ok || len(issues) != 1 || issues[0].Field != "directory" {
		t.Fatalf("expected a directory field issue, got %+v", issues)
	}
}
