package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/content"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	"github.com/cloudmlm/go-sitecms/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

type evictionFailingCache struct {
	repocache.CacheService
}

func (evictionFailingCache) DeleteByPrefix(context.Context, string) error {
	return errors.New("cache unavailable")
}

type warnLogger struct {
	warnings *[]string
}

func (l warnLogger) Trace(string, ...any) {}
func (l warnLogger) Debug(string, ...any) {}
func (l warnLogger) Info(string, ...any)  {}
func (l warnLogger) Warn(msg string, _ ...any) {
	*l.warnings = append(*l.warnings, msg)
}
func (l warnLogger) Error(string, ...any)                          {}
func (l warnLogger) Fatal(string, ...any)                          {}
func (l warnLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestBunRepositoryServiceFlow(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*content.Record)(nil))
	svc := newService(content.NewBunRepository(db))

	source := createConsulting(t, svc)
	es, err := svc.Create(ctx, content.CreateRecordRequest{
		GroupID: source.GroupID, Kind: content.KindService, Locale: "es", Title: "Consultoría MLM",
	})
	if err != nil {
		t.Fatalf("create es: %v", err)
	}

	got, err := svc.Get(ctx, es.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Consultoría MLM" || got.Icon != "briefcase" {
		t.Fatalf("unexpected record: %+v", got)
	}

	services, err := svc.List(ctx, content.KindService, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 service records, got %d", len(services))
	}
	english, err := svc.List(ctx, content.KindService, "en")
	if err != nil {
		t.Fatalf("list en: %v", err)
	}
	if len(english) != 1 || english[0].ID != source.ID {
		t.Fatalf("unexpected english list: %+v", english)
	}
	if features, _ := english[0].Fields["features"].([]any); len(features) != 2 {
		t.Fatalf("structured fields lost in storage: %v", english[0].Fields)
	}
	if plans, err := svc.List(ctx, content.KindPlan, ""); err != nil || len(plans) != 0 {
		t.Fatalf("expected no plans, got %d (%v)", len(plans), err)
	}

	if _, err := svc.Update(ctx, content.UpdateRecordRequest{
		ID: source.ID, Title: source.Title, Icon: "compass", ShowOnHomePage: true,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	sibling, err := svc.Get(ctx, es.ID)
	if err != nil {
		t.Fatalf("get sibling: %v", err)
	}
	if sibling.Icon != "compass" {
		t.Fatalf("expected propagated icon on sibling, got %q", sibling.Icon)
	}

	if err := svc.Delete(ctx, es.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, es.ID); !content.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	deleted, err := svc.DeleteGroup(ctx, source.GroupID)
	if err != nil || deleted != 1 {
		t.Fatalf("expected group delete of 1 row, got %d (%v)", deleted, err)
	}
	if _, err := svc.Get(ctx, source.ID); !content.IsNotFound(err) {
		t.Fatalf("expected not found after group delete, got %v", err)
	}
}

func TestBunRepositoryWithCacheReadsThrough(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*content.Record)(nil))

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	svc := newService(content.NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer()))

	source := createConsulting(t, svc)
	for range 2 {
		got, err := svc.Get(ctx, source.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != source.Title {
			t.Fatalf("unexpected title %q", got.Title)
		}
	}
	records, err := svc.List(ctx, content.KindService, "en")
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one record, got %d (%v)", len(records), err)
	}
}

func TestBunRepositoryWriteSucceedsWhenCacheEvictionFails(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*content.Record)(nil))

	inner, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	var warnings []string
	repo := content.NewBunRepositoryWithCache(db, evictionFailingCache{inner}, repocache.NewDefaultKeySerializer()).
		WithLogger(warnLogger{warnings: &warnings})
	svc := newService(repo)

	created := createConsulting(t, svc)
	if len(warnings) == 0 {
		t.Fatal("expected the failed eviction to be logged")
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("record not persisted: %v", err)
	}

	deleted, err := repo.DeleteGroup(ctx, created.GroupID)
	if err != nil || deleted != 1 {
		t.Fatalf("expected one deleted row, got %d (%v)", deleted, err)
	}
	for _, msg := range warnings {
		if msg != "content.cache_invalidate_failed" {
			t.Fatalf("unexpected warning %q", msg)
		}
	}
}
