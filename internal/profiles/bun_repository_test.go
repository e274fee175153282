package profiles_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/pkg/testsupport"
	"github.com/google/uuid"
)

func TestBunRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewBunRepository(testsupport.NewBunDB(t))
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

	if _, err := repo.Create(ctx, sampleProfile(id, "bun-acme")); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if loaded.Email != "hello@acme.test" || len(loaded.Pages) != 1 {
		t.Fatalf("unexpected profile %+v", loaded)
	}
	if _, ok := loaded.Pages[0].Settings.Blocks[0].(blocks.FacilitiesBlock); !ok {
		t.Fatalf("expected facilities block after load, got %T", loaded.Pages[0].Settings.Blocks[0])
	}

	loaded.Pages[0].Settings.Blocks = append(loaded.Pages[0].Settings.Blocks,
		blocks.TextBlock{Base: blocks.Base{ID: "t1"}, Title: "Welcome"})
	loaded.Description = "Now with text"
	if _, err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("update: %v", err)
	}

	bySlug, err := repo.GetBySlug(ctx, "bun-acme")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.Description != "Now with text" {
		t.Fatalf("expected description persisted, got %q", bySlug.Description)
	}
	if ids := bySlug.Pages[0].Settings.Blocks.IDs(); len(ids) != 2 || ids[1] != "t1" {
		t.Fatalf("expected block order persisted, got %v", ids)
	}
}

func TestBunRepositoryNotFoundAndConflict(t *testing.T) {
	ctx := context.Background()
	repo := profiles.NewBunRepository(testsupport.NewBunDB(t))

	if _, err := repo.GetBySlug(ctx, "bun-missing"); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
	if _, err := repo.Update(ctx, sampleProfile(uuid.New(), "bun-ghost")); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update got %v", err)
	}

	if _, err := repo.Create(ctx, sampleProfile(uuid.New(), "bun-taken")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, sampleProfile(uuid.New(), "bun-taken")); !errors.Is(err, profiles.ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict got %v", err)
	}
}

func TestBunRepositoryWithCache(t *testing.T) {
	ctx := context.Background()

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := profiles.NewBunRepositoryWithCache(testsupport.NewBunDB(t), cacheSvc, repocache.NewDefaultKeySerializer())
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000c2")

	if _, err := repo.Create(ctx, sampleProfile(id, "cached-acme")); err != nil {
		t.Fatalf("create: %v", err)
	}
	for range 2 {
		loaded, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if loaded.Slug != "cached-acme" {
			t.Fatalf("unexpected slug %q", loaded.Slug)
		}
	}
}

func TestCachedBunRepositoryReadsItsOwnWrites(t *testing.T) {
	ctx := context.Background()
	cacheSvc, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	db := testsupport.NewBunDB(t)
	serializer := repocache.NewDefaultKeySerializer()
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000c3")

	writer := profiles.NewBunRepositoryWithCache(db, cacheSvc, serializer)
	if _, err := writer.Create(ctx, sampleProfile(id, "fresh-acme")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := writer.GetByID(ctx, id); err != nil {
		t.Fatalf("warm read: %v", err)
	}

	loaded, _ := writer.GetByID(ctx, id)
	loaded.Description = "after update"
	loaded.Slug = "renamed-acme"
	if _, err := writer.Update(ctx, loaded); err != nil {
		t.Fatalf("update: %v", err)
	}

	byID, err := writer.GetByID(ctx, id)
	if err != nil || byID.Description != "after update" {
		t.Fatalf("expected fresh read by id, got %+v (%v)", byID, err)
	}
	if _, err := writer.GetBySlug(ctx, "fresh-acme"); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected old slug gone, got %v", err)
	}
	if bySlug, err := writer.GetBySlug(ctx, "RENAMED-ACME"); err != nil || bySlug.ID != id {
		t.Fatalf("expected lookup by new slug, got %+v (%v)", bySlug, err)
	}
}

func TestBunRepositoryUpdateStopsOnSlugLookupFailure(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000c4")

	if _, err := profiles.NewBunRepository(db).Create(ctx, sampleProfile(id, "lookup-acme")); err != nil {
		t.Fatalf("create: %v", err)
	}

	cacheSvc, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	editor := profiles.NewBunRepositoryWithCache(db, cacheSvc, repocache.NewDefaultKeySerializer())
	loaded, err := editor.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("warm read: %v", err)
	}

	// Reads selecting every column now fail while the id lookup is served from cache.
	if _, err := db.ExecContext(ctx, "ALTER TABLE business_profiles DROP COLUMN created_at"); err != nil {
		t.Fatalf("drop column: %v", err)
	}

	loaded.Name = "Should not be written"
	_, err = editor.Update(ctx, loaded)
	if err == nil {
		t.Fatalf("expected the slug lookup failure to abort the update")
	}
	if errors.Is(err, profiles.ErrNotFound) || errors.Is(err, profiles.ErrSlugConflict) {
		t.Fatalf("expected the lookup error, got %v", err)
	}

	var name string
	if err := db.NewRaw("SELECT name FROM business_profiles WHERE id = ?", id).Scan(ctx, &name); err != nil {
		t.Fatalf("read name: %v", err)
	}
	if name == "Should not be written" {
		t.Fatalf("expected the row to stay untouched")
	}
}
