package di_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-storefront/internal/blocks"
	buildercmd "github.com/goliatone/go-storefront/internal/commands/builder"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/identity"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	urlkit "github.com/goliatone/go-urlkit"
)

func seedBusiness(t *testing.T, repo profiles.Repository, slug string) *profiles.Profile {
	t.Helper()
	created, err := repo.Create(context.Background(), &profiles.Profile{
		Business: domain.Business{
			ID:   identity.BusinessUUID(slug),
			Name: "Acme",
			Slug: slug,
		},
	})
	if err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return created
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestNewContainerDefaultsToMemory(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.ProfileRepository().(*profiles.MemoryRepository); !ok {
		t.Fatalf("expected memory profile repository, got %T", container.ProfileRepository())
	}
	if container.BunDB() != nil {
		t.Fatal("expected no bun database for memory storage")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected no logger provider when the logger feature is off")
	}
	if container.RouteManager() != nil {
		t.Fatal("expected no route manager without a route config")
	}
	for _, wired := range []any{
		container.CatalogSource(),
		container.BlockRegistry(),
		container.Renderer(),
		container.BuilderService(),
		container.ApplyEditsHandler(),
		container.SaveSessionHandler(),
	} {
		if wired == nil {
			t.Fatal("expected every component to be wired")
		}
	}
	if err := container.Close(context.Background()); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestContainerBunStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	cfg.Storage.Driver = runtimeconfig.DriverSQLite
	cfg.Storage.DSN = fmt.Sprintf("file:container_bun_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	cfg.Features.Cache = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close(context.Background()) })

	if container.BunDB() == nil {
		t.Fatal("expected bun database to be opened")
	}
	if _, ok := container.ProfileRepository().(*profiles.BunRepository); !ok {
		t.Fatalf("expected bun profile repository, got %T", container.ProfileRepository())
	}

	business := seedBusiness(t, container.ProfileRepository(), "acme")
	err = container.ApplyEditsHandler().Execute(ctx, buildercmd.ApplyEditsCommand{
		BusinessID: business.ID,
		PageType:   "shop",
		Edits: []buildercmd.Edit{
			{Op: buildercmd.OpAdd, BlockType: blocks.TypeAbout},
			{Op: buildercmd.OpAdd, BlockType: blocks.TypeText},
			{Op: buildercmd.OpReorder, From: 1, To: 0},
		},
	})
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}

	stored, err := container.ProfileRepository().GetByID(ctx, business.ID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	page, ok := stored.Page(domain.PageShop)
	if !ok {
		t.Fatal("expected shop page to be persisted")
	}
	if len(page.Settings.Blocks) != 2 || page.Settings.Blocks[0].BlockType() != blocks.TypeText {
		t.Fatalf("unexpected persisted blocks %+v", page.Settings.Blocks)
	}
}

func TestContainerResolvesPageLinksThroughRoutes(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routes = runtimeconfig.RoutesConfig{
		RouteConfig: &urlkit.Config{
			Groups: []urlkit.GroupConfig{{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"storefront_page": "/:slug/:page",
				},
			}},
		},
		Group: "frontend",
		Route: "storefront_page",
	}

	const seed = "container-routes"
	container, err := di.NewContainer(cfg, di.WithBlockIDGenerator(identity.BlockIDs(seed)))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.RouteManager() == nil {
		t.Fatal("expected route manager to be built from config")
	}

	business := seedBusiness(t, container.ProfileRepository(), "acme")
	linkID := identity.BlockIDs(seed)()
	err = container.ApplyEditsHandler().Execute(ctx, buildercmd.ApplyEditsCommand{
		BusinessID: business.ID,
		Edits: []buildercmd.Edit{
			{Op: buildercmd.OpAdd, BlockType: blocks.TypePageLink},
			{Op: buildercmd.OpUpdate, BlockID: linkID, Patch: blocks.Patch{"pageType": "bookings", "label": "Book now"}},
		},
	})
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}

	public, err := container.BuilderService().PublicPage(ctx, "acme", "")
	if err != nil {
		t.Fatalf("public page: %v", err)
	}
	if len(public.Views) != 1 || len(public.Views[0].Links) != 1 {
		t.Fatalf("unexpected views %+v", public.Views)
	}
	link := public.Views[0].Links[0]
	if link.Kind != render.LinkPage || link.Href != "https://example.com/acme/bookings" {
		t.Fatalf("unexpected page link %+v", link)
	}
}
