package builder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/builder"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/google/uuid"
)

var businessID = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")

func seededRepo(t *testing.T) *profiles.MemoryRepository {
	t.Helper()
	repo := profiles.NewMemoryRepository()
	_, err := repo.Create(context.Background(), &profiles.Profile{
		Business: domain.Business{
			ID:          businessID,
			Name:        "Acme",
			Slug:        "acme",
			Description: "We fix things",
			Phone:       domain.Phone{Number: "555"},
		},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

type failingRepo struct {
	profiles.Repository
	updates int
	err     error
}

func (f *failingRepo) Update(context.Context, *profiles.Profile) (*profiles.Profile, error) {
	f.updates++
	return nil, f.err
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := builder.NewService(nil); !errors.Is(err, builder.ErrRepositoryRequired) {
		t.Fatalf("expected ErrRepositoryRequired got %v", err)
	}
}

func TestOpenUnknownBusiness(t *testing.T) {
	svc, _ := builder.NewService(profiles.NewMemoryRepository())
	_, err := svc.Open(context.Background(), uuid.New(), domain.PageShop, nil)
	if !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestOpenRejectsInvalidPage(t *testing.T) {
	svc, _ := builder.NewService(seededRepo(t))
	if _, err := svc.Open(context.Background(), businessID, "checkout", nil); !errors.Is(err, pages.ErrInvalidPageType) {
		t.Fatalf("expected ErrInvalidPageType got %v", err)
	}
}

func TestSessionEditPreviewSave(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	svc, err := builder.NewService(repo)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	notifier := &pages.RecordingNotifier{}

	session, err := svc.Open(ctx, businessID, "", notifier)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if session.PageType() != domain.PageStorefront {
		t.Fatalf("expected default page, got %s", session.PageType())
	}

	about, err := session.Draft().AddBlock(session.PageType(), blocks.TypeAbout)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.Draft().UpdateBlock(session.PageType(), about.BlockID(), blocks.Patch{"summary": "Fresh story"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	views := session.Preview()
	if len(views) != 1 || views[0].Body != "Fresh story" {
		t.Fatalf("expected preview to reflect the draft, got %+v", views)
	}

	stored, _ := repo.GetByID(ctx, businessID)
	if len(stored.Pages) != 0 || stored.Description != "We fix things" {
		t.Fatalf("expected nothing persisted before save")
	}

	saved, err := session.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Description != "Fresh story" {
		t.Fatalf("expected synced description saved, got %q", saved.Description)
	}
	if session.Draft().Dirty() {
		t.Fatalf("expected clean draft after save")
	}
	last, _ := notifier.Last()
	if last.Level != pages.NoticeSuccess || last.Message != builder.NoticeSaved {
		t.Fatalf("unexpected notice %+v", last)
	}

	stored, _ = repo.GetByID(ctx, businessID)
	page, ok := stored.Page(domain.PageStorefront)
	if !ok || len(page.Settings.Blocks) != 1 {
		t.Fatalf("expected saved page with one block, got %+v", stored.Pages)
	}
}

func TestSaveFailureKeepsDraftDirty(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	repo := &failingRepo{Repository: seededRepo(t), err: boom}
	svc, _ := builder.NewService(repo)
	notifier := &pages.RecordingNotifier{}

	session, err := svc.Open(ctx, businessID, domain.PageShop, notifier)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.Draft().AddBlock(domain.PageShop, blocks.TypeText); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := session.Save(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if repo.updates != 1 {
		t.Fatalf("expected exactly one update attempt, got %d", repo.updates)
	}
	if !session.Draft().Dirty() {
		t.Fatalf("expected draft to stay dirty")
	}
	if len(session.Draft().Blocks(domain.PageShop)) != 1 {
		t.Fatalf("expected draft edits to survive a failed save")
	}
	last, _ := notifier.Last()
	if last.Level != pages.NoticeError || last.Message != builder.NoticeSaveFailed {
		t.Fatalf("unexpected notice %+v", last)
	}
}

func TestSwitchPageKeepsDraft(t *testing.T) {
	svc, _ := builder.NewService(seededRepo(t))
	session, err := svc.Open(context.Background(), businessID, domain.PageShop, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.Draft().AddBlock(domain.PageShop, blocks.TypeText); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.SwitchPage(domain.PageQuote); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if len(session.Preview()) != 0 {
		t.Fatalf("expected empty preview for a page without blocks")
	}
	if err := session.SwitchPage("nope"); !errors.Is(err, pages.ErrInvalidPageType) {
		t.Fatalf("expected ErrInvalidPageType got %v", err)
	}
	if !session.Draft().Dirty() {
		t.Fatalf("expected draft edits kept")
	}
}

func TestPublicPage(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo(t)
	source := catalog.NewMemorySource()
	source.PutProducts(businessID,
		domain.Product{ID: uuid.New(), Name: "Mug", Price: 12, Status: domain.CatalogStatusOnline},
	)
	svc, _ := builder.NewService(repo, builder.WithCatalog(source))

	session, err := svc.Open(ctx, businessID, domain.PageShop, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.Draft().AddBlock(domain.PageShop, blocks.TypeProducts); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := session.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	public, err := svc.PublicPage(ctx, "ACME", domain.PageShop)
	if err != nil {
		t.Fatalf("public page: %v", err)
	}
	if len(public.Views) != 1 || len(public.Views[0].Items) != 1 || public.Views[0].Items[0].Label != "Mug" {
		t.Fatalf("unexpected public views %+v", public.Views)
	}

	if _, err := svc.PublicPage(ctx, "acme", domain.PageQuote); !errors.Is(err, builder.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound got %v", err)
	}
}
