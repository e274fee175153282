package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/identity"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

const businessSlug = "corner-bakery"

func main() {
	ctx := context.Background()

	cfg := storefront.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_SQLITE_DSN"))
	if dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.Driver = "sqlite3"
		cfg.Storage.DSN = dsn
	}
	cfg.Routes = storefront.RoutesConfig{
		RouteConfig: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "frontend",
					BaseURL: "https://shops.example.com",
					Paths: map[string]string{
						"storefront_page": "/:slug/:page",
					},
				},
			},
		},
		Group: "frontend",
		Route: "storefront_page",
	}

	// Stored pages outlive the process, so only in-memory runs use repeatable block ids.
	var opts []di.Option
	if dsn == "" {
		opts = append(opts, di.WithBlockIDGenerator(identity.BlockIDs(businessSlug)))
	}
	module, err := storefront.New(cfg, opts...)
	if err != nil {
		log.Fatalf("initialise storefront: %v", err)
	}
	defer func() {
		if err := module.Close(ctx); err != nil {
			log.Printf("close storefront: %v", err)
		}
	}()

	business, err := ensureBusiness(ctx, module.Profiles())
	if err != nil {
		log.Fatalf("seed business: %v", err)
	}
	seedCatalog(module.Catalog(), business.ID)

	notices := &pages.RecordingNotifier{}
	session, err := module.Open(ctx, business.ID, domain.PageStorefront, notices)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	draft := session.Draft()
	page := session.PageType()

	about := ensureBlock(draft, page, blocks.TypeAbout)
	hours := ensureBlock(draft, page, blocks.TypeOpeningHours)
	ensureBlock(draft, page, blocks.TypeContactInfo)
	ensureBlock(draft, page, blocks.TypeProducts)
	link := ensureBlock(draft, page, blocks.TypePageLink)

	// A second contact block is refused and only raises a notice.
	if _, err := draft.AddBlock(page, blocks.TypeContactInfo); err != nil {
		log.Printf("expected refusal: %v", err)
	}

	mustUpdate(draft, page, about.BlockID(), blocks.Patch{"summary": "Sourdough, pastries and **fresh coffee** every morning."})
	mustUpdate(draft, page, hours.BlockID(), blocks.Patch{"timeFormat": blocks.TimeFormat12h})
	mustUpdate(draft, page, link.BlockID(), blocks.Patch{"pageType": "shop", "label": "Order online"})
	if err := draft.Reorder(page, draft.Blocks(page).IndexOf(link.BlockID()), 0); err != nil {
		log.Fatalf("reorder: %v", err)
	}
	if err := draft.UpdatePageSettings(page, pages.SettingsPatch{Headline: strPtr("Corner Bakery")}); err != nil {
		log.Fatalf("page settings: %v", err)
	}

	prettyPrint("Preview", session.Preview())

	if err := module.Save(ctx, session); err != nil {
		log.Fatalf("save: %v", err)
	}

	public, err := module.PublicPage(ctx, businessSlug, domain.PageStorefront)
	if err != nil {
		log.Fatalf("public page: %v", err)
	}
	prettyPrint("Public page", public)
	prettyPrint("Notices", notices.Notices())
}

func ensureBusiness(ctx context.Context, repo storefront.ProfileRepository) (*storefront.Profile, error) {
	id := identity.BusinessUUID(businessSlug)
	existing, err := repo.GetByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, profiles.ErrNotFound) {
		return nil, err
	}
	return repo.Create(ctx, &storefront.Profile{
		Business: domain.Business{
			ID:          id,
			Name:        "Corner Bakery",
			Slug:        businessSlug,
			Description: "Neighbourhood bakery",
			Email:       "hello@cornerbakery.example",
			Phone:       domain.Phone{Code: "+1", Number: "555 0100"},
			Address: domain.Address{
				StreetAddress:   "12 Main St",
				AddressLocality: "Springfield",
				AddressCountry:  "US",
			},
			BusinessHours:      domain.DefaultBusinessHours(),
			SelectedFacilities: []string{"wifi", "seating"},
		},
	})
}

func seedCatalog(source storefront.CatalogSource, businessID uuid.UUID) {
	memory, ok := source.(*catalog.MemorySource)
	if !ok {
		return
	}
	memory.PutProducts(businessID,
		domain.Product{
			ID:     identity.ProductUUID(businessID, "country-loaf"),
			Name:   "Country loaf",
			Price:  6.5,
			Status: domain.CatalogStatusOnline,
		},
		domain.Product{
			ID:     identity.ProductUUID(businessID, "cake-class"),
			Name:   "Cake decorating class",
			Price:  1200,
			Status: domain.CatalogStatusOnline,
			Kind:   domain.ProductKindService,
		},
	)
	memory.PutServices(businessID, domain.Service{
		ID:              identity.ServiceUUID(businessID, "custom-cake"),
		Name:            "Custom cake consultation",
		Price:           40,
		Currency:        "EUR",
		Status:          domain.CatalogStatusOnline,
		DurationMinutes: 45,
	})
}

// ensureBlock returns the block of blockType already on the page, adding one
// when there is none yet. A saved business reopens with its earlier blocks.
func ensureBlock(draft *pages.Draft, page domain.PageType, blockType blocks.Type) blocks.Block {
	for _, block := range draft.Blocks(page) {
		if block.BlockType() == blockType {
			return block
		}
	}
	block, err := draft.AddBlock(page, blockType)
	if err != nil {
		log.Fatalf("add %s: %v", blockType, err)
	}
	return block
}

func mustUpdate(draft *pages.Draft, page domain.PageType, id string, patch blocks.Patch) {
	if err := draft.UpdateBlock(page, id, patch); err != nil {
		log.Fatalf("update %s: %v", id, err)
	}
}

func prettyPrint(label string, payload any) {
	fmt.Printf("\n%s:\n", label)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Printf("pretty print %s: %v", label, err)
	}
}

func strPtr(value string) *string {
	return &value
}
