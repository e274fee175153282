package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

func ambientWith(biz domain.Business) render.Ambient {
	return render.Ambient{Profile: &profiles.Profile{Business: biz}}
}

func TestRenderUnknownBlockIsEmpty(t *testing.T) {
	r := render.New()
	view := r.Render(blocks.Unknown{ID: "u1", Type: "carousel"}, render.Ambient{})
	if !view.Empty || view.ID != "u1" {
		t.Fatalf("expected empty view for unknown block, got %+v", view)
	}
	if !r.Render(nil, render.Ambient{}).Empty {
		t.Fatalf("expected empty view for nil block")
	}
}

func TestRenderTextUsesSafeMarkdown(t *testing.T) {
	r := render.New()
	view := r.Render(blocks.TextBlock{
		Base:    blocks.Base{ID: "t1"},
		Title:   "Hello",
		Content: "**bold** <script>alert(1)</script>",
	}, render.Ambient{})

	if view.Title != "Hello" {
		t.Fatalf("unexpected title %q", view.Title)
	}
	if !strings.Contains(view.HTML, "<strong>bold</strong>") {
		t.Fatalf("expected markdown html, got %q", view.HTML)
	}
	if strings.Contains(view.HTML, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %q", view.HTML)
	}
}

func TestRenderPageLinkPlainPath(t *testing.T) {
	r := render.New()
	view := r.Render(blocks.PageLinkBlock{Base: blocks.Base{ID: "p"}, PageType: domain.PageShop},
		ambientWith(domain.Business{Slug: "acme"}))

	if len(view.Links) != 1 {
		t.Fatalf("expected one link, got %+v", view.Links)
	}
	link := view.Links[0]
	if link.Href != "/acme/shop" || link.Label != "Go to shop" || link.External {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestRenderPageLinkThroughRouteManager(t *testing.T) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    "frontend",
			BaseURL: "https://example.com",
			Paths: map[string]string{
				"storefront_page": "/:slug/:page",
			},
		}},
	})
	r := render.New(render.WithRouteManager(manager, "frontend", "storefront_page"))

	view := r.Render(blocks.PageLinkBlock{Base: blocks.Base{ID: "p"}, Label: "Book", PageType: domain.PageBookings},
		ambientWith(domain.Business{Slug: "acme"}))

	if got := view.Links[0].Href; got != "https://example.com/acme/bookings" {
		t.Fatalf("expected routed url, got %q", got)
	}
}

func TestRenderPageLinkFallsBackWhenRouteMissing(t *testing.T) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{Name: "frontend", BaseURL: "https://example.com", Paths: map[string]string{}}},
	})
	r := render.New(render.WithRouteManager(manager, "missing", "storefront_page"))

	view := r.Render(blocks.PageLinkBlock{Base: blocks.Base{ID: "p"}, PageType: domain.PageQuote},
		ambientWith(domain.Business{Slug: "acme"}))
	if got := view.Links[0].Href; got != "/acme/quote" {
		t.Fatalf("expected fallback path, got %q", got)
	}
}

func TestRenderOpeningHours(t *testing.T) {
	r := render.New()
	block := blocks.OpeningHoursBlock{
		Base:       blocks.Base{ID: "h"},
		TimeFormat: blocks.TimeFormat12h,
		Days:       domain.DefaultBusinessHours(),
	}

	view := r.Render(block, render.Ambient{})
	if len(view.Items) != 7 {
		t.Fatalf("expected 7 days, got %d", len(view.Items))
	}
	if view.Items[0].Label != "Monday" || view.Items[0].Value != "9:00 AM - 5:00 PM" {
		t.Fatalf("unexpected monday %+v", view.Items[0])
	}
	if view.Items[6].Value != "Closed" || !view.Items[6].Inactive {
		t.Fatalf("expected sunday closed, got %+v", view.Items[6])
	}

	block.IsOpen247 = true
	view = r.Render(block, render.Ambient{})
	if view.Body != "Open 24 / 7" || len(view.Items) != 0 {
		t.Fatalf("expected 24/7 view, got %+v", view)
	}
}

func TestRenderOpeningHoursPrefersBusinessHours(t *testing.T) {
	r := render.New()
	hours := []domain.DayHours{{Day: "Monday", IsOpen: true, OpenTime: "08:00", CloseTime: "12:00"}}
	view := r.Render(blocks.OpeningHoursBlock{
		Base:       blocks.Base{ID: "h"},
		TimeFormat: blocks.TimeFormat24h,
		Days:       domain.DefaultBusinessHours(),
	}, ambientWith(domain.Business{BusinessHours: hours}))

	if len(view.Items) != 1 || view.Items[0].Value != "08:00 - 12:00" {
		t.Fatalf("expected business hours to win, got %+v", view.Items)
	}
}

func TestRenderContactProfileWins(t *testing.T) {
	r := render.New()
	block := blocks.ContactInfoBlock{Base: blocks.Base{ID: "c"}, FullName: "Block", Phone: "111", Email: "block@x.test", Website: "https://block.test"}
	view := r.Render(block, ambientWith(domain.Business{
		Name:  "Acme",
		Phone: domain.Phone{Code: "+1", Number: "555 0100"},
		Email: "hi@acme.test",
	}))

	if view.Body != "Acme" {
		t.Fatalf("expected profile name, got %q", view.Body)
	}
	if len(view.Links) != 3 {
		t.Fatalf("expected phone, email and website links, got %+v", view.Links)
	}
	if view.Links[0].Label != "+1 555 0100" || view.Links[0].Href != "tel:+15550100" {
		t.Fatalf("unexpected phone link %+v", view.Links[0])
	}
	if view.Links[1].Label != "hi@acme.test" {
		t.Fatalf("unexpected email link %+v", view.Links[1])
	}
	if view.Links[2].Href != "https://block.test" {
		t.Fatalf("expected block website fallback, got %+v", view.Links[2])
	}
}

func TestRenderLocation(t *testing.T) {
	r := render.New()
	block := blocks.LocationBlock{
		Base:         blocks.Base{ID: "l"},
		LocationType: blocks.LocationManual,
		Street:       "2 Side St",
		City:         "Shelbyville",
	}

	view := r.Render(block, render.Ambient{})
	if view.Body != "2 Side St, Shelbyville" {
		t.Fatalf("unexpected address %q", view.Body)
	}
	if want := "https://www.google.com/maps/search/?api=1&query=2+Side+St%2C+Shelbyville"; view.Links[0].Href != want {
		t.Fatalf("expected %s got %s", want, view.Links[0].Href)
	}

	view = r.Render(block, ambientWith(domain.Business{Address: domain.Address{StreetAddress: "1 Main St", AddressLocality: "Springfield"}}))
	if view.Body != "1 Main St, Springfield" {
		t.Fatalf("expected profile address, got %q", view.Body)
	}

	urlBlock := blocks.LocationBlock{Base: blocks.Base{ID: "l"}, LocationType: blocks.LocationURL, URL: "https://maps.test/x"}
	view = r.Render(urlBlock, render.Ambient{})
	if view.Links[0].Href != "https://maps.test/x" || view.Body != "" {
		t.Fatalf("expected url mode link, got %+v", view)
	}
}

func TestRenderFacilities(t *testing.T) {
	r := render.New()
	view := r.Render(blocks.FacilitiesBlock{Base: blocks.Base{ID: "f"}, SelectedFacilities: []string{"pet", "wifi", "sauna"}}, render.Ambient{})

	if len(view.Items) != 2 {
		t.Fatalf("expected known facilities only, got %+v", view.Items)
	}
	if view.Items[0].Label != "Wi-Fi" || view.Items[1].Label != "Pet Friendly" {
		t.Fatalf("unexpected labels %+v", view.Items)
	}

	view = r.Render(blocks.FacilitiesBlock{Base: blocks.Base{ID: "f"}, SelectedFacilities: []string{"pet"}},
		ambientWith(domain.Business{SelectedFacilities: []string{"child"}}))
	if len(view.Items) != 1 || view.Items[0].Label != "Child Friendly" {
		t.Fatalf("expected profile facilities to win, got %+v", view.Items)
	}
}

func TestRenderAboutAndSocial(t *testing.T) {
	r := render.New()
	about := r.Render(blocks.AboutBlock{Base: blocks.Base{ID: "a"}, Summary: "Block story"}, render.Ambient{})
	if about.Body != "Block story" {
		t.Fatalf("expected block summary fallback, got %q", about.Body)
	}
	if !r.Render(blocks.AboutBlock{Base: blocks.Base{ID: "a"}}, render.Ambient{}).Empty {
		t.Fatalf("expected empty about view")
	}

	social := r.Render(blocks.SocialNetworksBlock{
		Base:      blocks.Base{ID: "s"},
		Platforms: []blocks.Platform{{Name: "instagram", URL: ""}},
	}, ambientWith(domain.Business{SameAs: []string{"https://instagram.com/acme", "https://acme.test"}}))
	if len(social.Links) != 2 {
		t.Fatalf("expected sameAs links, got %+v", social.Links)
	}
	if social.Links[0].Label != "instagram" || social.Links[1].Label != "website" {
		t.Fatalf("unexpected platform names %+v", social.Links)
	}
}

func TestRenderCatalogBlocks(t *testing.T) {
	r := render.New()
	ambient := render.Ambient{
		Products: []domain.Product{
			{ID: uuid.New(), Name: "Mug", Price: 1234.5, Status: domain.CatalogStatusOnline},
			{ID: uuid.New(), Name: "Draft", Price: 1, Status: domain.CatalogStatusDraft},
			{ID: uuid.New(), Name: "Haircut", Price: 20, Currency: "eur", Status: domain.CatalogStatusActive, Kind: "Service"},
		},
		Services: []domain.Service{
			{ID: uuid.New(), Name: "Massage", Price: 60, Status: domain.CatalogStatusOnline, DurationMinutes: 45},
			{ID: uuid.New(), Name: "Hidden", Status: domain.CatalogStatusArchived},
		},
	}

	products := r.Render(blocks.ProductsBlock{Base: blocks.Base{ID: "p"}, Title: "Shop Products"}, ambient)
	if len(products.Items) != 2 {
		t.Fatalf("expected listed products, got %+v", products.Items)
	}
	if products.Items[0].Price != "USD 1,234.5" {
		t.Fatalf("unexpected price %q", products.Items[0].Price)
	}

	services := r.Render(blocks.ServicesBlock{Base: blocks.Base{ID: "s"}, Title: "Our Services"}, ambient)
	if len(services.Items) != 2 {
		t.Fatalf("expected service plus service product, got %+v", services.Items)
	}
	if services.Items[0].Label != "Massage" || services.Items[0].Detail != "45m duration" {
		t.Fatalf("unexpected service %+v", services.Items[0])
	}
	if services.Items[1].Label != "Haircut" || services.Items[1].Price != "EUR 20" || services.Items[1].Detail != "30m duration" {
		t.Fatalf("unexpected service product %+v", services.Items[1])
	}
}

func TestRenderPageSkipsEmptyViews(t *testing.T) {
	r := render.New()
	page := profiles.Page{Settings: profiles.PageSettings{Blocks: blocks.List{
		blocks.TextBlock{Base: blocks.Base{ID: "1"}, Title: "A"},
		blocks.Unknown{ID: "2", Type: "carousel"},
		blocks.AboutBlock{Base: blocks.Base{ID: "3"}},
		blocks.TextBlock{Base: blocks.Base{ID: "4"}, Title: "B"},
	}}}

	views := r.RenderPage(page, render.Ambient{})
	if len(views) != 2 || views[0].ID != "1" || views[1].ID != "4" {
		t.Fatalf("unexpected views %+v", views)
	}
}
