package blocks_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

func sequentialIDs() blocks.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("blk-%d", n)
	}
}

func TestRegistryDefinitionsPaletteOrder(t *testing.T) {
	reg := blocks.NewRegistry()
	defs := reg.Definitions()

	want := []blocks.Type{
		blocks.TypeText, blocks.TypeURL, blocks.TypePageLink,
		blocks.TypeOpeningHours, blocks.TypeContactInfo, blocks.TypeLocation,
		blocks.TypeFacilities, blocks.TypeAbout, blocks.TypeSocialNetworks,
		blocks.TypeServices, blocks.TypeProducts,
	}
	if len(defs) != len(want) {
		t.Fatalf("expected %d definitions got %d", len(want), len(defs))
	}
	for i, def := range defs {
		if def.Type != want[i] {
			t.Fatalf("definition %d: expected %s got %s", i, want[i], def.Type)
		}
		if def.Singleton != blocks.IsSingleton(def.Type) {
			t.Fatalf("definition %s: singleton flag mismatch", def.Type)
		}
		if def.Schema == nil {
			t.Fatalf("definition %s: expected schema", def.Type)
		}
	}
}

func TestIsSingleton(t *testing.T) {
	repeatable := []blocks.Type{blocks.TypeText, blocks.TypeURL, blocks.TypePageLink}
	for _, typ := range repeatable {
		if blocks.IsSingleton(typ) {
			t.Fatalf("expected %s to be repeatable", typ)
		}
	}
	singles := []blocks.Type{
		blocks.TypeOpeningHours, blocks.TypeContactInfo, blocks.TypeLocation, blocks.TypeFacilities,
		blocks.TypeAbout, blocks.TypeSocialNetworks, blocks.TypeServices, blocks.TypeProducts,
	}
	for _, typ := range singles {
		if !blocks.IsSingleton(typ) {
			t.Fatalf("expected %s to be a singleton", typ)
		}
	}
}

func TestCreateDefaultSeedsFromBusiness(t *testing.T) {
	reg := blocks.NewRegistry(blocks.WithIDGenerator(sequentialIDs()))
	biz := domain.Business{
		Name:        "Acme",
		Email:       "a@b.co",
		URL:         "https://acme.test",
		Phone:       domain.Phone{Code: "+1", Number: "+1555"},
		Description: "We fix things",
		Address: domain.Address{
			StreetAddress:   "1 Main St",
			AddressLocality: "Springfield",
			AddressRegion:   "IL",
			PostalCode:      "62701",
			AddressCountry:  "US",
		},
		SameAs:             []string{"https://facebook.com/acme", "https://acme.test/blog"},
		SelectedFacilities: []string{"wifi", "parking"},
	}
	ctx := blocks.Context{Business: biz}

	block, err := reg.CreateDefault(blocks.TypeContactInfo, ctx)
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	contact, ok := block.(blocks.ContactInfoBlock)
	if !ok {
		t.Fatalf("expected ContactInfoBlock got %T", block)
	}
	if contact.Phone != "+1555" || contact.Email != "a@b.co" || contact.FullName != "Acme" || contact.Website != "https://acme.test" {
		t.Fatalf("unexpected contact defaults: %+v", contact)
	}
	if contact.BlockID() != "blk-1" {
		t.Fatalf("expected generated id blk-1 got %s", contact.BlockID())
	}

	block, err = reg.CreateDefault(blocks.TypeLocation, ctx)
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	location := block.(blocks.LocationBlock)
	if location.LocationType != blocks.LocationManual || location.City != "Springfield" || location.Country != "US" {
		t.Fatalf("unexpected location defaults: %+v", location)
	}

	block, err = reg.CreateDefault(blocks.TypeSocialNetworks, ctx)
	if err != nil {
		t.Fatalf("create social: %v", err)
	}
	social := block.(blocks.SocialNetworksBlock)
	if len(social.Platforms) != 2 || social.Platforms[0].Name != "facebook" || social.Platforms[1].Name != blocks.PlatformWebsite {
		t.Fatalf("unexpected platforms: %+v", social.Platforms)
	}

	block, err = reg.CreateDefault(blocks.TypeFacilities, ctx)
	if err != nil {
		t.Fatalf("create facilities: %v", err)
	}
	facilities := block.(blocks.FacilitiesBlock)
	facilities.SelectedFacilities[0] = "mutated"
	if biz.SelectedFacilities[0] != "wifi" {
		t.Fatalf("expected block defaults not to alias the business")
	}

	block, err = reg.CreateDefault(blocks.TypeAbout, ctx)
	if err != nil {
		t.Fatalf("create about: %v", err)
	}
	if block.(blocks.AboutBlock).Summary != "We fix things" {
		t.Fatalf("expected summary seeded from description")
	}
}

func TestCreateDefaultStaticValues(t *testing.T) {
	reg := blocks.NewRegistry()

	block, err := reg.CreateDefault(blocks.TypeText, blocks.Context{})
	if err != nil {
		t.Fatalf("create text: %v", err)
	}
	text := block.(blocks.TextBlock)
	if text.Title != "New Heading" || text.Content != "Add your content here..." {
		t.Fatalf("unexpected text defaults: %+v", text)
	}
	if text.BlockID() == "" {
		t.Fatalf("expected generated id")
	}

	block, err = reg.CreateDefault(blocks.TypeOpeningHours, blocks.Context{})
	if err != nil {
		t.Fatalf("create hours: %v", err)
	}
	hours := block.(blocks.OpeningHoursBlock)
	if hours.TimeFormat != blocks.TimeFormat24h || hours.IsOpen247 {
		t.Fatalf("unexpected hours defaults: %+v", hours)
	}
	if len(hours.Days) != 7 || hours.Days[0].Day != "Monday" || hours.Days[6].IsOpen {
		t.Fatalf("expected default week, got %+v", hours.Days)
	}

	block, err = reg.CreateDefault(blocks.TypePageLink, blocks.Context{})
	if err != nil {
		t.Fatalf("create page link: %v", err)
	}
	if link := block.(blocks.PageLinkBlock); link.PageType != domain.PageShop || link.Label != "Go to Page" {
		t.Fatalf("unexpected page link defaults: %+v", link)
	}
}

func TestCreateDefaultOpeningHoursFromPartialWeek(t *testing.T) {
	reg := blocks.NewRegistry()
	biz := domain.Business{BusinessHours: []domain.DayHours{
		{Day: "saturday", IsOpen: true, OpenTime: "10:00", CloseTime: "13:00"},
		{Day: "Monday", IsOpen: true, OpenTime: "08:00", CloseTime: "16:00"},
	}}

	block, err := reg.CreateDefault(blocks.TypeOpeningHours, blocks.Context{Business: biz})
	if err != nil {
		t.Fatalf("create hours: %v", err)
	}
	days := block.(blocks.OpeningHoursBlock).Days
	if len(days) != 7 {
		t.Fatalf("expected seven days got %d", len(days))
	}
	for i, name := range domain.Weekdays {
		if days[i].Day != name {
			t.Fatalf("day %d: expected %s got %s", i, name, days[i].Day)
		}
	}
	if !days[0].IsOpen || days[0].OpenTime != "08:00" || !days[5].IsOpen || days[5].OpenTime != "10:00" {
		t.Fatalf("expected profile entries kept, got %+v", days)
	}
	if days[2].IsOpen {
		t.Fatalf("expected missing days closed, got %+v", days[2])
	}
}

func TestCreateDefaultOpeningHoursKeepsCompleteWeekOrder(t *testing.T) {
	week := domain.DefaultBusinessHours()
	sundayFirst := append([]domain.DayHours{week[6]}, week[:6]...)
	reg := blocks.NewRegistry()

	block, err := reg.CreateDefault(blocks.TypeOpeningHours, blocks.Context{Business: domain.Business{BusinessHours: sundayFirst}})
	if err != nil {
		t.Fatalf("create hours: %v", err)
	}
	if days := block.(blocks.OpeningHoursBlock).Days; days[0].Day != "Sunday" || len(days) != 7 {
		t.Fatalf("expected profile order kept, got %+v", days)
	}
}

func TestCreateDefaultUnknownType(t *testing.T) {
	reg := blocks.NewRegistry()
	if _, err := reg.CreateDefault(blocks.Type("carousel"), blocks.Context{}); !errors.Is(err, blocks.ErrUnknownBlockType) {
		t.Fatalf("expected ErrUnknownBlockType got %v", err)
	}
}

func TestCreateDefaultIDsAreUnique(t *testing.T) {
	reg := blocks.NewRegistry()
	seen := map[string]struct{}{}
	for range 50 {
		block, err := reg.CreateDefault(blocks.TypeText, blocks.Context{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, dup := seen[block.BlockID()]; dup {
			t.Fatalf("duplicate id %s", block.BlockID())
		}
		seen[block.BlockID()] = struct{}{}
	}
}

func TestValidatePatch(t *testing.T) {
	reg := blocks.NewRegistry()

	cases := []struct {
		name    string
		typ     blocks.Type
		patch   blocks.Patch
		wantErr bool
	}{
		{name: "partial text", typ: blocks.TypeText, patch: blocks.Patch{"title": "Hello"}},
		{name: "unknown field", typ: blocks.TypeText, patch: blocks.Patch{"headline": "x"}, wantErr: true},
		{name: "bad time format", typ: blocks.TypeOpeningHours, patch: blocks.Patch{"timeFormat": "13h"}, wantErr: true},
		{name: "days too long", typ: blocks.TypeOpeningHours, patch: blocks.Patch{"days": make([]any, 8)}, wantErr: true},
		{name: "bad location mode", typ: blocks.TypeLocation, patch: blocks.Patch{"locationType": "gps"}, wantErr: true},
		{name: "manual location", typ: blocks.TypeLocation, patch: blocks.Patch{"locationType": "manual", "city": "Paris"}},
		{name: "platform without name", typ: blocks.TypeSocialNetworks, patch: blocks.Patch{
			"platforms": []any{map[string]any{"url": "https://x.com"}},
		}, wantErr: true},
		{name: "platforms", typ: blocks.TypeSocialNetworks, patch: blocks.Patch{
			"platforms": []blocks.Platform{{Name: "facebook", URL: "https://facebook.com/a"}},
		}},
		{name: "page link target", typ: blocks.TypePageLink, patch: blocks.Patch{"pageType": "profile"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := reg.ValidatePatch(tc.typ, tc.patch)
			if tc.wantErr {
				if !errors.Is(err, blocks.ErrPatchInvalid) {
					t.Fatalf("expected ErrPatchInvalid got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := blocks.DisplayName(blocks.TypeContactInfo); got != "Contact Info" {
		t.Fatalf("expected Contact Info got %q", got)
	}
	if got := blocks.DisplayName(blocks.TypeAbout); got != "About" {
		t.Fatalf("expected About got %q", got)
	}
}

func TestGuessPlatform(t *testing.T) {
	cases := map[string]string{
		"https://www.facebook.com/acme": "facebook",
		"https://instagram.com/acme":    "instagram",
		"https://wa.me/whatsapp":        "whatsapp",
		"https://GitHub.com/acme":       "github",
		"https://acme.test":             "website",
	}
	for url, want := range cases {
		if got := blocks.GuessPlatform(url); got != want {
			t.Fatalf("%s: expected %s got %s", url, want, got)
		}
	}
}
