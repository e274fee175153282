// Package fieldsync derives canonical business profile updates from block edits.
//
// Writes only flow from blocks to the profile. Profile values seed new blocks
// when they are created, but nothing here reads the profile back into blocks
// that already exist: editing the profile elsewhere leaves existing blocks as
// they were.
package fieldsync

import (
	"slices"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

// Syncs reports whether edits to blocks of the type write through to the profile.
func Syncs(t blocks.Type) bool {
	switch t {
	case blocks.TypeOpeningHours, blocks.TypeContactInfo, blocks.TypeLocation,
		blocks.TypeAbout, blocks.TypeFacilities, blocks.TypeSocialNetworks:
		return true
	default:
		return false
	}
}

// Apply returns the business with the fields derived from a block edit. block is
// the block after the patch was merged; patch names the fields the edit touched.
// The second result reports whether any canonical field was written.
func Apply(business domain.Business, block blocks.Block, patch blocks.Patch) (domain.Business, bool) {
	if block == nil || len(patch) == 0 || !Syncs(block.BlockType()) {
		return business, false
	}
	next := business.Clone()

	switch b := block.(type) {
	case blocks.OpeningHoursBlock:
		if !patch.Has("days") {
			return business, false
		}
		if domain.CompleteWeek(b.Days) {
			next.BusinessHours = slices.Clone(b.Days)
		} else {
			next.BusinessHours = domain.NormalizeWeek(b.Days, business.BusinessHours)
		}
	case blocks.ContactInfoBlock:
		if !patch.HasAny("phone", "email", "website") {
			return business, false
		}
		if patch.Has("phone") {
			next.Phone.Number = b.Phone
		}
		if patch.Has("email") {
			next.Email = b.Email
		}
		if patch.Has("website") {
			next.URL = b.Website
		}
	case blocks.LocationBlock:
		if !b.IsManual() || !patch.HasAny("locationType", "street", "city", "state", "postalCode", "country") {
			return business, false
		}
		next.Address = mergeAddress(business.Address, b, patch)
	case blocks.AboutBlock:
		if !patch.Has("summary") {
			return business, false
		}
		next.Description = b.Summary
	case blocks.FacilitiesBlock:
		if !patch.Has("selectedFacilities") {
			return business, false
		}
		next.SelectedFacilities = slices.Clone(b.SelectedFacilities)
	case blocks.SocialNetworksBlock:
		if !patch.Has("platforms") {
			return business, false
		}
		next.SameAs = platformURLs(b.Platforms)
	default:
		return business, false
	}
	return next, true
}

// mergeAddress writes the patched, non-empty block fields over the existing
// address. Fields the patch leaves out or clears keep their profile value.
func mergeAddress(current domain.Address, b blocks.LocationBlock, patch blocks.Patch) domain.Address {
	pick := func(field, value, fallback string) string {
		if patch.Has(field) && strings.TrimSpace(value) != "" {
			return value
		}
		return fallback
	}
	return domain.Address{
		StreetAddress:   pick("street", b.Street, current.StreetAddress),
		AddressLocality: pick("city", b.City, current.AddressLocality),
		AddressRegion:   pick("state", b.State, current.AddressRegion),
		PostalCode:      pick("postalCode", b.PostalCode, current.PostalCode),
		AddressCountry:  pick("country", b.Country, current.AddressCountry),
	}
}

func platformURLs(platforms []blocks.Platform) []string {
	out := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		if platform.URL == "" {
			continue
		}
		out = append(out, platform.URL)
	}
	return out
}
