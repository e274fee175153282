package domain

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// PageType identifies a storefront surface that owns its own block list.
type PageType string

const (
	PageStorefront PageType = "storefront"
	PageBookings   PageType = "bookings"
	PageShop       PageType = "shop"
	PageQuote      PageType = "quote"
	// PageProfile is accepted as a link target and legacy stored page type.
	PageProfile PageType = "profile"
)

// PageTypes lists the page surfaces exposed by the builder.
func PageTypes() []PageType {
	return []PageType{PageStorefront, PageBookings, PageShop, PageQuote}
}

// NormalizePageType trims and lowercases the provided value.
func NormalizePageType(value string) PageType {
	return PageType(strings.ToLower(strings.TrimSpace(value)))
}

// Valid reports whether the page type is one the document schema accepts.
func (p PageType) Valid() bool {
	switch p {
	case PageStorefront, PageBookings, PageShop, PageQuote, PageProfile:
		return true
	default:
		return false
	}
}

// Phone mirrors the split dialing code/number stored on a business.
type Phone struct {
	Code   string `json:"code,omitempty"`
	Number string `json:"number,omitempty"`
}

// IsZero reports whether neither part of the phone is set.
func (p Phone) IsZero() bool {
	return strings.TrimSpace(p.Code) == "" && strings.TrimSpace(p.Number) == ""
}

// Address follows the schema.org PostalAddress field names.
type Address struct {
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// IsZero reports whether every address part is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Line joins the non-empty street, locality, region and postal code parts.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{a.StreetAddress, a.AddressLocality, a.AddressRegion, a.PostalCode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

// DayHours is one entry of the weekly schedule.
type DayHours struct {
	Day       string `json:"day"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Weekdays lists the day names in schedule order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DefaultBusinessHours returns a Monday to Friday 09:00-17:00 schedule with weekends closed.
func DefaultBusinessHours() []DayHours {
	hours := make([]DayHours, 0, len(Weekdays))
	for i, day := range Weekdays {
		hours = append(hours, DayHours{
			Day:       day,
			IsOpen:    i < 5,
			OpenTime:  "09:00",
			CloseTime: "17:00",
		})
	}
	return hours
}

// CompleteWeek reports whether days has seven entries naming each weekday once,
// in any order and casing.
func CompleteWeek(days []DayHours) bool {
	if len(days) != len(Weekdays) {
		return false
	}
	seen := make(map[string]struct{}, len(Weekdays))
	for _, d := range days {
		name, ok := weekdayName(d.Day)
		if !ok {
			return false
		}
		if _, dup := seen[name]; dup {
			return false
		}
		seen[name] = struct{}{}
	}
	return true
}

// NormalizeWeek rebuilds days as a seven entry schedule in weekday order. Days
// missing from days take their entry from fallback, or a closed default.
func NormalizeWeek(days, fallback []DayHours) []DayHours {
	out := make([]DayHours, 0, len(Weekdays))
	for _, name := range Weekdays {
		entry, ok := findDay(days, name)
		if !ok {
			entry, ok = findDay(fallback, name)
		}
		if !ok {
			entry = DayHours{OpenTime: "09:00", CloseTime: "17:00"}
		}
		entry.Day = name
		out = append(out, entry)
	}
	return out
}

func weekdayName(value string) (string, bool) {
	idx := slices.IndexFunc(Weekdays, func(name string) bool {
		return strings.EqualFold(strings.TrimSpace(value), name)
	})
	if idx < 0 {
		return "", false
	}
	return Weekdays[idx], true
}

func findDay(days []DayHours, name string) (DayHours, bool) {
	idx := slices.IndexFunc(days, func(d DayHours) bool {
		return strings.EqualFold(strings.TrimSpace(d.Day), name)
	})
	if idx < 0 {
		return DayHours{}, false
	}
	return days[idx], true
}

// Business holds the canonical merchant fields that blocks are seeded from and
// written through to. Page composition lives with the stored profile document.
type Business struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Description        string     `json:"description,omitempty"`
	Logo               string     `json:"logo,omitempty"`
	URL                string     `json:"url,omitempty"`
	Email              string     `json:"email,omitempty"`
	Phone              Phone      `json:"phone"`
	Address            Address    `json:"address"`
	BusinessHours      []DayHours `json:"businessHours,omitempty"`
	SameAs             []string   `json:"sameAs,omitempty"`
	SelectedFacilities []string   `json:"selectedFacilities,omitempty"`
	ThemeColor         string     `json:"themeColor,omitempty"`
	ButtonColor        string     `json:"buttonColor,omitempty"`
}

// Clone returns a copy that shares no slices with the receiver.
func (b Business) Clone() Business {
	out := b
	out.BusinessHours = slices.Clone(b.BusinessHours)
	out.SameAs = slices.Clone(b.SameAs)
	out.SelectedFacilities = slices.Clone(b.SelectedFacilities)
	return out
}
