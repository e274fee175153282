package blocks

import (
	"slices"

	"github.com/goliatone/go-storefront/internal/domain"
)

// Type is the discriminant stored in every block document.
type Type string

const (
	TypeText           Type = "text"
	TypeURL            Type = "url"
	TypePageLink       Type = "page_link"
	TypeOpeningHours   Type = "opening_hours"
	TypeContactInfo    Type = "contact_info"
	TypeLocation       Type = "location"
	TypeFacilities     Type = "facilities"
	TypeAbout          Type = "about"
	TypeSocialNetworks Type = "social_networks"
	TypeServices       Type = "services"
	TypeProducts       Type = "products"
)

// Location source modes.
const (
	LocationManual = "manual"
	LocationURL    = "url"
)

// Time formats understood by the opening hours block.
const (
	TimeFormat24h = "24h"
	TimeFormat12h = "12h"
)

// Block is implemented by every block variant. The set of variants is closed.
type Block interface {
	BlockID() string
	BlockType() Type
	isBlock()
}

// Base carries the identifier shared by all variants.
type Base struct {
	ID string `json:"id"`
}

// BlockID returns the opaque block identifier.
func (b Base) BlockID() string { return b.ID }

func (Base) isBlock() {}

type TextBlock struct {
	Base
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (TextBlock) BlockType() Type { return TypeText }

type URLBlock struct {
	Base
	Label    string `json:"label"`
	URL      string `json:"url"`
	Subtitle string `json:"subtitle"`
}

func (URLBlock) BlockType() Type { return TypeURL }

type PageLinkBlock struct {
	Base
	Label    string          `json:"label"`
	PageType domain.PageType `json:"pageType"`
	Subtitle string          `json:"subtitle"`
}

func (PageLinkBlock) BlockType() Type { return TypePageLink }

type OpeningHoursBlock struct {
	Base
	TimeFormat string            `json:"timeFormat"`
	IsOpen247  bool              `json:"isOpen247"`
	Days       []domain.DayHours `json:"days"`
}

func (OpeningHoursBlock) BlockType() Type { return TypeOpeningHours }

type ContactInfoBlock struct {
	Base
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`
}

func (ContactInfoBlock) BlockType() Type { return TypeContactInfo }

type LocationBlock struct {
	Base
	LocationType string `json:"locationType"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	URL          string `json:"url"`
}

func (LocationBlock) BlockType() Type { return TypeLocation }

// IsManual reports whether the address is entered by hand. An empty mode counts as manual.
func (b LocationBlock) IsManual() bool {
	return b.LocationType == "" || b.LocationType == LocationManual
}

type FacilitiesBlock struct {
	Base
	SelectedFacilities []string `json:"selectedFacilities"`
}

func (FacilitiesBlock) BlockType() Type { return TypeFacilities }

type AboutBlock struct {
	Base
	Summary string `json:"summary"`
}

func (AboutBlock) BlockType() Type { return TypeAbout }

// Platform is one social network entry.
type Platform struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type SocialNetworksBlock struct {
	Base
	Platforms []Platform `json:"platforms"`
}

func (SocialNetworksBlock) BlockType() Type { return TypeSocialNetworks }

// ServicesBlock renders the live service catalog; only its heading is stored.
type ServicesBlock struct {
	Base
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (ServicesBlock) BlockType() Type { return TypeServices }

// ProductsBlock renders the live product catalog; only its heading is stored.
type ProductsBlock struct {
	Base
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (ProductsBlock) BlockType() Type { return TypeProducts }

// Unknown preserves a stored block whose type is not registered so it survives
// a load/save round trip. It renders as nothing.
type Unknown struct {
	ID     string
	Type   Type
	Fields map[string]any
}

func (u Unknown) BlockID() string { return u.ID }
func (u Unknown) BlockType() Type { return u.Type }
func (Unknown) isBlock()          {}

// List is the ordered block sequence of one page.
type List []Block

// IndexOf returns the position of the block with the given id, or -1.
func (l List) IndexOf(id string) int {
	return slices.IndexFunc(l, func(b Block) bool {
		return b != nil && b.BlockID() == id
	})
}

// Find returns the block with the given id.
func (l List) Find(id string) (Block, bool) {
	idx := l.IndexOf(id)
	if idx < 0 {
		return nil, false
	}
	return l[idx], true
}

// Contains reports whether a block of the given type is present.
func (l List) Contains(t Type) bool {
	return slices.ContainsFunc(l, func(b Block) bool {
		return b != nil && b.BlockType() == t
	})
}

// Count returns how many blocks of the given type are present.
func (l List) Count(t Type) int {
	n := 0
	for _, b := range l {
		if b != nil && b.BlockType() == t {
			n++
		}
	}
	return n
}

// IDs returns the block identifiers in list order.
func (l List) IDs() []string {
	out := make([]string, 0, len(l))
	for _, b := range l {
		if b != nil {
			out = append(out, b.BlockID())
		}
	}
	return out
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, b := range l {
		out[i] = Clone(b)
	}
	return out
}

// Clone returns a copy of the block that shares no slices or maps with the input.
func Clone(b Block) Block {
	switch v := b.(type) {
	case OpeningHoursBlock:
		v.Days = slices.Clone(v.Days)
		return v
	case FacilitiesBlock:
		v.SelectedFacilities = slices.Clone(v.SelectedFacilities)
		return v
	case SocialNetworksBlock:
		v.Platforms = slices.Clone(v.Platforms)
		return v
	case Unknown:
		v.Fields = cloneFields(v.Fields)
		return v
	default:
		return b
	}
}
