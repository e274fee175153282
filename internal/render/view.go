package render

import (
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/profiles"
)

// Ambient is the read-only context a block is rendered against.
type Ambient struct {
	Profile  *profiles.Profile
	Products []domain.Product
	Services []domain.Service
}

func (a Ambient) business() domain.Business {
	if a.Profile == nil {
		return domain.Business{}
	}
	return a.Profile.Business
}

// View is the presentation-neutral output of one block.
type View struct {
	Kind  blocks.Type `json:"kind,omitempty"`
	ID    string      `json:"id,omitempty"`
	Title string      `json:"title,omitempty"`
	Body  string      `json:"body,omitempty"`
	HTML  string      `json:"html,omitempty"`
	Items []Item      `json:"items,omitempty"`
	Links []Link      `json:"links,omitempty"`
	Empty bool        `json:"empty,omitempty"`
}

// Item is one row of a list-like view: a schedule day, a facility or a catalog entry.
type Item struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Image    string `json:"image,omitempty"`
	Price    string `json:"price,omitempty"`
	Inactive bool   `json:"inactive,omitempty"`
}

// Link is a navigable target.
type Link struct {
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
	Href     string `json:"href"`
	Kind     string `json:"kind,omitempty"`
	External bool   `json:"external,omitempty"`
}

// Link kinds.
const (
	LinkPage    = "page"
	LinkURL     = "url"
	LinkPhone   = "phone"
	LinkEmail   = "email"
	LinkWebsite = "website"
	LinkMaps    = "maps"
)

func empty(b blocks.Block) View {
	v := View{Empty: true}
	if b != nil {
		v.Kind = b.BlockType()
		v.ID = b.BlockID()
	}
	return v
}
