package profiles

import (
	"slices"
	"strings"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

// Profile is the stored business document: the canonical business fields plus
// the composed storefront pages.
type Profile struct {
	domain.Business
	Pages []Page `json:"pages"`
}

// Page is one storefront surface and its block composition.
type Page struct {
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Type     domain.PageType `json:"type"`
	Enabled  bool            `json:"enabled"`
	Settings PageSettings    `json:"settings"`
}

// PageSettings holds the ordered blocks and the SEO fields of a page.
type PageSettings struct {
	Blocks      blocks.List `json:"blocks"`
	Headline    string      `json:"headline,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Clone returns a copy that shares no slices with the receiver.
func (p Page) Clone() Page {
	out := p
	out.Settings.Blocks = p.Settings.Blocks.Clone()
	return out
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := &Profile{Business: p.Business.Clone()}
	if p.Pages != nil {
		out.Pages = make([]Page, len(p.Pages))
		for i, page := range p.Pages {
			out.Pages[i] = page.Clone()
		}
	}
	return out
}

// PageIndex returns the position of the page with the given type, or -1.
func (p *Profile) PageIndex(pageType domain.PageType) int {
	if p == nil {
		return -1
	}
	return slices.IndexFunc(p.Pages, func(page Page) bool {
		return page.Type == pageType
	})
}

// Page returns a copy of the page with the given type.
func (p *Profile) Page(pageType domain.PageType) (Page, bool) {
	idx := p.PageIndex(pageType)
	if idx < 0 {
		return Page{}, false
	}
	return p.Pages[idx].Clone(), true
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
