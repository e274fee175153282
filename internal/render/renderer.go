package render

import (
	"bytes"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Section titles shown above the business blocks.
const (
	TitleOpeningHours = "Opening Hours"
	TitleContact      = "Contact Us"
	TitleLocation     = "Location"
	TitleFacilities   = "Facilities"
	TitleAbout        = "About"
	TitleSocial       = "Social"
)

const (
	labelClosed    = "Closed"
	labelOpen247   = "Open 24 / 7"
	labelWebsite   = "Visit Website"
	labelMaps      = "Open in Maps"
	labelMapsURL   = "View on Google Maps"
	defaultMinutes = 30
)

var facilityLabels = map[string]string{
	"wifi":       "Wi-Fi",
	"parking":    "Parking",
	"cafe":       "Cafe",
	"restaurant": "Restaurant",
	"accessible": "Accessible",
	"child":      "Child Friendly",
	"pet":        "Pet Friendly",
	"seating":    "Seating",
}

// facilityOrder is the display order of known facilities.
var facilityOrder = []string{"wifi", "parking", "cafe", "restaurant", "accessible", "child", "pet", "seating"}

// Renderer turns blocks into views. It is safe for concurrent use once built.
type Renderer struct {
	markdown   goldmark.Markdown
	routes     *urlkit.RouteManager
	routeGroup string
	routeName  string
	logger     interfaces.Logger
}

// Option customises a renderer.
type Option func(*Renderer)

// WithRouteManager resolves page links through the named group and route.
// The route receives the business slug and the page type as parameters.
func WithRouteManager(manager *urlkit.RouteManager, group, route string) Option {
	return func(r *Renderer) {
		r.routes = manager
		r.routeGroup = strings.TrimSpace(group)
		r.routeName = strings.TrimSpace(route)
	}
}

// WithMarkdown overrides the markdown engine used for text content.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(r *Renderer) {
		if md != nil {
			r.markdown = md
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a renderer. Markdown is rendered without raw HTML passthrough.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RenderPage renders the page blocks in order and drops empty views.
func (r *Renderer) RenderPage(page profiles.Page, ambient Ambient) []View {
	out := make([]View, 0, len(page.Settings.Blocks))
	for _, block := range page.Settings.Blocks {
		view := r.Render(block, ambient)
		if view.Empty {
			continue
		}
		out = append(out, view)
	}
	return out
}

// Render produces the view of one block. Unrecognised blocks render empty.
func (r *Renderer) Render(block blocks.Block, ambient Ambient) View {
	switch b := block.(type) {
	case blocks.TextBlock:
		return r.text(b)
	case blocks.URLBlock:
		return r.link(b)
	case blocks.PageLinkBlock:
		return r.pageLink(b, ambient)
	case blocks.OpeningHoursBlock:
		return r.openingHours(b, ambient)
	case blocks.ContactInfoBlock:
		return r.contact(b, ambient)
	case blocks.LocationBlock:
		return r.location(b, ambient)
	case blocks.FacilitiesBlock:
		return r.facilities(b, ambient)
	case blocks.AboutBlock:
		return r.about(b, ambient)
	case blocks.SocialNetworksBlock:
		return r.social(b, ambient)
	case blocks.ServicesBlock:
		return r.services(b, ambient)
	case blocks.ProductsBlock:
		return r.products(b, ambient)
	default:
		if block != nil {
			r.logger.Debug("render.block.skipped", "block_type", block.BlockType(), "block_id", block.BlockID())
		}
		return empty(block)
	}
}

func (r *Renderer) text(b blocks.TextBlock) View {
	v := View{Kind: b.BlockType(), ID: b.ID, Title: b.Title, Body: b.Content}
	if strings.TrimSpace(b.Content) != "" {
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(b.Content), &buf); err != nil {
			r.logger.Warn("render.text.markdown_failed", "block_id", b.ID, "error", err)
		} else {
			v.HTML = buf.String()
		}
	}
	v.Empty = v.Title == "" && v.Body == ""
	return v
}

func (r *Renderer) link(b blocks.URLBlock) View {
	return View{
		Kind: b.BlockType(),
		ID:   b.ID,
		Links: []Link{{
			Label:    b.Label,
			Subtitle: b.Subtitle,
			Href:     b.URL,
			Kind:     LinkURL,
			External: true,
		}},
	}
}

func (r *Renderer) pageLink(b blocks.PageLinkBlock, ambient Ambient) View {
	label := b.Label
	if label == "" {
		label = "Go to " + string(b.PageType)
	}
	return View{
		Kind: b.BlockType(),
		ID:   b.ID,
		Links: []Link{{
			Label:    label,
			Subtitle: b.Subtitle,
			Href:     r.pageURL(ambient.business().Slug, b.PageType),
			Kind:     LinkPage,
		}},
	}
}

func (r *Renderer) openingHours(b blocks.OpeningHoursBlock, ambient Ambient) View {
	v := View{Kind: b.BlockType(), ID: b.ID, Title: TitleOpeningHours}
	if b.IsOpen247 {
		v.Body = labelOpen247
		return v
	}
	days := ambient.business().BusinessHours
	if len(days) == 0 {
		days = b.Days
	}
	twelveHour := b.TimeFormat == blocks.TimeFormat12h
	v.Items = make([]Item, 0, len(days))
	for _, day := range days {
		item := Item{Label: day.Day, Value: labelClosed, Inactive: !day.IsOpen}
		if day.IsOpen {
			item.Value = formatClock(day.OpenTime, twelveHour) + " - " + formatClock(day.CloseTime, twelveHour)
		}
		v.Items = append(v.Items, item)
	}
	return v
}

func (r *Renderer) contact(b blocks.ContactInfoBlock, ambient Ambient) View {
	biz := ambient.business()
	v := View{Kind: b.BlockType(), ID: b.ID, Title: TitleContact, Body: firstNonEmpty(biz.Name, b.FullName)}

	phone := b.Phone
	if !biz.Phone.IsZero() {
		phone = strings.TrimSpace(biz.Phone.Code + " " + biz.Phone.Number)
	}
	if phone != "" {
		v.Links = append(v.Links, Link{Label: phone, Href: "tel:" + strings.ReplaceAll(phone, " ", ""), Kind: LinkPhone})
	}
	if email := firstNonEmpty(biz.Email, b.Email); email != "" {
		v.Links = append(v.Links, Link{Label: email, Href: "mailto:" + email, Kind: LinkEmail})
	}
	if site := firstNonEmpty(biz.URL, b.Website); site != "" {
		v.Links = append(v.Links, Link{Label: labelWebsite, Href: site, Kind: LinkWebsite, External: true})
	}
	v.Empty = len(v.Links) == 0 && v.Body == ""
	return v
}

func (r *Renderer) location(b blocks.LocationBlock, ambient Ambient) View {
	v := View{Kind: b.BlockType(), ID: b.ID, Title: TitleLocation}
	address := ambient.business().Address
	if !address.IsZero() || b.IsManual() {
		line := address.Line()
		if address.IsZero() {
			line = domain.Address{
				StreetAddress:   b.Street,
				AddressLocality: b.City,
				AddressRegion:   b.State,
				PostalCode:      b.PostalCode,
			}.Line()
		}
		v.Body = line
		v.Links = []Link{{Label: labelMaps, Href: mapsURL(line), Kind: LinkMaps, External: true}}
		return v
	}
	if strings.TrimSpace(b.URL) == "" {
		v.Empty = true
		return v
	}
	v.Links = []Link{{Label: labelMapsURL, Href: b.URL, Kind: LinkMaps, External: true}}
	return v
}

func (r *Renderer) facilities(b blocks.FacilitiesBlock, ambient Ambient) View {
	selected := ambient.business().SelectedFacilities
	if len(selected) == 0 {
		selected = b.SelectedFacilities
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}
	v := View{Kind: b.BlockType(), ID: b.ID, Title: TitleFacilities}
	for _, id := range facilityOrder {
		if _, ok := chosen[id]; ok {
			v.Items = append(v.Items, Item{ID: id, Label: facilityLabels[id]})
		}
	}
	return v
}

func (r *Renderer) about(b blocks.AboutBlock, ambient Ambient) View {
	body := firstNonEmpty(ambient.business().Description, b.Summary)
	return View{Kind: b.BlockType(), ID: b.ID, Title: TitleAbout, Body: body, Empty: body == ""}
}

func (r *Renderer) social(b blocks.SocialNetworksBlock, ambient Ambient) View {
	platforms := b.Platforms
	if sameAs := ambient.business().SameAs; len(sameAs) > 0 {
		platforms = blocks.PlatformsFromURLs(sameAs)
	}
	v := View{Kind: b.BlockType(), ID: b.ID, Title: TitleSocial}
	for _, p := range platforms {
		if strings.TrimSpace(p.URL) == "" {
			continue
		}
		v.Links = append(v.Links, Link{Label: p.Name, Href: p.URL, Kind: p.Name, External: true})
	}
	v.Empty = len(v.Links) == 0
	return v
}

func (r *Renderer) services(b blocks.ServicesBlock, ambient Ambient) View {
	v := View{Kind: b.BlockType(), ID: b.ID, Title: b.Title, Body: b.Description}
	for _, s := range catalog.ListedServices(ambient.Services) {
		v.Items = append(v.Items, Item{
			ID:     s.ID.String(),
			Label:  s.Name,
			Value:  s.Description,
			Detail: durationLabel(s.DurationMinutes),
			Image:  domain.FirstImage(s.Images),
			Price:  formatPrice(s.Currency, s.Price),
		})
	}
	for _, p := range catalog.Listed(ambient.Products) {
		if !p.IsService() {
			continue
		}
		v.Items = append(v.Items, Item{
			ID:     p.ID.String(),
			Label:  p.Name,
			Value:  p.Description,
			Detail: durationLabel(0),
			Image:  domain.FirstImage(p.Images),
			Price:  formatPrice(p.Currency, p.Price),
		})
	}
	return v
}

func (r *Renderer) products(b blocks.ProductsBlock, ambient Ambient) View {
	v := View{Kind: b.BlockType(), ID: b.ID, Title: b.Title, Body: b.Description}
	for _, p := range catalog.Listed(ambient.Products) {
		v.Items = append(v.Items, Item{
			ID:    p.ID.String(),
			Label: p.Name,
			Value: p.Description,
			Image: domain.FirstImage(p.Images),
			Price: formatPrice(p.Currency, p.Price),
		})
	}
	return v
}

// formatClock renders an HH:MM value, converting to a 12 hour clock when asked.
// Values that do not parse are returned unchanged.
func formatClock(value string, twelveHour bool) string {
	if !twelveHour {
		return value
	}
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return parsed.Format("3:04 PM")
}

func formatPrice(currency string, amount float64) string {
	return catalog.NormalizeCurrency(currency) + " " + humanize.CommafWithDigits(amount, 2)
}

func durationLabel(minutes int) string {
	if minutes <= 0 {
		minutes = defaultMinutes
	}
	return humanize.Comma(int64(minutes)) + "m duration"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
