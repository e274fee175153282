package blocks

import (
	"slices"
	"strings"

	"github.com/goliatone/go-storefront/internal/domain"
)

const (
	defaultTextTitle      = "New Heading"
	defaultTextContent    = "Add your content here..."
	defaultURLLabel       = "Click Me"
	defaultURLHref        = "https://"
	defaultPageLinkLabel  = "Go to Page"
	defaultServicesTitle  = "Our Services"
	defaultServicesDesc   = "Select the services you would like to book."
	defaultProductsTitle  = "Shop Products"
	defaultProductsDesc   = "Explore our curated collection of items."
	PlatformWebsite       = "website"
	defaultPageLinkTarget = domain.PageShop
)

var knownPlatforms = []string{"facebook", "instagram", "twitter", "linkedin", "youtube", "github", "whatsapp"}

// GuessPlatform names a social network from a profile URL. URLs that match no
// known network are reported as "website".
func GuessPlatform(url string) string {
	lower := strings.ToLower(url)
	for _, name := range knownPlatforms {
		if strings.Contains(lower, name) {
			return name
		}
	}
	return PlatformWebsite
}

// PlatformsFromURLs maps canonical sameAs URLs to platform entries.
func PlatformsFromURLs(urls []string) []Platform {
	out := make([]Platform, 0, len(urls))
	for _, url := range urls {
		out = append(out, Platform{Name: GuessPlatform(url), URL: url})
	}
	return out
}

func newDefault(t Type, id string, ctx Context) (Block, error) {
	biz := ctx.Business
	base := Base{ID: id}

	switch t {
	case TypeText:
		return TextBlock{Base: base, Title: defaultTextTitle, Content: defaultTextContent}, nil
	case TypeURL:
		return URLBlock{Base: base, Label: defaultURLLabel, URL: defaultURLHref}, nil
	case TypePageLink:
		return PageLinkBlock{Base: base, Label: defaultPageLinkLabel, PageType: defaultPageLinkTarget}, nil
	case TypeOpeningHours:
		days := slices.Clone(biz.BusinessHours)
		switch {
		case len(days) == 0:
			days = domain.DefaultBusinessHours()
		case !domain.CompleteWeek(days):
			days = domain.NormalizeWeek(days, nil)
		}
		return OpeningHoursBlock{Base: base, TimeFormat: TimeFormat24h, Days: days}, nil
	case TypeContactInfo:
		return ContactInfoBlock{
			Base:     base,
			FullName: biz.Name,
			Phone:    biz.Phone.Number,
			Email:    biz.Email,
			Website:  biz.URL,
		}, nil
	case TypeLocation:
		return LocationBlock{
			Base:         base,
			LocationType: LocationManual,
			Street:       biz.Address.StreetAddress,
			City:         biz.Address.AddressLocality,
			State:        biz.Address.AddressRegion,
			PostalCode:   biz.Address.PostalCode,
			Country:      biz.Address.AddressCountry,
		}, nil
	case TypeFacilities:
		selected := slices.Clone(biz.SelectedFacilities)
		if selected == nil {
			selected = []string{}
		}
		return FacilitiesBlock{Base: base, SelectedFacilities: selected}, nil
	case TypeAbout:
		return AboutBlock{Base: base, Summary: biz.Description}, nil
	case TypeSocialNetworks:
		return SocialNetworksBlock{Base: base, Platforms: PlatformsFromURLs(biz.SameAs)}, nil
	case TypeServices:
		return ServicesBlock{Base: base, Title: defaultServicesTitle, Description: defaultServicesDesc}, nil
	case TypeProducts:
		return ProductsBlock{Base: base, Title: defaultProductsTitle, Description: defaultProductsDesc}, nil
	default:
		return nil, &UnknownTypeError{Type: t}
	}
}
