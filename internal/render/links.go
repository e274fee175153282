package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-storefront/internal/domain"
	urlkit "github.com/goliatone/go-urlkit"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// Route parameters passed to the page route.
const (
	ParamSlug     = "slug"
	ParamPageType = "page"
)

// pagePath is the plain storefront path used when no route manager is configured.
func pagePath(businessSlug string, pageType domain.PageType) string {
	return "/" + url.PathEscape(businessSlug) + "/" + url.PathEscape(string(pageType))
}

func mapsURL(address string) string {
	return mapsSearchURL + url.QueryEscape(address)
}

// pageURL resolves the public URL of a storefront page through the route
// manager, falling back to the plain path when routing is not configured or
// the route cannot be built.
func (r *Renderer) pageURL(businessSlug string, pageType domain.PageType) string {
	fallback := pagePath(businessSlug, pageType)
	if r.routes == nil || r.routeGroup == "" || r.routeName == "" {
		return fallback
	}
	built, err := r.buildRoute(businessSlug, pageType)
	if err != nil {
		r.logger.Warn("render.page_link.route_failed", "error", err, "page_type", pageType)
		return fallback
	}
	return built
}

func (r *Renderer) buildRoute(businessSlug string, pageType domain.PageType) (href string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render: urlkit route %s.%s: %v", r.routeGroup, r.routeName, rec)
		}
	}()

	parts := strings.Split(r.routeGroup, ".")
	group := r.routes.Group(parts[0])
	for _, part := range parts[1:] {
		group = group.Group(part)
	}
	if group == nil {
		return "", fmt.Errorf("render: route group %q not found", r.routeGroup)
	}
	return group.Builder(r.routeName).
		WithParam(ParamSlug, businessSlug).
		WithParam(ParamPageType, string(pageType)).
		Build()
}

// NewRouteManager builds a route manager from config, or nil when config is nil.
func NewRouteManager(cfg *urlkit.Config) *urlkit.RouteManager {
	if cfg == nil {
		return nil
	}
	return urlkit.NewRouteManager(cfg)
}
