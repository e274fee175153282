package builder

import (
	"context"

	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
)

// Session is one merchant editing one page. It is not safe for concurrent use.
type Session struct {
	service  *Service
	draft    *pages.Draft
	pageType domain.PageType
	products []domain.Product
	services []domain.Service
}

// Draft returns the working draft the editor mutates.
func (s *Session) Draft() *pages.Draft {
	return s.draft
}

// PageType returns the page the session edits.
func (s *Session) PageType() domain.PageType {
	return s.pageType
}

// SwitchPage points the session at another page of the same profile. The
// draft, including unsaved edits, is kept.
func (s *Session) SwitchPage(pageType domain.PageType) error {
	normalized := domain.NormalizePageType(string(pageType))
	if !normalized.Valid() {
		return pages.ErrInvalidPageType
	}
	s.pageType = normalized
	return nil
}

// Preview renders the current page of the draft.
func (s *Session) Preview() []render.View {
	profile := s.draft.Profile()
	page, ok := profile.Page(s.pageType)
	if !ok {
		return []render.View{}
	}
	return s.service.renderer.RenderPage(page, render.Ambient{
		Profile:  profile,
		Products: s.products,
		Services: s.services,
	})
}

// Save persists the whole draft in one repository update. A failed save keeps
// the draft dirty and is not retried.
func (s *Session) Save(ctx context.Context) (*profiles.Profile, error) {
	if s == nil || s.draft == nil {
		return nil, ErrSessionRequired
	}
	profile := s.draft.Profile()
	logger := s.service.logger.WithContext(logging.ContextWithSession(ctx, profile.ID, string(s.pageType)))

	saved, err := s.service.profiles.Update(ctx, profile)
	if err != nil {
		logger.Error("builder.save.failed", "error", err)
		s.draft.Notify(pages.NoticeError, NoticeSaveFailed)
		return nil, err
	}

	s.draft.MarkClean()
	s.draft.Notify(pages.NoticeSuccess, NoticeSaved)
	logger.Info("builder.save.succeeded", "pages", len(profile.Pages))
	return saved, nil
}
