package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/resolver"
	"github.com/foomo/editor-prevnext/service/vo"
)

type Service interface {
	// GetNavigation resolves and renders the navigation of the page's item.
	GetNavigation(ctx context.Context, page vo.PageContext) (*vo.NavigationDocument, error)
	// Fragment resolves the navigation of the page's item without serializing it.
	Fragment(ctx context.Context, page vo.PageContext) (render.Fragment, vo.Navigation)
	// RenderNavigation renders the fragment for already known neighbours.
	RenderNavigation(next, previous vo.OptionalID) render.Fragment
	// ItemType returns the content type of an item, "post" when unknown.
	ItemType(ctx context.Context, id vo.ItemID) string
}

type service struct {
	logger   *zap.Logger
	resolver *resolver.Resolver
	renderer *render.Renderer
}

func NewService(logger *zap.Logger, r *resolver.Resolver, renderer *render.Renderer) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		logger:   logger,
		resolver: r,
		renderer: renderer,
	}
}

func (s *service) Fragment(ctx context.Context, page vo.PageContext) (render.Fragment, vo.Navigation) {
	nav := s.resolver.Resolve(ctx, page)
	s.logger.Debug("resolved navigation",
		zap.Int64("id", int64(page.ItemID)),
		zap.Int64("current", int64(nav.Current)),
		zap.String("type", nav.Type),
		zap.Stringer("previous", nav.Previous),
		zap.Stringer("next", nav.Next),
	)
	return s.renderer.RenderNavigation(nav), nav
}

func (s *service) RenderNavigation(next, previous vo.OptionalID) render.Fragment {
	return s.renderer.Render(next, previous)
}

func (s *service) ItemType(ctx context.Context, id vo.ItemID) string {
	return s.resolver.ItemType(ctx, id)
}

func (s *service) GetNavigation(ctx context.Context, page vo.PageContext) (*vo.NavigationDocument, error) {
	fragment, nav := s.Fragment(ctx, page)
	return Document(nav, fragment)
}

// Document serializes a rendered navigation.
func Document(nav vo.Navigation, fragment render.Fragment) (*vo.NavigationDocument, error) {
	htmlString, err := fragment.HTML()
	if err != nil {
		return nil, err
	}
	markdown, err := fragment.Markdown()
	if err != nil {
		return nil, fmt.Errorf("navigation of %d: %w", nav.Current, err)
	}
	return &vo.NavigationDocument{
		Navigation: nav,
		HTML:       htmlString,
		Markdown:   markdown,
	}, nil
}
