// Package admin integrates the navigation into the host's admin screens.
package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/inject"
	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/service"
	"github.com/foomo/editor-prevnext/service/vo"
)

// DefaultExcludedTypes never get editor navigation.
var DefaultExcludedTypes = []string{vo.TypeAttachment, vo.TypeRevision, vo.TypeNavMenuItem}

// TypeFilter selects the content types a box is shown for. An empty Include
// list allows every type that is not excluded.
type TypeFilter struct {
	Include []string
	Exclude []string
}

func (f TypeFilter) Allows(itemType string) bool {
	for _, t := range f.Exclude {
		if t == itemType {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, t := range f.Include {
		if t == itemType {
			return true
		}
	}
	return false
}

type Callback func(ctx context.Context, page vo.PageContext) (render.Fragment, error)

// MetaBox is a widget shown on the editor screen.
type MetaBox struct {
	ID       string
	Title    string
	Context  string
	Priority string
	Types    TypeFilter
	Render   Callback
}

// Registry holds the boxes registered at startup. It is read-only afterwards.
type Registry struct {
	logger *zap.Logger
	boxes  []MetaBox
}

func NewRegistry(logger *zap.Logger, boxes ...MetaBox) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger: logger,
		boxes:  append([]MetaBox(nil), boxes...),
	}
}

// For returns the boxes registered for a content type.
func (r *Registry) For(itemType string) []MetaBox {
	var ret []MetaBox
	for _, box := range r.boxes {
		if box.Types.Allows(itemType) {
			ret = append(ret, box)
		}
	}
	return ret
}

// Active reports whether boxes are rendered for the page at all: only admin
// pages editing an existing item qualify.
func Active(page vo.PageContext) bool {
	return page.Admin && page.Screen == vo.ScreenEdit && page.ItemID.Valid()
}

// Compose renders every box eligible for the page and hands the fragments to
// the injector. Failing boxes are logged and skipped.
func (r *Registry) Compose(ctx context.Context, page vo.PageContext, injector inject.Injector) error {
	if !Active(page) {
		return nil
	}
	var errs []error
	for _, box := range r.For(page.Type) {
		fragment, err := box.Render(ctx, page)
		if err != nil {
			r.logger.Warn("failed to render meta box", zap.String("box", box.ID), zap.Int64("id", int64(page.ItemID)), zap.Error(err))
			continue
		}
		if err := injector(fragment); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NavigationBox is the prev/next navigation meta box.
func NavigationBox(svc service.Service, types TypeFilter) MetaBox {
	return MetaBox{
		ID:       "editorPrevNextNavigation",
		Title:    "Editor Navigation",
		Context:  "side",
		Priority: "default",
		Types:    types,
		Render: func(ctx context.Context, page vo.PageContext) (render.Fragment, error) {
			fragment, _ := svc.Fragment(ctx, page)
			return fragment, nil
		},
	}
}
