// Package resolver finds the published neighbours of a content item.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/service/vo"
	"github.com/foomo/editor-prevnext/store"
)

const (
	DefaultMaxParentDepth = 8
	DefaultItemType       = vo.TypePost
)

type Resolver struct {
	store          store.Store
	logger         *zap.Logger
	maxParentDepth int
	status         vo.Status
}

type Option func(r *Resolver)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMaxParentDepth limits how many parent links Canonicalize follows.
// Chains longer than the limit resolve to the original id, so with a depth
// of 1 only items whose parent has no parent of its own are mapped.
func WithMaxParentDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxParentDepth = depth
		}
	}
}

// WithStatus changes the status items need to be navigable.
func WithStatus(status vo.Status) Option {
	return func(r *Resolver) {
		if status != "" {
			r.status = status
		}
	}
}

func New(s store.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:          s,
		logger:         zap.NewNop(),
		maxParentDepth: DefaultMaxParentDepth,
		status:         vo.StatusPublish,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Canonicalize maps a revision to the item it belongs to. Unknown ids,
// store failures, parent cycles and chains deeper than the depth limit all
// resolve to id itself.
func (r *Resolver) Canonicalize(ctx context.Context, id vo.ItemID) vo.ItemID {
	current := id
	seen := map[vo.ItemID]struct{}{id: {}}
	for depth := 0; ; depth++ {
		parent, err := r.store.Parent(ctx, current)
		if err != nil {
			r.logger.Warn("parent lookup failed", zap.Int64("id", int64(current)), zap.Error(err))
			return current
		}
		parentID, ok := parent.Get()
		if !ok {
			return current
		}
		if depth == r.maxParentDepth {
			r.logger.Warn("parent chain too deep", zap.Int64("id", int64(id)), zap.Int("maxDepth", r.maxParentDepth))
			return id
		}
		if _, cycle := seen[parentID]; cycle {
			r.logger.Warn("parent cycle", zap.Int64("id", int64(id)), zap.Int64("parent", int64(parentID)))
			return id
		}
		seen[parentID] = struct{}{}
		current = parentID
	}
}

func (r *Resolver) FindNext(ctx context.Context, id vo.ItemID, itemType string) vo.OptionalID {
	return r.adjacent(ctx, id, itemType, vo.Forward)
}

func (r *Resolver) FindPrevious(ctx context.Context, id vo.ItemID, itemType string) vo.OptionalID {
	return r.adjacent(ctx, id, itemType, vo.Backward)
}

func (r *Resolver) adjacent(ctx context.Context, id vo.ItemID, itemType string, dir vo.Direction) vo.OptionalID {
	found, err := r.store.Adjacent(ctx, id, itemType, r.status, dir)
	if err != nil {
		r.logger.Warn("adjacent lookup failed",
			zap.Int64("id", int64(id)),
			zap.String("type", itemType),
			zap.Stringer("direction", dir),
			zap.Error(err),
		)
		return vo.None()
	}
	// guard against stores that do not honour the strict ordering
	if adjacent, ok := found.Get(); ok {
		if (dir == vo.Forward && adjacent <= id) || (dir == vo.Backward && adjacent >= id) {
			return vo.None()
		}
	}
	return found
}

// ItemType returns the type of the item or DefaultItemType if it is unknown.
func (r *Resolver) ItemType(ctx context.Context, id vo.ItemID) string {
	item, err := r.store.Item(ctx, id)
	if err != nil || item.Type == "" {
		return DefaultItemType
	}
	return item.Type
}

// Resolve computes the navigation for the item shown on a page.
func (r *Resolver) Resolve(ctx context.Context, page vo.PageContext) vo.Navigation {
	current := r.Canonicalize(ctx, page.ItemID)
	itemType := page.Type
	if itemType == "" {
		// neighbours share the type of the canonical item, never "revision"
		itemType = r.ItemType(ctx, current)
	}
	return vo.Navigation{
		Current:  current,
		Type:     itemType,
		Previous: r.FindPrevious(ctx, current, itemType),
		Next:     r.FindNext(ctx, current, itemType),
	}
}
