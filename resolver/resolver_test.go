package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foomo/editor-prevnext/service/vo"
	"github.com/foomo/editor-prevnext/store"
)

func newTestResolver(t *testing.T, s store.Store, opts ...Option) *Resolver {
	t.Helper()
	return New(s, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func scenarioStore() *store.Memory {
	return store.NewMemory(
		vo.ContentItem{ID: 1, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 2, Type: vo.TypePost, Status: vo.StatusDraft},
		vo.ContentItem{ID: 3, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 4, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 5, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 8, Type: vo.TypePage, Status: vo.StatusPublish},
		vo.ContentItem{ID: 9, ParentID: 3, Type: vo.TypeRevision, Status: vo.StatusInherit},
		vo.ContentItem{ID: 10, ParentID: 9, Type: vo.TypeRevision, Status: vo.StatusInherit},
		vo.ContentItem{ID: 20, ParentID: 21, Type: vo.TypeRevision, Status: vo.StatusInherit},
		vo.ContentItem{ID: 21, ParentID: 20, Type: vo.TypeRevision, Status: vo.StatusInherit},
	)
}

func TestCanonicalize(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, scenarioStore())

	assert.Equal(t, vo.ItemID(3), r.Canonicalize(ctx, 3), "top-level item")
	assert.Equal(t, vo.ItemID(3), r.Canonicalize(ctx, 9), "revision")
	assert.Equal(t, vo.ItemID(3), r.Canonicalize(ctx, 10), "revision of a revision")
	assert.Equal(t, vo.ItemID(42), r.Canonicalize(ctx, 42), "unknown item")
	assert.Equal(t, vo.ItemID(20), r.Canonicalize(ctx, 20), "cycle")

	for _, id := range []vo.ItemID{1, 3, 9, 10, 20, 42} {
		once := r.Canonicalize(ctx, id)
		assert.Equal(t, once, r.Canonicalize(ctx, once), "idempotent for %d", id)
	}
}

func TestCanonicalizeDepthLimit(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, scenarioStore(), WithMaxParentDepth(1))

	// 9 -> 3 is a single link
	assert.Equal(t, vo.ItemID(3), r.Canonicalize(ctx, 9))
	// 10 -> 9 -> 3 exceeds the limit and keeps the original id instead of
	// stopping halfway at 9
	assert.Equal(t, vo.ItemID(10), r.Canonicalize(ctx, 10))
	assert.NotEqual(t, vo.ItemID(9), r.Canonicalize(ctx, 10))

	// the default depth follows the whole chain
	assert.Equal(t, vo.ItemID(3), newTestResolver(t, scenarioStore()).Canonicalize(ctx, 10))
}

func TestFindAdjacent(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, scenarioStore())

	assert.Equal(t, vo.Some(4), r.FindNext(ctx, 3, vo.TypePost))
	assert.Equal(t, vo.Some(1), r.FindPrevious(ctx, 3, vo.TypePost))
	assert.Equal(t, vo.None(), r.FindNext(ctx, 5, vo.TypePost))
	assert.Equal(t, vo.None(), r.FindPrevious(ctx, 1, vo.TypePost))
	assert.Equal(t, vo.None(), r.FindPrevious(ctx, 8, vo.TypePage))
}

func TestFindAdjacentProperties(t *testing.T) {
	ctx := context.Background()
	s := scenarioStore()
	r := newTestResolver(t, s)

	for id := vo.ItemID(0); id <= 12; id++ {
		for _, itemType := range []string{vo.TypePost, vo.TypePage} {
			if next, ok := r.FindNext(ctx, id, itemType).Get(); ok {
				item, err := s.Item(ctx, next)
				require.NoError(t, err)
				assert.Greater(t, next, id)
				assert.Equal(t, itemType, item.Type)
				assert.Equal(t, vo.StatusPublish, item.Status)
			}
			if prev, ok := r.FindPrevious(ctx, id, itemType).Get(); ok {
				item, err := s.Item(ctx, prev)
				require.NoError(t, err)
				assert.Less(t, prev, id)
				assert.Equal(t, itemType, item.Type)
				assert.Equal(t, vo.StatusPublish, item.Status)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, scenarioStore())

	nav := r.Resolve(ctx, vo.PageContext{ItemID: 3})
	assert.Equal(t, vo.Navigation{
		Current:  3,
		Type:     vo.TypePost,
		Previous: vo.Some(1),
		Next:     vo.Some(4),
	}, nav, spew.Sdump(nav))

	// a revision is looked up with the type given by the host
	nav = r.Resolve(ctx, vo.PageContext{ItemID: 9, Type: vo.TypePost})
	assert.Equal(t, vo.ItemID(3), nav.Current)
	assert.Equal(t, vo.Some(4), nav.Next)

	// without a type the revision navigates within its parent's type
	for _, id := range []vo.ItemID{9, 10} {
		nav = r.Resolve(ctx, vo.PageContext{ItemID: id})
		assert.Equal(t, vo.Navigation{
			Current:  3,
			Type:     vo.TypePost,
			Previous: vo.Some(1),
			Next:     vo.Some(4),
		}, nav, spew.Sdump(nav))
	}

	// unknown items fall back to posts
	nav = r.Resolve(ctx, vo.PageContext{ItemID: 100})
	assert.Equal(t, vo.TypePost, nav.Type)
	assert.Equal(t, vo.Some(5), nav.Previous)
	assert.False(t, nav.Next.Present())
}

type failingStore struct{}

var errUnavailable = errors.New("store unavailable")

func (failingStore) Item(context.Context, vo.ItemID) (*vo.ContentItem, error) {
	return nil, errUnavailable
}

func (failingStore) Parent(context.Context, vo.ItemID) (vo.OptionalID, error) {
	return vo.None(), errUnavailable
}

func (failingStore) Adjacent(context.Context, vo.ItemID, string, vo.Status, vo.Direction) (vo.OptionalID, error) {
	return vo.None(), errUnavailable
}

func TestResolveDegradesOnStoreErrors(t *testing.T) {
	r := newTestResolver(t, failingStore{})

	nav := r.Resolve(context.Background(), vo.PageContext{ItemID: 7})
	assert.Equal(t, vo.Navigation{Current: 7, Type: vo.TypePost}, nav)
}

type reversedStore struct {
	store.Store
}

func (reversedStore) Adjacent(_ context.Context, id vo.ItemID, _ string, _ vo.Status, _ vo.Direction) (vo.OptionalID, error) {
	return vo.Some(id), nil
}

func TestAdjacentOrderingGuard(t *testing.T) {
	r := newTestResolver(t, reversedStore{Store: scenarioStore()})

	assert.False(t, r.FindNext(context.Background(), 3, vo.TypePost).Present())
	assert.False(t, r.FindPrevious(context.Background(), 3, vo.TypePost).Present())
}
