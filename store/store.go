package store

import (
	"context"
	"errors"

	"github.com/foomo/editor-prevnext/service/vo"
)

var ErrNotFound = errors.New("content item not found")

// Store is the read side of the host's content tables.
type Store interface {
	// Item returns the item with the given id or ErrNotFound.
	Item(ctx context.Context, id vo.ItemID) (*vo.ContentItem, error)
	// Parent returns the parent id of a revision. Top-level and unknown
	// items have no parent.
	Parent(ctx context.Context, id vo.ItemID) (vo.OptionalID, error)
	// Adjacent returns the nearest item of the given type and status with an
	// id strictly greater (Forward) or strictly less (Backward) than id.
	Adjacent(ctx context.Context, id vo.ItemID, itemType string, status vo.Status, dir vo.Direction) (vo.OptionalID, error)
}
