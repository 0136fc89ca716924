package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/foomo/editor-prevnext/service/vo"
)

// Memory is a Store backed by a sorted slice. It is used for tests and for
// hosts that hand over their content index at startup.
type Memory struct {
	mu    sync.RWMutex
	items []vo.ContentItem
}

func NewMemory(items ...vo.ContentItem) *Memory {
	m := &Memory{}
	m.Put(items...)
	return m
}

// Put inserts or replaces items.
func (m *Memory) Put(items ...vo.ContentItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		i := m.index(item.ID)
		if i < len(m.items) && m.items[i].ID == item.ID {
			m.items[i] = item
			continue
		}
		m.items = append(m.items, vo.ContentItem{})
		copy(m.items[i+1:], m.items[i:])
		m.items[i] = item
	}
}

// index returns the position of id or where it would be inserted.
func (m *Memory) index(id vo.ItemID) int {
	return sort.Search(len(m.items), func(i int) bool {
		return m.items[i].ID >= id
	})
}

func (m *Memory) Item(ctx context.Context, id vo.ItemID) (*vo.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.index(id)
	if i == len(m.items) || m.items[i].ID != id {
		return nil, ErrNotFound
	}
	item := m.items[i]
	return &item, nil
}

func (m *Memory) Parent(ctx context.Context, id vo.ItemID) (vo.OptionalID, error) {
	item, err := m.Item(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return vo.None(), nil
	} else if err != nil {
		return vo.None(), err
	}
	if !item.ParentID.Valid() {
		return vo.None(), nil
	}
	return vo.Some(item.ParentID), nil
}

func (m *Memory) Adjacent(ctx context.Context, id vo.ItemID, itemType string, status vo.Status, dir vo.Direction) (vo.OptionalID, error) {
	if err := ctx.Err(); err != nil {
		return vo.None(), err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	match := func(item vo.ContentItem) bool {
		return item.Type == itemType && item.Status == status
	}
	i := m.index(id)
	if dir == vo.Forward {
		if i < len(m.items) && m.items[i].ID == id {
			i++
		}
		for ; i < len(m.items); i++ {
			if match(m.items[i]) {
				return vo.Some(m.items[i].ID), nil
			}
		}
		return vo.None(), nil
	}
	for i--; i >= 0; i-- {
		if match(m.items[i]) {
			return vo.Some(m.items[i].ID), nil
		}
	}
	return vo.None(), nil
}
