package vo

import (
	"encoding/json"
	"strconv"
)

type Markdown string

// ItemID identifies a content item. Valid identifiers are positive.
type ItemID int64

func (id ItemID) Valid() bool {
	return id > 0
}

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID is an ItemID that may be absent.
type OptionalID struct {
	id ItemID
	ok bool
}

func Some(id ItemID) OptionalID {
	return OptionalID{id: id, ok: true}
}

func None() OptionalID {
	return OptionalID{}
}

// Get returns the identifier and whether it is present.
func (o OptionalID) Get() (ItemID, bool) {
	return o.id, o.ok
}

func (o OptionalID) Present() bool {
	return o.ok
}

func (o OptionalID) String() string {
	if !o.ok {
		return "none"
	}
	return o.id.String()
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(int64(o.id))
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if !ItemID(id).Valid() {
		*o = None()
		return nil
	}
	*o = Some(ItemID(id))
	return nil
}

type Status string

const (
	StatusPublish   Status = "publish"
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPrivate   Status = "private"
	StatusFuture    Status = "future"
	StatusTrash     Status = "trash"
	StatusInherit   Status = "inherit"
	StatusAutoDraft Status = "auto-draft"
)

// Direction of an adjacency lookup by identifier order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Built-in content types of the host.
const (
	TypePost        = "post"
	TypePage        = "page"
	TypeAttachment  = "attachment"
	TypeRevision    = "revision"
	TypeNavMenuItem = "nav_menu_item"
)

// ScreenEdit is the admin screen of an existing item's editor.
const ScreenEdit = "edit"

type ContentItem struct {
	ID       ItemID `json:"id"`
	ParentID ItemID `json:"parentId"` // 0 for top-level items
	Type     string `json:"type"`
	Status   Status `json:"status"`
}

type Navigation struct {
	Current  ItemID     `json:"current"`
	Type     string     `json:"type"`
	Previous OptionalID `json:"previous"`
	Next     OptionalID `json:"next"`
}

// PageContext is what the host knows about the page being rendered.
type PageContext struct {
	ItemID ItemID `json:"itemId"`
	Type   string `json:"type,omitempty"`
	Screen string `json:"screen,omitempty"`
	Admin  bool   `json:"admin"`
}

type NavigationDocument struct {
	Navigation Navigation `json:"navigation"`
	HTML       string     `json:"html"`
	Markdown   Markdown   `json:"markdown,omitempty"`
}
