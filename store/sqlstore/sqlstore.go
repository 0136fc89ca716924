// Package sqlstore reads content items from a WordPress-style posts table.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/foomo/editor-prevnext/service/vo"
	"github.com/foomo/editor-prevnext/store"
)

const DefaultTablePrefix = "wp_"

var validTable = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string

	itemQuery     string
	parentQuery   string
	nextQuery     string
	previousQuery string
}

var _ store.Store = (*Store)(nil)

// Open opens a database with the dialect's driver. The driver has to be
// registered by the caller.
func Open(dialect Dialect, dsn, tablePrefix string) (*Store, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect.Name == SQLite.Name {
		// every sqlite connection to :memory: is its own database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	s, err := New(db, dialect, tablePrefix)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle.
func New(db *sql.DB, dialect Dialect, tablePrefix string) (*Store, error) {
	table := tablePrefix + "posts"
	if !validTable.MatchString(table) {
		return nil, fmt.Errorf("invalid table prefix %q", tablePrefix)
	}
	s := &Store{
		db:      db,
		dialect: dialect,
		table:   table,
	}
	s.itemQuery = dialect.Rebind(fmt.Sprintf(
		"SELECT ID, post_parent, post_type, post_status FROM %s WHERE ID = ?", table))
	s.parentQuery = dialect.Rebind(fmt.Sprintf(
		"SELECT post_parent FROM %s WHERE ID = ?", table))
	s.nextQuery = dialect.Rebind(fmt.Sprintf(
		"SELECT ID FROM %s WHERE ID > ? AND post_type = ? AND post_status = ? ORDER BY ID ASC LIMIT 1", table))
	s.previousQuery = dialect.Rebind(fmt.Sprintf(
		"SELECT ID FROM %s WHERE ID < ? AND post_type = ? AND post_status = ? ORDER BY ID DESC LIMIT 1", table))
	return s, nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the posts table with the columns this package reads.
// Real hosts own their schema; this is for standalone setups and tests.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		ID BIGINT NOT NULL PRIMARY KEY,
		post_parent BIGINT NOT NULL DEFAULT 0,
		post_type VARCHAR(20) NOT NULL DEFAULT 'post',
		post_status VARCHAR(20) NOT NULL DEFAULT 'publish'
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Insert adds items to the posts table.
func (s *Store) Insert(ctx context.Context, items ...vo.ContentItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	query := s.dialect.Rebind(fmt.Sprintf(
		"INSERT INTO %s (ID, post_parent, post_type, post_status) VALUES (?, ?, ?, ?)", s.table))
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query, int64(item.ID), int64(item.ParentID), item.Type, string(item.Status)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert item %d: %w", item.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

func (s *Store) Item(ctx context.Context, id vo.ItemID) (*vo.ContentItem, error) {
	var (
		item   vo.ContentItem
		parent sql.NullInt64
		status string
	)
	err := s.db.QueryRowContext(ctx, s.itemQuery, int64(id)).Scan(&item.ID, &parent, &item.Type, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	item.ParentID = vo.ItemID(parent.Int64)
	item.Status = vo.Status(status)
	return &item, nil
}

func (s *Store) Parent(ctx context.Context, id vo.ItemID) (vo.OptionalID, error) {
	var parent sql.NullInt64
	err := s.db.QueryRowContext(ctx, s.parentQuery, int64(id)).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return vo.None(), nil
	} else if err != nil {
		return vo.None(), fmt.Errorf("failed to load parent of %d: %w", id, err)
	}
	if parent.Int64 <= 0 {
		return vo.None(), nil
	}
	return vo.Some(vo.ItemID(parent.Int64)), nil
}

func (s *Store) Adjacent(ctx context.Context, id vo.ItemID, itemType string, status vo.Status, dir vo.Direction) (vo.OptionalID, error) {
	query := s.nextQuery
	if dir == vo.Backward {
		query = s.previousQuery
	}
	var adjacent int64
	err := s.db.QueryRowContext(ctx, query, int64(id), itemType, string(status)).Scan(&adjacent)
	if errors.Is(err, sql.ErrNoRows) {
		return vo.None(), nil
	} else if err != nil {
		return vo.None(), fmt.Errorf("failed to find %s item of %d: %w", dir, id, err)
	}
	return vo.Some(vo.ItemID(adjacent)), nil
}
