package sqlstore

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Dialect describes the differences between the supported SQL databases.
type Dialect struct {
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Bind is the sqlx placeholder style, sqlx.QUESTION or sqlx.DOLLAR.
	Bind int
}

var (
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite", Bind: sqlx.QUESTION}
	MySQL    = Dialect{Name: "mysql", Driver: "mysql", Bind: sqlx.QUESTION}
	Postgres = Dialect{Name: "postgres", Driver: "postgres", Bind: sqlx.DOLLAR}
)

func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
}

// Rebind rewrites ? placeholders into the dialect's placeholder style.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.Bind, query)
}
