package db

import (
	"embed"
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type dialect struct {
	name              string
	driverName        string
	schemaFile        string
	isUniqueViolation func(error) bool
}

var postgresDialect = dialect{
	name:       "postgres",
	driverName: "postgres",
	schemaFile: "migrations/postgres.sql",
	isUniqueViolation: func(err error) bool {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	},
}

var sqliteDialect = dialect{
	name:       "sqlite",
	driverName: "sqlite3",
	schemaFile: "migrations/sqlite.sql",
	isUniqueViolation: func(err error) bool {
		var sqErr sqlite3.Error
		if errors.As(err, &sqErr) {
			return sqErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
		}
		return false
	},
}
