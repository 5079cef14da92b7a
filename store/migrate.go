package store

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/ctdp-app/ctdp/store/migrations"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrate applies the embedded schema migrations for the given dialect.
func migrate(ctx context.Context, db *sql.DB, d dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.gooseDialect); err != nil {
		return err
	}

	return gooseUpContext(ctx, db, ".")
}
