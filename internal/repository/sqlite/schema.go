package sqlite

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory_item (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	name                TEXT    NOT NULL,
	description         TEXT    NOT NULL DEFAULT '',
	quantity            INTEGER NOT NULL,
	unit_price          TEXT    NOT NULL,
	low_stock_threshold INTEGER NOT NULL,
	status              TEXT    NOT NULL DEFAULT 'normal',
	created_at          TEXT    NOT NULL,
	updated_at          TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_operation (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id        INTEGER NOT NULL REFERENCES inventory_item(id) ON DELETE CASCADE,
	operation_type TEXT    NOT NULL,
	quantity       INTEGER NOT NULL,
	operation_time TEXT    NOT NULL,
	notes          TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_inventory_operation_item ON inventory_operation(item_id);
`

// bootstrap creates missing tables and applies pending column migrations.
// Safe to run on every startup.
func (r *SQLiteRepository) bootstrap(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return r.migrateStatusColumn(ctx)
}

// migrateStatusColumn adds the status column to inventory_item tables created
// before the status state machine existed. Idempotent.
func (r *SQLiteRepository) migrateStatusColumn(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `PRAGMA table_info(inventory_item)`)
	if err != nil {
		return fmt.Errorf("inspect inventory_item columns: %w", err)
	}
	defer rows.Close()

	hasStatus := false
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("scan column info: %w", err)
		}
		if name == "status" {
			hasStatus = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate column info: %w", err)
	}

	if hasStatus {
		return nil
	}

	r.logger.Info("adding status column to inventory_item")
	if _, err := r.db.ExecContext(ctx,
		`ALTER TABLE inventory_item ADD COLUMN status TEXT NOT NULL DEFAULT 'normal'`); err != nil {
		return fmt.Errorf("add status column: %w", err)
	}
	return nil
}
