package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ErrConflict indicates a mutation raced with another writer and was aborted.
var ErrConflict = errors.New("concurrent modification")

// Repository defines the storage operations required by the inventory services.
type Repository interface {
	CreateItem(ctx context.Context, item models.InventoryItem) (int64, error)
	GetItem(ctx context.Context, id int64) (*models.InventoryItem, error)
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
	SearchItems(ctx context.Context, keyword string) ([]models.InventoryItem, error)
	LowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
	Mutate(ctx context.Context, id int64, apply func(item *models.InventoryItem) (*models.InventoryOperation, error)) (*models.InventoryItem, error)
	ListOperations(ctx context.Context, itemID int64) ([]models.InventoryOperation, error)
}

// SQLiteRepository implements Repository on a single-file SQLite database.
type SQLiteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens (or creates) the database at path, bootstraps the schema and runs
// pending migrations. The pool is capped at a single connection so that
// read-modify-write cycles on the same item are serialized by the store.
func New(ctx context.Context, path string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	r := &SQLiteRepository{db: db, logger: logger}
	if err := r.bootstrap(ctx); err != nil {
		return nil, err
	}

	logger.Info("sqlite repository ready", zap.String("path", path))
	return r, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const itemColumns = "id, name, description, quantity, unit_price, low_stock_threshold, status, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.InventoryItem, error) {
	var (
		item      models.InventoryItem
		price     string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity,
		&price, &item.LowStockThreshold, &item.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse unit price %q: %w", price, err)
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// CreateItem inserts a new item and returns its assigned identifier.
func (r *SQLiteRepository) CreateItem(ctx context.Context, item models.InventoryItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_item (name, description, quantity, unit_price, low_stock_threshold, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Quantity, item.UnitPrice.String(),
		item.LowStockThreshold, item.Status, formatTime(item.CreatedAt), formatTime(item.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted item id: %w", err)
	}
	return id, nil
}

// GetItem loads a single item by id.
func (r *SQLiteRepository) GetItem(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_item WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item %d: %w", id, err)
	}
	return item, nil
}

// ListItems returns every item ordered by identifier.
func (r *SQLiteRepository) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM inventory_item ORDER BY id`)
}

// SearchItems returns items whose name contains keyword as a substring,
// following SQLite LIKE collation (ASCII case-insensitive).
func (r *SQLiteRepository) SearchItems(ctx context.Context, keyword string) ([]models.InventoryItem, error) {
	return r.queryItems(ctx,
		`SELECT `+itemColumns+` FROM inventory_item WHERE name LIKE '%' || ? || '%' ORDER BY id`,
		keyword)
}

// LowStockItems returns items at or below their restock threshold, regardless
// of the cached status field.
func (r *SQLiteRepository) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return r.queryItems(ctx,
		`SELECT `+itemColumns+` FROM inventory_item WHERE quantity <= low_stock_threshold ORDER BY id`)
}

func (r *SQLiteRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// DeleteItem removes an item and its operation rows in one transaction, so
// the operation log never references a missing item.
func (r *SQLiteRepository) DeleteItem(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_operation WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("delete operations for item %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM inventory_item WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// Mutate runs a read-modify-write cycle on one item inside a single
// transaction. The apply callback adjusts the loaded item and returns the
// operation record to append, or nil for a plain edit; returning an error
// aborts the transaction with nothing persisted. The item update and the log
// append commit together or not at all.
func (r *SQLiteRepository) Mutate(ctx context.Context, id int64, apply func(item *models.InventoryItem) (*models.InventoryOperation, error)) (*models.InventoryItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_item WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item %d: %w", id, err)
	}

	prevQuantity := item.Quantity
	op, err := apply(item)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE inventory_item
		SET name = ?, description = ?, quantity = ?, unit_price = ?, low_stock_threshold = ?, status = ?, updated_at = ?
		WHERE id = ? AND quantity = ?`,
		item.Name, item.Description, item.Quantity, item.UnitPrice.String(),
		item.LowStockThreshold, item.Status, formatTime(item.UpdatedAt), id, prevQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, ErrConflict
	}

	if op != nil {
		insert, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_operation (item_id, operation_type, quantity, operation_time, notes)
			VALUES (?, ?, ?, ?, ?)`,
			op.ItemID, op.OperationType, op.Quantity, formatTime(op.OperationTime), op.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("append operation: %w", err)
		}
		if op.ID, err = insert.LastInsertId(); err != nil {
			return nil, fmt.Errorf("read inserted operation id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit operation: %w", err)
	}
	return item, nil
}

// ListOperations returns the recorded stock movements for an item, oldest
// first.
func (r *SQLiteRepository) ListOperations(ctx context.Context, itemID int64) ([]models.InventoryOperation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, operation_type, quantity, operation_time, notes
		FROM inventory_operation WHERE item_id = ? ORDER BY id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	ops := make([]models.InventoryOperation, 0)
	for rows.Next() {
		var (
			op    models.InventoryOperation
			stamp string
		)
		if err := rows.Scan(&op.ID, &op.ItemID, &op.OperationType, &op.Quantity, &stamp, &op.Notes); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		if op.OperationTime, err = parseTime(stamp); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return ops, nil
}
