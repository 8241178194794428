package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtrack/internal/domain"
)

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository builds the repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

const itemColumns = `id, item_name, item_code, category, quantity, unit, min_threshold, created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        INSERT INTO inventory_items (item_name, item_code, category, quantity, unit, min_threshold)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.Code,
		item.Category,
		item.Quantity,
		item.Unit,
		item.MinThreshold,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return translate(err)
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        UPDATE inventory_items SET item_name=$1, category=$2, unit=$3, min_threshold=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.Category,
		item.Unit,
		item.MinThreshold,
		item.ID,
	).Scan(&item.UpdatedAt)
	return translate(err)
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id=$1`
	return scanItem(r.pool.QueryRow(ctx, query, id))
}

func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]domain.InventoryItem, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.LowStockOnly {
		clauses = append(clauses, "quantity <= min_threshold")
	}
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Adjust locks the item row, applies the change and appends the ledger entry
// in one transaction.
func (r *inventoryRepository) Adjust(ctx context.Context, entry *domain.InventoryTransaction) (*domain.InventoryItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	item, err := scanItem(tx.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id=$1 FOR UPDATE`, entry.ItemID))
	if err != nil {
		return nil, err
	}
	if item.Quantity+entry.QuantityChange < 0 {
		return nil, ErrInsufficientStock
	}

	if err := tx.QueryRow(ctx, `
        UPDATE inventory_items SET quantity = quantity + $1, updated_at=NOW()
        WHERE id=$2
        RETURNING quantity, updated_at`,
		entry.QuantityChange, entry.ItemID,
	).Scan(&item.Quantity, &item.UpdatedAt); err != nil {
		return nil, translate(err)
	}

	entry.Type = domain.TransactionTypeFor(entry.QuantityChange)
	if err := tx.QueryRow(ctx, `
        INSERT INTO inventory_transactions (item_id, quantity_change, transaction_type, reason, performed_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, performed_at`,
		entry.ItemID,
		entry.QuantityChange,
		entry.Type,
		entry.Reason,
		entry.PerformedBy,
	).Scan(&entry.ID, &entry.PerformedAt); err != nil {
		return nil, translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepository) ListTransactions(ctx context.Context, itemID int64) ([]domain.InventoryTransaction, error) {
	const query = `
        SELECT id, item_id, quantity_change, transaction_type, reason, performed_by, performed_at
        FROM inventory_transactions WHERE item_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.InventoryTransaction
	for rows.Next() {
		var entry domain.InventoryTransaction
		if err := rows.Scan(
			&entry.ID,
			&entry.ItemID,
			&entry.QuantityChange,
			&entry.Type,
			&entry.Reason,
			&entry.PerformedBy,
			&entry.PerformedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE id=$1)`, itemID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
	}
	return entries, nil
}

func scanItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Code,
		&item.Category,
		&item.Quantity,
		&item.Unit,
		&item.MinThreshold,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}
