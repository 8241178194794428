package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

type inventoryRepository struct {
	s *state
}

func (r *inventoryRepository) Create(_ context.Context, item *domain.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.items {
		if sameKey(existing.Code, item.Code) {
			return repository.ErrConflict
		}
	}
	r.s.itemSeq++
	now := r.s.timestamp()
	item.ID = r.s.itemSeq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.s.items[item.ID] = *item
	return nil
}

// Update changes descriptive fields only; quantity moves through Adjust.
func (r *inventoryRepository) Update(_ context.Context, item *domain.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.items[item.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Name = item.Name
	current.Category = item.Category
	current.Unit = item.Unit
	current.MinThreshold = item.MinThreshold
	current.UpdatedAt = r.s.timestamp()
	r.s.items[item.ID] = current
	*item = current
	return nil
}

func (r *inventoryRepository) GetByID(_ context.Context, id int64) (*domain.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *inventoryRepository) List(_ context.Context, filter repository.InventoryFilter) ([]domain.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(r.s.items))
	for _, item := range r.s.items {
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.LowStockOnly && !item.LowStock() {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *inventoryRepository) Adjust(_ context.Context, entry *domain.InventoryTransaction) (*domain.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[entry.ItemID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if item.Quantity+entry.QuantityChange < 0 {
		return nil, repository.ErrInsufficientStock
	}

	now := r.s.timestamp()
	item.Quantity += entry.QuantityChange
	item.UpdatedAt = now
	r.s.items[item.ID] = item

	r.s.ledgerSeq++
	entry.ID = r.s.ledgerSeq
	entry.Type = domain.TransactionTypeFor(entry.QuantityChange)
	entry.PerformedAt = now
	stored := *entry
	stored.Reason = cloneString(entry.Reason)
	r.s.ledger = append(r.s.ledger, stored)
	return &item, nil
}

func (r *inventoryRepository) ListTransactions(_ context.Context, itemID int64) ([]domain.InventoryTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.items[itemID]; !ok {
		return nil, repository.ErrNotFound
	}
	entries := []domain.InventoryTransaction{}
	for _, entry := range r.s.ledger {
		if entry.ItemID == itemID {
			entry.Reason = cloneString(entry.Reason)
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
