package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/events"
	"github.com/spec-kit/labtrack/internal/repository"
)

// InventoryItemInput describes a new stock item.
type InventoryItemInput struct {
	Name         string
	Code         string
	Category     domain.InventoryCategory
	Quantity     int
	Unit         string
	MinThreshold int
}

// InventoryService manages stock items and movements.
type InventoryService struct {
	items      repository.InventoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewInventoryService constructs the service.
func NewInventoryService(items repository.InventoryRepository, dispatcher events.Dispatcher, logger *zap.Logger) *InventoryService {
	return &InventoryService{items: items, dispatcher: dispatcher, logger: nopIfNil(logger)}
}

func (s *InventoryService) List(ctx context.Context, filter repository.InventoryFilter) ([]domain.InventoryItem, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "inventory item", 0)
	}
	return items, nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "inventory item", id)
	}
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, input InventoryItemInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		Name:         strings.TrimSpace(input.Name),
		Code:         strings.TrimSpace(input.Code),
		Category:     input.Category,
		Quantity:     input.Quantity,
		Unit:         strings.TrimSpace(input.Unit),
		MinThreshold: input.MinThreshold,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, mapRepoError(err, "inventory item", 0)
	}
	return item, nil
}

// Adjust moves stock by change and records the movement. Leaving the item at
// or below its threshold emits inventory_low_stock.
func (s *InventoryService) Adjust(ctx context.Context, actorID, id int64, change int, reason *string) (*domain.InventoryItem, error) {
	entry := &domain.InventoryTransaction{
		ItemID:         id,
		QuantityChange: change,
		Reason:         reason,
		PerformedBy:    actorID,
	}
	item, err := s.items.Adjust(ctx, entry)
	if err != nil {
		return nil, mapRepoError(err, "inventory item", id)
	}

	s.logger.Info("inventory adjusted",
		zap.Int64("item_id", item.ID),
		zap.Int("change", change),
		zap.String("type", string(entry.Type)),
		zap.Int("quantity", item.Quantity))

	if item.LowStock() {
		emit(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventInventoryLowStock, item.ID, actorID, events.InventoryLowStockPayload{
			ItemCode:     item.Code,
			ItemName:     item.Name,
			Quantity:     item.Quantity,
			MinThreshold: item.MinThreshold,
		}))
	}
	return item, nil
}

// Transactions returns the ledger of an existing item.
func (s *InventoryService) Transactions(ctx context.Context, id int64) ([]domain.InventoryTransaction, error) {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return nil, mapRepoError(err, "inventory item", id)
	}
	entries, err := s.items.ListTransactions(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "inventory item", id)
	}
	return entries, nil
}
