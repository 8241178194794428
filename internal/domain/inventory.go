package domain

import "time"

// InventoryCategory groups stock items.
type InventoryCategory string

const (
	InventoryCategoryConsumables InventoryCategory = "consumables"
	InventoryCategoryEquipment   InventoryCategory = "equipment"
	InventoryCategoryReagents    InventoryCategory = "reagents"
	InventoryCategorySupplies    InventoryCategory = "supplies"
)

// Valid reports whether c is a known category.
func (c InventoryCategory) Valid() bool {
	switch c {
	case InventoryCategoryConsumables, InventoryCategoryEquipment, InventoryCategoryReagents, InventoryCategorySupplies:
		return true
	}
	return false
}

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TransactionInward  TransactionType = "inward"
	TransactionOutward TransactionType = "outward"
)

// TransactionTypeFor derives the direction from a signed quantity change.
func TransactionTypeFor(change int) TransactionType {
	if change < 0 {
		return TransactionOutward
	}
	return TransactionInward
}

// InventoryItem is a stocked consumable, reagent or piece of equipment.
type InventoryItem struct {
	ID           int64
	Name         string
	Code         string
	Category     InventoryCategory
	Quantity     int
	Unit         string
	MinThreshold int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock reports whether the item is at or below its threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// InventoryTransaction is an immutable stock ledger entry.
type InventoryTransaction struct {
	ID             int64
	ItemID         int64
	QuantityChange int
	Type           TransactionType
	Reason         *string
	PerformedBy    int64
	PerformedAt    time.Time
}
