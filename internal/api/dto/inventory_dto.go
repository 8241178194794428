package dto

import (
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// CreateInventoryItemRequest payload for POST /inventory.
type CreateInventoryItemRequest struct {
	ItemName     string                   `json:"item_name"`
	ItemCode     string                   `json:"item_code"`
	Category     domain.InventoryCategory `json:"category"`
	Quantity     int                      `json:"quantity"`
	Unit         string                   `json:"unit"`
	MinThreshold *int                     `json:"min_threshold"`
}

// DefaultMinThreshold applies when a new item omits min_threshold.
const DefaultMinThreshold = 10

func (r CreateInventoryItemRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if blank(r.ItemName) {
		fields.Add("item_name", "required")
	}
	if blank(r.ItemCode) {
		fields.Add("item_code", "required")
	}
	if !r.Category.Valid() {
		fields.Add("category", "must be one of consumables, equipment, reagents, supplies")
	}
	if r.Quantity < 0 {
		fields.Add("quantity", "must be zero or greater")
	}
	if blank(r.Unit) {
		fields.Add("unit", "required")
	}
	if r.MinThreshold != nil && *r.MinThreshold < 0 {
		fields.Add("min_threshold", "must be zero or greater")
	}
	return fields.Err()
}

// Threshold returns min_threshold or its default.
func (r CreateInventoryItemRequest) Threshold() int {
	if r.MinThreshold == nil {
		return DefaultMinThreshold
	}
	return *r.MinThreshold
}

// AdjustInventoryRequest payload for PUT /inventory/:id. quantity_change may
// also arrive as a query parameter.
type AdjustInventoryRequest struct {
	QuantityChange *int    `json:"quantity_change"`
	Reason         *string `json:"reason"`
}

func (r AdjustInventoryRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.QuantityChange == nil {
		fields.Add("quantity_change", "required")
	} else if *r.QuantityChange == 0 {
		fields.Add("quantity_change", "must not be zero")
	}
	return fields.Err()
}

// InventoryItemResponse is the public view of a stock item.
type InventoryItemResponse struct {
	ID           int64                    `json:"id"`
	ItemName     string                   `json:"item_name"`
	ItemCode     string                   `json:"item_code"`
	Category     domain.InventoryCategory `json:"category"`
	Quantity     int                      `json:"quantity"`
	Unit         string                   `json:"unit"`
	MinThreshold int                      `json:"min_threshold"`
	LowStock     bool                     `json:"low_stock"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// InventoryTransactionResponse is one ledger entry.
type InventoryTransactionResponse struct {
	ID              int64                  `json:"id"`
	ItemID          int64                  `json:"item_id"`
	QuantityChange  int                    `json:"quantity_change"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	Reason          *string                `json:"reason"`
	PerformedBy     int64                  `json:"performed_by"`
	PerformedAt     time.Time              `json:"performed_at"`
}
