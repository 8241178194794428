package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func sampleResponse(s *domain.Sample) dto.SampleResponse {
	return dto.SampleResponse{
		ID:             s.ID,
		SampleID:       s.SampleCode,
		PatientName:    s.PatientName,
		SampleType:     s.SampleType,
		CollectionDate: s.CollectionDate.Format(dto.DateLayout),
		Priority:       s.Priority,
		Status:         s.Status,
		AssignedTo:     s.AssignedTo,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func testResponse(t *domain.LabTest) dto.TestResponse {
	return dto.TestResponse{
		ID:          t.ID,
		TestName:    t.Name,
		TestType:    t.Type,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func resultResponse(r *domain.TestResult) dto.ResultResponse {
	return dto.ResultResponse{
		ID:             r.ID,
		SampleID:       r.SampleID,
		TestID:         r.TestID,
		ResultValue:    r.Value,
		ResultUnit:     r.Unit,
		ReferenceRange: r.ReferenceRange,
		PerformedBy:    r.PerformedBy,
		PerformedAt:    r.PerformedAt,
		Status:         r.Status,
	}
}

func inventoryItemResponse(i *domain.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           i.ID,
		ItemName:     i.Name,
		ItemCode:     i.Code,
		Category:     i.Category,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		MinThreshold: i.MinThreshold,
		LowStock:     i.LowStock(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func transactionResponse(t *domain.InventoryTransaction) dto.InventoryTransactionResponse {
	return dto.InventoryTransactionResponse{
		ID:              t.ID,
		ItemID:          t.ItemID,
		QuantityChange:  t.QuantityChange,
		TransactionType: t.Type,
		Reason:          t.Reason,
		PerformedBy:     t.PerformedBy,
		PerformedAt:     t.PerformedAt,
	}
}

func callerID(c *fiber.Ctx) (int64, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return 0, apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	return identity.UserID, nil
}
