package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func TestUsers_CreateAssignsIDsAndRejectsDuplicateEmail(t *testing.T) {
	store := NewStore(WithClock(fixedClock))
	ctx := context.Background()

	first := &domain.User{Email: "admin@labtrack.com", Role: domain.RoleAdmin}
	if err := store.Users.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := &domain.User{Email: "tech@labtrack.com", Role: domain.RoleTechnician}
	if err := store.Users.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(fixedClock()) {
		t.Errorf("CreatedAt = %v", first.CreatedAt)
	}

	dup := &domain.User{Email: "ADMIN@labtrack.com"}
	if err := store.Users.Create(ctx, dup); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}

	got, err := store.Users.GetByEmail(ctx, "Tech@LabTrack.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("GetByEmail() id = %d, want %d", got.ID, second.ID)
	}

	count, _ := store.Users.Count(ctx)
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestUsers_UpdateConflictAndNotFound(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	a := &domain.User{Email: "a@labtrack.com"}
	b := &domain.User{Email: "b@labtrack.com"}
	_ = store.Users.Create(ctx, a)
	_ = store.Users.Create(ctx, b)

	b.Email = "a@labtrack.com"
	if err := store.Users.Update(ctx, b); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Update() error = %v, want ErrConflict", err)
	}
	if err := store.Users.Update(ctx, &domain.User{ID: 99}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestSamples_ListFiltersAndPages(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	tech := int64(2)

	for i, code := range []string{"S1", "S2", "S3", "S4"} {
		sample := &domain.Sample{
			SampleCode:     code,
			Status:         domain.SampleStatusPending,
			CollectionDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		if i%2 == 1 {
			sample.AssignedTo = &tech
			sample.Status = domain.SampleStatusInProgress
		}
		if err := store.Samples.Create(ctx, sample); err != nil {
			t.Fatalf("Create(%s) error = %v", code, err)
		}
	}

	pending := domain.SampleStatusPending
	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		filter repository.SampleFilter
		want   []string
	}{
		{"all", repository.SampleFilter{}, []string{"S1", "S2", "S3", "S4"}},
		{"status", repository.SampleFilter{Status: &pending}, []string{"S1", "S3"}},
		{"assigned", repository.SampleFilter{AssignedTo: &tech}, []string{"S2", "S4"}},
		{"collected from", repository.SampleFilter{CollectedFrom: &from}, []string{"S2", "S3", "S4"}},
		{"page", repository.SampleFilter{Offset: 1, Limit: 2}, []string{"S2", "S3"}},
		{"offset past end", repository.SampleFilter{Offset: 10}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Samples.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d samples, want %d", len(got), len(tt.want))
			}
			for i, sample := range got {
				if sample.SampleCode != tt.want[i] {
					t.Errorf("sample[%d] = %s, want %s", i, sample.SampleCode, tt.want[i])
				}
			}
		})
	}
}

func TestSamples_ReturnedValuesAreCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	tech := int64(5)
	sample := &domain.Sample{SampleCode: "S1", AssignedTo: &tech}
	_ = store.Samples.Create(ctx, sample)

	got, _ := store.Samples.GetByID(ctx, sample.ID)
	*got.AssignedTo = 42
	got.PatientName = "mutated"

	again, _ := store.Samples.GetByID(ctx, sample.ID)
	if *again.AssignedTo != 5 || again.PatientName != "" {
		t.Errorf("stored sample was mutated through a returned copy: %+v", again)
	}
}

func TestInventory_AdjustRecordsLedger(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	item := &domain.InventoryItem{Code: "RG-1", Quantity: 10, MinThreshold: 5}
	if err := store.Inventory.Create(ctx, item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reason := "daily run"
	entry := &domain.InventoryTransaction{ItemID: item.ID, QuantityChange: -6, Reason: &reason, PerformedBy: 3}
	updated, err := store.Inventory.Adjust(ctx, entry)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if updated.Quantity != 4 || !updated.LowStock() {
		t.Errorf("quantity = %d, low stock = %v", updated.Quantity, updated.LowStock())
	}
	if entry.ID != 1 || entry.Type != domain.TransactionOutward {
		t.Errorf("ledger entry = %+v", entry)
	}

	_, err = store.Inventory.Adjust(ctx, &domain.InventoryTransaction{ItemID: item.ID, QuantityChange: -5})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Errorf("over-withdrawal error = %v, want ErrInsufficientStock", err)
	}

	ledger, err := store.Inventory.ListTransactions(ctx, item.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(ledger) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(ledger))
	}

	low, _ := store.Inventory.List(ctx, repository.InventoryFilter{LowStockOnly: true})
	if len(low) != 1 {
		t.Errorf("low stock items = %d, want 1", len(low))
	}

	if _, err := store.Inventory.Adjust(ctx, &domain.InventoryTransaction{ItemID: 99, QuantityChange: 1}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown item error = %v, want ErrNotFound", err)
	}
}

func TestInventory_ConcurrentAdjustNeverGoesNegative(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	item := &domain.InventoryItem{Code: "CN-1", Quantity: 50}
	_ = store.Inventory.Create(ctx, item)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Inventory.Adjust(ctx, &domain.InventoryTransaction{ItemID: item.ID, QuantityChange: -1})
		}()
	}
	wg.Wait()

	got, _ := store.Inventory.GetByID(ctx, item.ID)
	if got.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", got.Quantity)
	}
	ledger, _ := store.Inventory.ListTransactions(ctx, item.ID)
	if len(ledger) != 50 {
		t.Errorf("ledger entries = %d, want 50", len(ledger))
	}
}

func TestResults_UpdateKeepsIdentityColumns(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	result := &domain.TestResult{SampleID: 1, TestID: 2, Value: "4.5", PerformedBy: 7, Status: domain.ResultStatusCompleted}
	_ = store.Results.Create(ctx, result)

	update := &domain.TestResult{ID: result.ID, SampleID: 9, Value: "5.0", Status: "amended"}
	if err := store.Results.Update(ctx, update); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := store.Results.GetByID(ctx, result.ID)
	if got.SampleID != 1 || got.PerformedBy != 7 || got.Value != "5.0" {
		t.Errorf("result after update = %+v", got)
	}

	sampleID := int64(1)
	list, _ := store.Results.List(ctx, repository.ResultFilter{SampleID: &sampleID})
	if len(list) != 1 {
		t.Errorf("List() = %d results, want 1", len(list))
	}
}
