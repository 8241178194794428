package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtrack/internal/domain"
)

// Errors shared by every store implementation.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record conflicts with an existing one")
	ErrInsufficientStock = errors.New("adjustment would make quantity negative")
)

const uniqueViolation = "23505"

// SampleFilter narrows sample listings. Zero Limit means no limit.
type SampleFilter struct {
	Status        *domain.SampleStatus
	AssignedTo    *int64
	CollectedFrom *time.Time
	CollectedTo   *time.Time
	Limit         int
	Offset        int
}

// ResultFilter narrows test result listings.
type ResultFilter struct {
	SampleID *int64
	TestID   *int64
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Category     *domain.InventoryCategory
	LowStockOnly bool
}

// UserRepository defines persistence access for lab users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

// SampleRepository encapsulates sample persistence.
type SampleRepository interface {
	Create(ctx context.Context, sample *domain.Sample) error
	Update(ctx context.Context, sample *domain.Sample) error
	GetByID(ctx context.Context, id int64) (*domain.Sample, error)
	List(ctx context.Context, filter SampleFilter) ([]domain.Sample, error)
}

// LabTestRepository manages test definitions.
type LabTestRepository interface {
	Create(ctx context.Context, test *domain.LabTest) error
	Update(ctx context.Context, test *domain.LabTest) error
	GetByID(ctx context.Context, id int64) (*domain.LabTest, error)
	List(ctx context.Context) ([]domain.LabTest, error)
}

// TestResultRepository stores results recorded against samples.
type TestResultRepository interface {
	Create(ctx context.Context, result *domain.TestResult) error
	Update(ctx context.Context, result *domain.TestResult) error
	GetByID(ctx context.Context, id int64) (*domain.TestResult, error)
	List(ctx context.Context, filter ResultFilter) ([]domain.TestResult, error)
}

// InventoryRepository manages stock items and their ledger. Adjust changes
// the quantity and appends the ledger entry atomically.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	List(ctx context.Context, filter InventoryFilter) ([]domain.InventoryItem, error)
	Adjust(ctx context.Context, tx *domain.InventoryTransaction) (*domain.InventoryItem, error)
	ListTransactions(ctx context.Context, itemID int64) ([]domain.InventoryTransaction, error)
}

// Store bundles every repository behind one record store.
type Store struct {
	Users     UserRepository
	Samples   SampleRepository
	Tests     LabTestRepository
	Results   TestResultRepository
	Inventory InventoryRepository
}

// NewPostgresStore returns pgx-backed repositories sharing one pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:     NewUserRepository(pool),
		Samples:   NewSampleRepository(pool),
		Tests:     NewLabTestRepository(pool),
		Results:   NewTestResultRepository(pool),
		Inventory: NewInventoryRepository(pool),
	}
}

// translate maps driver errors onto the shared repository errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
