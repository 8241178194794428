package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtrack/internal/domain"
)

type labTestRepository struct {
	pool *pgxpool.Pool
}

// NewLabTestRepository builds the repository.
func NewLabTestRepository(pool *pgxpool.Pool) LabTestRepository {
	return &labTestRepository{pool: pool}
}

func (r *labTestRepository) Create(ctx context.Context, test *domain.LabTest) error {
	const query = `
        INSERT INTO lab_tests (test_name, test_type, description)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		test.Name,
		test.Type,
		test.Description,
	).Scan(&test.ID, &test.CreatedAt)
	return translate(err)
}

func (r *labTestRepository) Update(ctx context.Context, test *domain.LabTest) error {
	const query = `
        UPDATE lab_tests SET test_name=$1, test_type=$2, description=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		test.Name,
		test.Type,
		test.Description,
		test.ID,
	)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *labTestRepository) GetByID(ctx context.Context, id int64) (*domain.LabTest, error) {
	const query = `
        SELECT id, test_name, test_type, description, created_at
        FROM lab_tests WHERE id=$1`
	var test domain.LabTest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&test.ID,
		&test.Name,
		&test.Type,
		&test.Description,
		&test.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &test, nil
}

func (r *labTestRepository) List(ctx context.Context) ([]domain.LabTest, error) {
	const query = `
        SELECT id, test_name, test_type, description, created_at
        FROM lab_tests ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LabTest
	for rows.Next() {
		var test domain.LabTest
		if err := rows.Scan(&test.ID, &test.Name, &test.Type, &test.Description, &test.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, test)
	}
	return result, rows.Err()
}
