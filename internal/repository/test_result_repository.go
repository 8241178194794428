package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtrack/internal/domain"
)

type testResultRepository struct {
	pool *pgxpool.Pool
}

// NewTestResultRepository builds the repository.
func NewTestResultRepository(pool *pgxpool.Pool) TestResultRepository {
	return &testResultRepository{pool: pool}
}

const resultColumns = `id, sample_id, test_id, result_value, result_unit, reference_range,
               performed_by, performed_at, status`

func (r *testResultRepository) Create(ctx context.Context, result *domain.TestResult) error {
	const query = `
        INSERT INTO test_results (sample_id, test_id, result_value, result_unit, reference_range, performed_by, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, performed_at`
	err := r.pool.QueryRow(ctx, query,
		result.SampleID,
		result.TestID,
		result.Value,
		result.Unit,
		result.ReferenceRange,
		result.PerformedBy,
		result.Status,
	).Scan(&result.ID, &result.PerformedAt)
	return translate(err)
}

func (r *testResultRepository) Update(ctx context.Context, result *domain.TestResult) error {
	const query = `
        UPDATE test_results SET result_value=$1, result_unit=$2, reference_range=$3, status=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		result.Value,
		result.Unit,
		result.ReferenceRange,
		result.Status,
		result.ID,
	)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *testResultRepository) GetByID(ctx context.Context, id int64) (*domain.TestResult, error) {
	query := `SELECT ` + resultColumns + ` FROM test_results WHERE id=$1`
	var result domain.TestResult
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.SampleID,
		&result.TestID,
		&result.Value,
		&result.Unit,
		&result.ReferenceRange,
		&result.PerformedBy,
		&result.PerformedAt,
		&result.Status,
	); err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

func (r *testResultRepository) List(ctx context.Context, filter ResultFilter) ([]domain.TestResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.SampleID != nil {
		args = append(args, *filter.SampleID)
		clauses = append(clauses, fmt.Sprintf("sample_id=$%d", len(args)))
	}
	if filter.TestID != nil {
		args = append(args, *filter.TestID)
		clauses = append(clauses, fmt.Sprintf("test_id=$%d", len(args)))
	}
	query := `SELECT ` + resultColumns + ` FROM test_results WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		var result domain.TestResult
		if err := rows.Scan(
			&result.ID,
			&result.SampleID,
			&result.TestID,
			&result.Value,
			&result.Unit,
			&result.ReferenceRange,
			&result.PerformedBy,
			&result.PerformedAt,
			&result.Status,
		); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
