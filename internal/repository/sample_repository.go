package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtrack/internal/domain"
)

type sampleRepository struct {
	pool *pgxpool.Pool
}

// NewSampleRepository instantiates repository.
func NewSampleRepository(pool *pgxpool.Pool) SampleRepository {
	return &sampleRepository{pool: pool}
}

const sampleColumns = `id, sample_code, patient_name, sample_type, collection_date, priority, status,
               assigned_to, created_at, updated_at`

func (r *sampleRepository) Create(ctx context.Context, sample *domain.Sample) error {
	const query = `
        INSERT INTO samples (sample_code, patient_name, sample_type, collection_date, priority, status, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		sample.SampleCode,
		sample.PatientName,
		sample.SampleType,
		sample.CollectionDate,
		sample.Priority,
		sample.Status,
		sample.AssignedTo,
	).Scan(&sample.ID, &sample.CreatedAt, &sample.UpdatedAt)
	return translate(err)
}

func (r *sampleRepository) Update(ctx context.Context, sample *domain.Sample) error {
	const query = `
        UPDATE samples SET patient_name=$1, sample_type=$2, collection_date=$3, priority=$4,
            status=$5, assigned_to=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		sample.PatientName,
		sample.SampleType,
		sample.CollectionDate,
		sample.Priority,
		sample.Status,
		sample.AssignedTo,
		sample.ID,
	).Scan(&sample.UpdatedAt)
	return translate(err)
}

func (r *sampleRepository) GetByID(ctx context.Context, id int64) (*domain.Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE id=$1`
	var sample domain.Sample
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sample.ID,
		&sample.SampleCode,
		&sample.PatientName,
		&sample.SampleType,
		&sample.CollectionDate,
		&sample.Priority,
		&sample.Status,
		&sample.AssignedTo,
		&sample.CreatedAt,
		&sample.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &sample, nil
}

func (r *sampleRepository) List(ctx context.Context, filter SampleFilter) ([]domain.Sample, error) {
	base := `SELECT ` + sampleColumns + ` FROM samples`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.CollectedFrom != nil {
		args = append(args, *filter.CollectedFrom)
		clauses = append(clauses, fmt.Sprintf("collection_date >= $%d", len(args)))
	}
	if filter.CollectedTo != nil {
		args = append(args, *filter.CollectedTo)
		clauses = append(clauses, fmt.Sprintf("collection_date <= $%d", len(args)))
	}

	query := base + " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sample
	for rows.Next() {
		var sample domain.Sample
		if err := rows.Scan(
			&sample.ID,
			&sample.SampleCode,
			&sample.PatientName,
			&sample.SampleType,
			&sample.CollectionDate,
			&sample.Priority,
			&sample.Status,
			&sample.AssignedTo,
			&sample.CreatedAt,
			&sample.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}
