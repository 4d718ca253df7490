package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"netflow/pkg/database"
	"netflow/pkg/telemetry"
)

// PostgresRunRepository PostgreSQL реализация
type PostgresRunRepository struct {
	db database.DB
}

// NewPostgresRunRepository создаёт новый репозиторий
func NewPostgresRunRepository(db database.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

func (r *PostgresRunRepository) Create(ctx context.Context, run *Run) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresRunRepository.Create")
	defer span.End()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO runs (
			id, input_name, algorithm, max_flow, iterations,
			node_count, edge_count, computation_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		run.ID,
		run.InputName,
		run.Algorithm,
		run.MaxFlow,
		run.Iterations,
		run.NodeCount,
		run.EdgeCount,
		run.ComputationTimeMs,
	).Scan(&run.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

func (r *PostgresRunRepository) GetByID(ctx context.Context, id string) (*Run, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresRunRepository.GetByID")
	defer span.End()

	query := `
		SELECT
			id, input_name, algorithm, max_flow, iterations,
			node_count, edge_count, computation_time_ms, created_at
		FROM runs
		WHERE id = $1
	`

	run := &Run{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.InputName,
		&run.Algorithm,
		&run.MaxFlow,
		&run.Iterations,
		&run.NodeCount,
		&run.EdgeCount,
		&run.ComputationTimeMs,
		&run.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

func (r *PostgresRunRepository) List(ctx context.Context, limit, offset int) ([]*Run, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresRunRepository.List")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query := `
		SELECT
			id, input_name, algorithm, max_flow, iterations,
			node_count, edge_count, computation_time_ms, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []*Run
	for rows.Next() {
		run := &Run{}
		err := rows.Scan(
			&run.ID,
			&run.InputName,
			&run.Algorithm,
			&run.MaxFlow,
			&run.Iterations,
			&run.NodeCount,
			&run.EdgeCount,
			&run.ComputationTimeMs,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		results = append(results, run)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, total, nil
}

func (r *PostgresRunRepository) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresRunRepository.Delete")
	defer span.End()

	result, err := r.db.Exec(ctx, `DELETE FROM runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRunNotFound
	}

	return nil
}

func (r *PostgresRunRepository) Stats(ctx context.Context) (*RunStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresRunRepository.Stats")
	defer span.End()

	stats := &RunStats{
		RunsByInput: make(map[string]int),
	}

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(max_flow), 0),
			COALESCE(AVG(computation_time_ms), 0)
		FROM runs
	`).Scan(
		&stats.TotalRuns,
		&stats.AverageMaxFlow,
		&stats.AverageComputationTimeMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT input_name, COUNT(*)
		FROM runs
		GROUP BY input_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get input stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var input string
		var count int
		if err := rows.Scan(&input, &count); err != nil {
			return nil, fmt.Errorf("failed to scan input stats: %w", err)
		}
		stats.RunsByInput[input] = count
	}

	return stats, nil
}
