package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"geocache-router/internal/database"
	"geocache-router/internal/models"
)

type runRepository struct {
	store *Store
}

func (r *runRepository) List(ctx context.Context, limit, offset int) ([]models.Run, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int
	countQuery := `SELECT COUNT(*) FROM runs`
	if err := r.store.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query := `SELECT id, created_at, path, score, distance_meters, elevation_gain_meters,
	                 optimizer, output_file
	          FROM runs
	          ORDER BY created_at DESC, id DESC
	          LIMIT ? OFFSET ?`

	rows, err := r.store.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, total, nil
}

func (r *runRepository) GetByID(ctx context.Context, id int64) (*models.Run, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT id, created_at, path, score, distance_meters, elevation_gain_meters,
	                 optimizer, output_file
	          FROM runs WHERE id = ?`

	row := r.store.db.QueryRowContext(ctx, query, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

func (r *runRepository) Create(ctx context.Context, run *models.Run) (*models.Run, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `INSERT INTO runs (path, score, distance_meters, elevation_gain_meters, optimizer, output_file)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id, created_at`

	created := *run
	created.Path = run.Path.Clone()
	err := r.store.db.QueryRowContext(ctx, query,
		run.Path.Key(), run.Score, run.DistanceMeters, run.ElevationGainMeters,
		run.Optimizer, run.OutputFile,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return &created, nil
}

func (r *runRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res, err := r.store.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return database.ErrNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var run models.Run
	var pathKey string
	var outputFile sql.NullString

	err := s.Scan(
		&run.ID, &run.CreatedAt, &pathKey, &run.Score,
		&run.DistanceMeters, &run.ElevationGainMeters,
		&run.Optimizer, &outputFile,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if pathKey != "" {
		run.Path = models.Path(strings.Split(pathKey, ","))
	}
	if outputFile.Valid {
		run.OutputFile = outputFile.String
	}

	return &run, nil
}
