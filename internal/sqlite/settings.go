package sqlite

import (
	"context"
	"fmt"

	"geocache-router/internal/models"
)

type settingsRepository struct {
	store *Store
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query := `SELECT hiking_speed_kmh, time_budget_hours, max_elevation_gain_meters,
	                 window_size, window_stride
	          FROM settings WHERE id = 1`

	var s models.Settings
	err := r.store.db.QueryRowContext(ctx, query).Scan(
		&s.HikingSpeedKmh, &s.TimeBudgetHours, &s.MaxElevationGainMeters,
		&s.WindowSize, &s.WindowStride,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *models.Settings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := `UPDATE settings
	          SET hiking_speed_kmh = ?, time_budget_hours = ?,
	              max_elevation_gain_meters = ?, window_size = ?, window_stride = ?
	          WHERE id = 1`

	_, err := r.store.db.ExecContext(ctx, query,
		s.HikingSpeedKmh, s.TimeBudgetHours, s.MaxElevationGainMeters,
		s.WindowSize, s.WindowStride,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}
