package database

import (
	"context"

	"geocache-router/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Settings() SettingsRepository
	Runs() RunRepository
}

// SettingsRepository handles planner settings persistence
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, s *models.Settings) error
}

// RunRepository handles search run history persistence
type RunRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Run, int, error)
	GetByID(ctx context.Context, id int64) (*models.Run, error)
	Create(ctx context.Context, run *models.Run) (*models.Run, error)
	Delete(ctx context.Context, id int64) error
}
