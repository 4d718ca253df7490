// Package history persists solver runs to PostgreSQL so past results
// can be listed and compared.
package history

import (
	"context"
	"errors"
	"time"
)

// Стандартные ошибки
var (
	ErrRunNotFound = errors.New("run not found")
)

// Run модель одного запуска решателя
type Run struct {
	ID                string
	InputName         string
	Algorithm         string
	MaxFlow           int64
	Iterations        int64
	NodeCount         int
	EdgeCount         int
	ComputationTimeMs float64
	CreatedAt         time.Time
}

// RunStats агрегированная статистика по истории запусков
type RunStats struct {
	TotalRuns                int
	AverageMaxFlow           float64
	AverageComputationTimeMs float64
	RunsByInput              map[string]int
}

// RunRepository интерфейс репозитория истории запусков
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit, offset int) ([]*Run, int64, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*RunStats, error)
}
