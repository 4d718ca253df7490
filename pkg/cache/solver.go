package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SolverCache специализированный кэш для результатов решателя
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult кэшированный результат
type CachedSolveResult struct {
	MaxFlow           int64            `json:"max_flow"`
	Status            string           `json:"status"`
	Iterations        int64            `json:"iterations"`
	ComputationTimeMs float64          `json:"computation_time_ms"`
	FlowEdges         []*FlowEdgeCache `json:"flow_edges,omitempty"`
	ComputedAt        time.Time        `json:"computed_at"`
}

// FlowEdgeCache кэшированное ребро с потоком
type FlowEdgeCache struct {
	From        int     `json:"from"`
	To          int     `json:"to"`
	Flow        int64   `json:"flow"`
	Capacity    int64   `json:"capacity"`
	Utilization float64 `json:"utilization"`
}

// NewSolverCache создаёт кэш для результатов решателя
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат по хешу сети
func (sc *SolverCache) Get(ctx context.Context, networkHash, algorithm string) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(networkHash, algorithm)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Повреждённый кэш — удаляем, ошибку удаления игнорируем намеренно
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set сохраняет результат в кэш
func (sc *SolverCache) Set(ctx context.Context, networkHash, algorithm string, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSolveKey(networkHash, algorithm)

	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// Invalidate удаляет кэш для сети
func (sc *SolverCache) Invalidate(ctx context.Context, networkHash string) error {
	pattern := fmt.Sprintf("solve:*:%s", networkHash)
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll удаляет весь кэш результатов решателя
func (sc *SolverCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}
