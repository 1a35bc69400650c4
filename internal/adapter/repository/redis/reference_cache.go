package redis

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// CachedReasonRepository serves reason lookups from Redis before the wrapped
// repository. Reasons are never modified once created.
type CachedReasonRepository struct {
	usecase.ReasonRepository
	cache  *Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedReasonRepository wraps repo with a read-through cache.
func NewCachedReasonRepository(repo usecase.ReasonRepository, cache *Cache, ttl time.Duration, logger zerolog.Logger) *CachedReasonRepository {
	return &CachedReasonRepository{ReasonRepository: repo, cache: cache, ttl: ttl, logger: logger}
}

// GetByID resolves a reason, caching hits.
func (r *CachedReasonRepository) GetByID(ctx context.Context, id string) (*domain.Reason, error) {
	key := "reason:" + id

	var cached domain.Reason
	err := r.cache.GetJSON(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn().Err(err).Str("reason_id", id).Msg("reason cache read failed")
	}

	reason, err := r.ReasonRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, key, reason, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("reason_id", id).Msg("reason cache write failed")
	}

	return reason, nil
}

// CachedNodeRepository serves node lookups from Redis before the wrapped repository.
type CachedNodeRepository struct {
	usecase.NodeRepository
	cache  *Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedNodeRepository wraps repo with a read-through cache.
func NewCachedNodeRepository(repo usecase.NodeRepository, cache *Cache, ttl time.Duration, logger zerolog.Logger) *CachedNodeRepository {
	return &CachedNodeRepository{NodeRepository: repo, cache: cache, ttl: ttl, logger: logger}
}

// GetByID resolves a node, caching hits.
func (r *CachedNodeRepository) GetByID(ctx context.Context, id string) (*domain.Node, error) {
	key := "node:" + id

	var cached domain.Node
	err := r.cache.GetJSON(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn().Err(err).Str("node_id", id).Msg("node cache read failed")
	}

	node, err := r.NodeRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, key, node, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("node_id", id).Msg("node cache write failed")
	}

	return node, nil
}
