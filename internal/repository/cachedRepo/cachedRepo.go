package cachedRepo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

type CacheRepository interface {
	GetImage(ctx context.Context, phrase string) ([]byte, error)
	SetImage(ctx context.Context, phrase string, data []byte) error
}

// CachedRepo decorates an image repository with a cache. Cache failures are
// logged and bypassed; the underlying repository stays authoritative.
type CachedRepo struct {
	repo  domain.ImageRepository
	cache CacheRepository
	log   *slog.Logger
}

func NewCachedRepo(repo domain.ImageRepository, cache CacheRepository, log *slog.Logger) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRepo) FindImage(ctx context.Context, phrase string) ([]byte, error) {
	const op = "cachedRepo.FindImage"

	data, err := r.cache.GetImage(ctx, phrase)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return data, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"phrase", phrase,
			"error", err,
		)
	}
	prometheus.CacheOperations.WithLabelValues("miss").Inc()

	data, err = r.repo.FindImage(ctx, phrase)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetImage(ctx, phrase, data); err != nil {
		r.log.WarnContext(ctx, "cache store failed",
			"phrase", phrase,
			"error", err,
		)
	}
	return data, nil
}
