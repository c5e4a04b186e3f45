package repository

import (
	"context"
	"time"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/gorm"
)

type HitRepository interface {
	Create(ctx context.Context, hit *models.EndpointHit) error
	CountViews(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error)
}

type hitRepository struct {
	db *gorm.DB
}

func NewHitRepository(db *gorm.DB) HitRepository {
	return &hitRepository{db: db}
}

func (r *hitRepository) Create(ctx context.Context, hit *models.EndpointHit) error {
	return r.db.WithContext(ctx).Create(hit).Error
}

// CountViews aggregates hits per (app, uri), optionally deduplicating by
// client ip, sorted by hit count descending.
func (r *hitRepository) CountViews(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
	hits := "count(*)"
	if unique {
		hits = "count(distinct ip)"
	}

	q := r.db.WithContext(ctx).Model(&models.EndpointHit{}).
		Select("app, uri, " + hits + " AS hits").
		Group("app, uri").
		Order("hits DESC")
	if start != nil {
		q = q.Where("timestamp >= ?", *start)
	}
	if end != nil {
		q = q.Where("timestamp <= ?", *end)
	}
	if len(uris) > 0 {
		q = q.Where("uri IN ?", uris)
	}

	var stats []models.ViewStats
	if err := q.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
