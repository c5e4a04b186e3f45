package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
)

// HitRoutingKey is the stats exchange routing key for endpoint hits.
const HitRoutingKey = "stats.hit"

// HitPublisher is the fire-and-forget side of the stats pipeline.
type HitPublisher interface {
	Publish(routingKey string, payload any) error
}

// StatsService records endpoint hits and aggregates view counts.
// RecordHit and EventViews are best-effort decoration: their failures are
// logged and never surface to the caller. ViewCounts is the primary query
// path and propagates errors.
type StatsService interface {
	RecordHit(uri, ip string)
	ViewCounts(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error)
	EventViews(ctx context.Context, events []models.Event) map[uint]int64
}

type statsService struct {
	app       string
	publisher HitPublisher
	hitRepo   repository.HitRepository
}

func NewStatsService(app string, publisher HitPublisher, hitRepo repository.HitRepository) StatsService {
	return &statsService{app: app, publisher: publisher, hitRepo: hitRepo}
}

// RecordHit publishes one endpoint view to the stats exchange. A nil
// publisher or a publish failure only logs; the triggering call must not
// notice.
func (s *statsService) RecordHit(uri, ip string) {
	if s.publisher == nil {
		return
	}
	hit := dto.EndpointHitMessage{
		App:       s.app,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(HitRoutingKey, hit); err != nil {
		log.Printf("[Stats] failed to publish hit for %s: %v", uri, err)
	}
}

func (s *statsService) ViewCounts(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
	return s.hitRepo.CountViews(ctx, start, end, uris, unique)
}

// EventViews decorates events with their unique view counts. On failure it
// degrades to zeroes.
func (s *statsService) EventViews(ctx context.Context, events []models.Event) map[uint]int64 {
	views := make(map[uint]int64, len(events))
	if len(events) == 0 {
		return views
	}

	uris := make([]string, len(events))
	byURI := make(map[string]uint, len(events))
	for i := range events {
		uri := fmt.Sprintf("/events/%d", events[i].ID)
		uris[i] = uri
		byURI[uri] = events[i].ID
	}

	stats, err := s.hitRepo.CountViews(ctx, nil, nil, uris, true)
	if err != nil {
		log.Printf("[Stats] failed to load view counts: %v", err)
		return views
	}
	for _, stat := range stats {
		if id, ok := byURI[stat.URI]; ok {
			views[id] = stat.Hits
		}
	}
	return views
}
