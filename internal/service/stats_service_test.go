package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	publishFn func(routingKey string, payload any) error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	return m.publishFn(routingKey, payload)
}

func TestRecordHit_Publishes(t *testing.T) {
	var gotKey string
	var gotPayload any
	pub := &mockPublisher{
		publishFn: func(routingKey string, payload any) error {
			gotKey = routingKey
			gotPayload = payload
			return nil
		},
	}
	svc := NewStatsService("ewm-main-service", pub, &mockHitRepo{})

	svc.RecordHit("/events/1", "192.0.2.10")

	assert.Equal(t, HitRoutingKey, gotKey)
	hit, ok := gotPayload.(dto.EndpointHitMessage)
	require.True(t, ok)
	assert.Equal(t, "ewm-main-service", hit.App)
	assert.Equal(t, "/events/1", hit.URI)
	assert.Equal(t, "192.0.2.10", hit.IP)
}

func TestRecordHit_NilPublisher(t *testing.T) {
	svc := NewStatsService("ewm-main-service", nil, &mockHitRepo{})

	assert.NotPanics(t, func() {
		svc.RecordHit("/events/1", "192.0.2.10")
	})
}

func TestRecordHit_PublishFailureSwallowed(t *testing.T) {
	pub := &mockPublisher{
		publishFn: func(routingKey string, payload any) error {
			return errors.New("broker gone")
		},
	}
	svc := NewStatsService("ewm-main-service", pub, &mockHitRepo{})

	assert.NotPanics(t, func() {
		svc.RecordHit("/events/1", "192.0.2.10")
	})
}

func TestEventViews_MapsCountsToEvents(t *testing.T) {
	repo := &mockHitRepo{
		countViewsFn: func(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
			assert.True(t, unique)
			assert.ElementsMatch(t, []string{"/events/1", "/events/2"}, uris)
			return []models.ViewStats{
				{App: "ewm-main-service", URI: "/events/1", Hits: 7},
			}, nil
		},
	}
	svc := NewStatsService("ewm-main-service", nil, repo)

	views := svc.EventViews(context.Background(), []models.Event{{ID: 1}, {ID: 2}})

	assert.Equal(t, int64(7), views[1])
	assert.Equal(t, int64(0), views[2])
}

// View decoration must never break an event listing; a stats failure reads
// as zero views.
func TestEventViews_DegradesToZero(t *testing.T) {
	repo := &mockHitRepo{
		countViewsFn: func(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
			return nil, errors.New("stats store down")
		},
	}
	svc := NewStatsService("ewm-main-service", nil, repo)

	views := svc.EventViews(context.Background(), []models.Event{{ID: 1}})

	assert.Empty(t, views)
}

func TestViewCounts_PropagatesError(t *testing.T) {
	repo := &mockHitRepo{
		countViewsFn: func(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
			return nil, errors.New("stats store down")
		},
	}
	svc := NewStatsService("ewm-main-service", nil, repo)

	_, err := svc.ViewCounts(context.Background(), nil, nil, nil, false)

	assert.Error(t, err)
}
