package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHitRepo struct {
	createFn func(ctx context.Context, hit *models.EndpointHit) error
}

func (m *mockHitRepo) Create(ctx context.Context, hit *models.EndpointHit) error {
	if m.createFn != nil {
		return m.createFn(ctx, hit)
	}
	return nil
}

func (m *mockHitRepo) CountViews(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
	return nil, nil
}

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func hitDelivery(t *testing.T, ack *fakeAcknowledger, redelivered bool) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(dto.EndpointHitMessage{
		App:       "ewm-main-service",
		URI:       "/events/1",
		IP:        "192.168.0.1",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func TestHandleMessage_PersistsAndAcks(t *testing.T) {
	var saved *models.EndpointHit
	repo := &mockHitRepo{
		createFn: func(ctx context.Context, hit *models.EndpointHit) error {
			saved = hit
			return nil
		},
	}
	ack := &fakeAcknowledger{}

	NewHitConsumer(repo).handleMessage(hitDelivery(t, ack, false))

	require.NotNil(t, saved)
	assert.Equal(t, "/events/1", saved.URI)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleMessage_SaveFailureRequeuesOnce(t *testing.T) {
	repo := &mockHitRepo{
		createFn: func(ctx context.Context, hit *models.EndpointHit) error {
			return errors.New("insert failed")
		},
	}

	first := &fakeAcknowledger{}
	NewHitConsumer(repo).handleMessage(hitDelivery(t, first, false))
	assert.True(t, first.nacked)
	assert.True(t, first.requeue)

	second := &fakeAcknowledger{}
	NewHitConsumer(repo).handleMessage(hitDelivery(t, second, true))
	assert.True(t, second.nacked)
	assert.False(t, second.requeue)
}

func TestHandleMessage_BadPayloadDropped(t *testing.T) {
	ack := &fakeAcknowledger{}
	msg := amqp.Delivery{Acknowledger: ack, Body: []byte("not json")}

	NewHitConsumer(&mockHitRepo{}).handleMessage(msg)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}
