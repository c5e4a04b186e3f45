package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

type HitConsumer struct {
	hitRepo repository.HitRepository
}

func NewHitConsumer(hitRepo repository.HitRepository) *HitConsumer {
	return &HitConsumer{hitRepo: hitRepo}
}

// Start listens for hit messages and persists them for view counting.
func (hc *HitConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			hc.handleMessage(msg)
		}
		log.Println("[HitConsumer] channel closed, stopping consumer")
	}()
}

func (hc *HitConsumer) handleMessage(msg amqp.Delivery) {
	var hit dto.EndpointHitMessage
	if err := json.Unmarshal(msg.Body, &hit); err != nil {
		log.Printf("[HitConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	record := models.EndpointHit{
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: hit.Timestamp,
	}
	if err := hc.hitRepo.Create(context.Background(), &record); err != nil {
		log.Printf("[HitConsumer] failed to save hit for %s: %v", hit.URI, err)
		// Hits are best-effort: requeue once, drop on the redelivery so a
		// persistent insert failure cannot loop forever.
		msg.Nack(false, !msg.Redelivered)
		return
	}

	msg.Ack(false)
}
