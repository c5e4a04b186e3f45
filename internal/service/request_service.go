package service

import (
	"context"
	"errors"
	"time"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"gorm.io/gorm"
)

// StatusUpdateResult partitions a bulk status change by final per-request
// status.
type StatusUpdateResult struct {
	Confirmed []models.Request
	Rejected  []models.Request
}

type RequestService interface {
	Submit(ctx context.Context, requesterID, eventID uint) (*models.Request, error)
	Cancel(ctx context.Context, requesterID, requestID uint) (*models.Request, error)
	ListForRequester(ctx context.Context, requesterID uint) ([]models.Request, error)
	ListParticipants(ctx context.Context, ownerID, eventID uint) ([]models.Request, error)
	BulkChangeStatus(ctx context.Context, ownerID, eventID uint, in *dto.RequestStatusUpdate) (*StatusUpdateResult, error)
}

type requestService struct {
	requestRepo repository.RequestRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
	}
}

// Submit runs the admission decision for one participation request. The
// event row is locked for the duration of the transaction so the
// confirmedRequests counter cannot drift under concurrent submissions.
func (s *requestService) Submit(ctx context.Context, requesterID, eventID uint) (*models.Request, error) {
	var result *models.Request

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.requestRepo.ExistsByEventAndRequester(ctx, tx, eventID, requesterID)
		if err != nil {
			return err
		}
		if exists {
			// A prior request blocks resubmission whatever its status,
			// CANCELED included.
			return apperr.Conflict("Request for eventId=%d from userId=%d already exist.", eventID, requesterID)
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(msgEventNotFound, eventID)
			}
			return err
		}
		if event.InitiatorID == requesterID {
			return apperr.Conflict("UserId=%d is initiator for event with id=%d", requesterID, eventID)
		}
		if event.State != models.EventPublished {
			return apperr.Conflict("Event id=%d is not published", eventID)
		}
		if event.ParticipantLimit > 0 && event.ConfirmedRequests == event.ParticipantLimit {
			return apperr.Conflict("Event confirmed limit reached.")
		}

		ok, err := s.userRepo.ExistsByID(ctx, requesterID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound(msgUserNotFound, requesterID)
		}

		status := models.RequestPending
		if event.ParticipantLimit == 0 || !event.RequestModeration {
			status = models.RequestConfirmed
		}
		request := &models.Request{
			RequesterID: requesterID,
			EventID:     eventID,
			Created:     time.Now(),
			Status:      status,
		}
		if err := s.requestRepo.Create(ctx, tx, request); err != nil {
			return err
		}
		if status == models.RequestConfirmed {
			event.ConfirmedRequests++
			if err := s.eventRepo.Save(ctx, tx, event); err != nil {
				return err
			}
		}

		result = request
		return nil
	})

	return result, err
}

// Cancel flips the requester's own request to CANCELED. The event's
// confirmedRequests counter is deliberately left untouched even when a
// CONFIRMED request is canceled; capacity is not reclaimed.
func (s *requestService) Cancel(ctx context.Context, requesterID, requestID uint) (*models.Request, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByIDAndRequester(ctx, requestID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Request with id=%d for userId=%d was not found.", requestID, requesterID)
		}
		return nil, err
	}

	request.Status = models.RequestCanceled
	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) ListForRequester(ctx context.Context, requesterID uint) ([]models.Request, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.requestRepo.FindAllByRequester(ctx, requesterID)
}

func (s *requestService) ListParticipants(ctx context.Context, ownerID, eventID uint) ([]models.Request, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.requestRepo.FindAllByEventInitiatorAndEvent(ctx, ownerID, eventID)
}

// BulkChangeStatus resolves a batch of pending requests to CONFIRMED or
// REJECTED. The whole batch is validated before anything mutates; when
// confirming under moderation with a limit, the batch is walked in input
// order and once capacity is exhausted the remainder cascades to REJECTED.
func (s *requestService) BulkChangeStatus(ctx context.Context, ownerID, eventID uint, in *dto.RequestStatusUpdate) (*StatusUpdateResult, error) {
	var result *StatusUpdateResult

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkUserExists(ctx, ownerID); err != nil {
			return err
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(msgEventNotFound, eventID)
			}
			return err
		}
		if event.InitiatorID != ownerID {
			return apperr.Conflict("User(id=%d) is not the initiator of the event(id=%d).", ownerID, eventID)
		}

		target := models.RequestStatus(in.Status)
		if target != models.RequestConfirmed && target != models.RequestRejected {
			return apperr.Conflict("Wrong status. Status should be one of: [CONFIRMED, REJECTED]")
		}
		if event.ParticipantLimit > 0 && event.ConfirmedRequests == event.ParticipantLimit {
			return apperr.Conflict("The limit on confirmations for this event has already been reached.")
		}

		loaded, err := s.requestRepo.FindAllByIDInAndStatus(ctx, tx, in.RequestIDs, models.RequestPending)
		if err != nil {
			return err
		}
		if len(loaded) != len(in.RequestIDs) {
			// Batches referencing non-pending requests fail whole.
			return apperr.Conflict("Status change is only possible for requests with state='PENDING'")
		}

		// Reorder the loaded rows to input order; the capacity cascade
		// confirms head-first.
		byID := make(map[uint]int, len(loaded))
		for i := range loaded {
			byID[loaded[i].ID] = i
		}
		batch := make([]models.Request, 0, len(loaded))
		for _, id := range in.RequestIDs {
			batch = append(batch, loaded[byID[id]])
		}

		switch {
		case target == models.RequestRejected:
			for i := range batch {
				batch[i].Status = models.RequestRejected
			}
		case event.ParticipantLimit == 0 || !event.RequestModeration:
			// No moderation needed; the whole batch confirms without
			// touching the counter.
			for i := range batch {
				batch[i].Status = models.RequestConfirmed
			}
		default:
			confirmed := event.ConfirmedRequests
			for i := range batch {
				if confirmed < event.ParticipantLimit {
					batch[i].Status = models.RequestConfirmed
					confirmed++
				} else {
					batch[i].Status = models.RequestRejected
				}
			}
			event.ConfirmedRequests = confirmed
			if err := s.eventRepo.Save(ctx, tx, event); err != nil {
				return err
			}
		}

		if err := s.requestRepo.SaveAll(ctx, tx, batch); err != nil {
			return err
		}

		result = &StatusUpdateResult{}
		for i := range batch {
			if batch[i].Status == models.RequestConfirmed {
				result.Confirmed = append(result.Confirmed, batch[i])
			} else {
				result.Rejected = append(result.Rejected, batch[i])
			}
		}
		return nil
	})

	return result, err
}

func (s *requestService) checkUserExists(ctx context.Context, userID uint) error {
	ok, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(msgUserNotFound, userID)
	}
	return nil
}
