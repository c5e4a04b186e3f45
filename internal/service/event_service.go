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

// minEventLead is the minimum distance between now (or the publication
// instant) and the event date.
const minEventLead = 2 * time.Hour

const (
	msgEventNotFound     = "Event with id=%d was not found."
	msgCategoryNotFound  = "Category with id=%d was not found."
	msgUserNotFound      = "User with id=%d was not found."
	msgEventDateTooSoon  = "Event date and time cannot be earlier than 2 hours from the current moment."
	msgEventDatePublish  = "Event date cannot be earlier than 2 hours from the publication date."
	msgStatePublished    = "Event state is Published"
	msgWrongOwnerAction  = "Wrong status. Status should be one of: [SEND_TO_REVIEW, CANCEL_REVIEW]"
	msgIllegalTransition = "You cannot %s event when current status %s"
)

// ownerActions maps organizer state actions to the resulting state. Any
// other action is rejected.
var ownerActions = map[models.StateAction]models.EventState{
	models.ActionSendToReview: models.EventPending,
	models.ActionCancelReview: models.EventCanceled,
}

// adminActions is the admin transition table: current state to the set of
// legal actions and their resulting states. PUBLISHED and CANCELED allow
// nothing.
var adminActions = map[models.EventState]map[models.StateAction]models.EventState{
	models.EventPending: {
		models.ActionPublishEvent: models.EventPublished,
		models.ActionRejectEvent:  models.EventCanceled,
	},
	models.EventPublished: {},
	models.EventCanceled:  {},
}

type EventService interface {
	Create(ctx context.Context, initiatorID uint, in *dto.NewEventRequest) (*models.Event, error)
	UpdateByOwner(ctx context.Context, initiatorID, eventID uint, in *dto.UpdateEventRequest) (*models.Event, error)
	UpdateByAdmin(ctx context.Context, eventID uint, in *dto.UpdateEventRequest) (*models.Event, error)
	Get(ctx context.Context, id uint) (*models.Event, error)
	GetPublished(ctx context.Context, id uint) (*models.Event, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error)
	GetOwnEvents(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error)
	GetOwnEvent(ctx context.Context, initiatorID, eventID uint) (*models.Event, error)
	SearchAdmin(ctx context.Context, filter repository.AdminEventFilter) ([]models.Event, error)
	SearchPublic(ctx context.Context, filter repository.PublicEventFilter) ([]models.Event, error)
}

type eventService struct {
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

func (s *eventService) Create(ctx context.Context, initiatorID uint, in *dto.NewEventRequest) (*models.Event, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgUserNotFound, initiatorID)
		}
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, in.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgCategoryNotFound, in.Category)
		}
		return nil, err
	}
	if in.EventDate.Before(time.Now().Add(minEventLead)) {
		return nil, apperr.Validation(msgEventDateTooSoon)
	}

	location, err := s.locationRepo.FindOrCreate(ctx, in.Location.Lat, in.Location.Lon)
	if err != nil {
		return nil, err
	}

	moderation := true
	if in.RequestModeration != nil {
		moderation = *in.RequestModeration
	}
	event := &models.Event{
		Title:             in.Title,
		Annotation:        in.Annotation,
		Description:       in.Description,
		CategoryID:        in.Category,
		InitiatorID:       initiatorID,
		LocationID:        location.ID,
		EventDate:         in.EventDate,
		CreatedOn:         time.Now(),
		Paid:              in.Paid,
		ParticipantLimit:  in.ParticipantLimit,
		ConfirmedRequests: 0,
		RequestModeration: moderation,
		State:             models.EventPending,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, event.ID)
}

// UpdateByOwner applies an organizer patch. Editing is allowed while the
// event is not yet published; the only legal organizer actions are
// SEND_TO_REVIEW and CANCEL_REVIEW.
func (s *eventService) UpdateByOwner(ctx context.Context, initiatorID, eventID uint, in *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDAndInitiator(ctx, eventID, initiatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgEventNotFound, eventID)
		}
		return nil, err
	}
	if event.State == models.EventPublished {
		return nil, apperr.Conflict(msgStatePublished)
	}

	if in.StateAction != nil {
		next, ok := ownerActions[models.StateAction(*in.StateAction)]
		if !ok {
			return nil, apperr.Conflict(msgWrongOwnerAction)
		}
		event.State = next
	}
	if in.EventDate != nil && in.EventDate.Before(time.Now().Add(minEventLead)) {
		return nil, apperr.Validation(msgEventDateTooSoon)
	}
	if err := s.applyPatch(ctx, event, in); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, s.eventRepo.GetDB(), event); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, event.ID)
}

// UpdateByAdmin applies an admin patch. State actions are checked against
// the transition table; a PUBLISH_EVENT sets publishedOn.
func (s *eventService) UpdateByAdmin(ctx context.Context, eventID uint, in *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgEventNotFound, eventID)
		}
		return nil, err
	}

	if in.EventDate != nil {
		if in.EventDate.Before(time.Now().Add(minEventLead)) {
			return nil, apperr.Validation(msgEventDateTooSoon)
		}
	} else if event.State == models.EventPublished && event.PublishedOn != nil &&
		event.EventDate.Before(event.PublishedOn.Add(minEventLead)) {
		return nil, apperr.Validation(msgEventDatePublish)
	}

	if in.StateAction != nil {
		action := models.StateAction(*in.StateAction)
		next, ok := adminActions[event.State][action]
		if !ok {
			return nil, apperr.Conflict(msgIllegalTransition, action, event.State)
		}
		event.State = next
		if action == models.ActionPublishEvent {
			now := time.Now()
			event.PublishedOn = &now
		}
	}
	if err := s.applyPatch(ctx, event, in); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, s.eventRepo.GetDB(), event); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, event.ID)
}

func (s *eventService) applyPatch(ctx context.Context, event *models.Event, in *dto.UpdateEventRequest) error {
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Annotation != nil {
		event.Annotation = *in.Annotation
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Category != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *in.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(msgCategoryNotFound, *in.Category)
			}
			return err
		}
		event.CategoryID = *in.Category
	}
	if in.EventDate != nil {
		event.EventDate = *in.EventDate
	}
	if in.Location != nil {
		location, err := s.locationRepo.FindOrCreate(ctx, in.Location.Lat, in.Location.Lon)
		if err != nil {
			return err
		}
		event.LocationID = location.ID
	}
	if in.Paid != nil {
		event.Paid = *in.Paid
	}
	if in.ParticipantLimit != nil {
		event.ParticipantLimit = *in.ParticipantLimit
	}
	if in.RequestModeration != nil {
		event.RequestModeration = *in.RequestModeration
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgEventNotFound, id)
		}
		return nil, err
	}
	return event, nil
}

// GetPublished resolves an event for the public surface; anything not yet
// published reads as missing.
func (s *eventService) GetPublished(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.State != models.EventPublished {
		return nil, apperr.NotFound(msgEventNotFound, id)
	}
	return event, nil
}

func (s *eventService) FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error) {
	return s.eventRepo.FindByIDs(ctx, ids)
}

func (s *eventService) GetOwnEvents(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error) {
	return s.eventRepo.FindByInitiator(ctx, initiatorID, offset, limit)
}

func (s *eventService) GetOwnEvent(ctx context.Context, initiatorID, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDAndInitiator(ctx, eventID, initiatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgEventNotFound, eventID)
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) SearchAdmin(ctx context.Context, filter repository.AdminEventFilter) ([]models.Event, error) {
	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	return s.eventRepo.SearchAdmin(ctx, filter)
}

func (s *eventService) SearchPublic(ctx context.Context, filter repository.PublicEventFilter) ([]models.Event, error) {
	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	if filter.RangeStart == nil && filter.RangeEnd == nil {
		now := time.Now()
		filter.RangeStart = &now
	}
	return s.eventRepo.SearchPublic(ctx, filter)
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Validation("'rangeStart' must be before 'rangeEnd'")
	}
	return nil
}
