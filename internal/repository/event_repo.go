package repository

import (
	"context"
	"time"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminEventFilter narrows the admin event search. Nil/empty fields are
// ignored.
type AdminEventFilter struct {
	Users      []uint
	States     []models.EventState
	Categories []uint
	RangeStart *time.Time
	RangeEnd   *time.Time
	Offset     int
	Limit      int
}

// PublicEventFilter narrows the public event search; only PUBLISHED events
// are ever returned.
type PublicEventFilter struct {
	Text          string
	Categories    []uint
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Offset        int
	Limit         int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Save(ctx context.Context, tx *gorm.DB, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error)
	FindByIDAndInitiator(ctx context.Context, id, initiatorID uint) (*models.Event, error)
	FindByInitiator(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error)
	SearchAdmin(ctx context.Context, filter AdminEventFilter) ([]models.Event, error)
	SearchPublic(ctx context.Context, filter PublicEventFilter) ([]models.Event, error)
	ExistsByCategory(ctx context.Context, categoryID uint) (bool, error)
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Save persists the event inside the given transaction; pass r.db for a
// standalone write.
func (r *eventRepository) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").Preload("Location").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction. All confirmedRequests read-modify-writes go through here.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error) {
	var events []models.Event
	if len(ids) == 0 {
		return events, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByIDAndInitiator(ctx context.Context, id, initiatorID uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").Preload("Location").
		Where("id = ? AND initiator_id = ?", id, initiatorID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByInitiator(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").
		Where("initiator_id = ?", initiatorID).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) SearchAdmin(ctx context.Context, filter AdminEventFilter) ([]models.Event, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").Preload("Location")
	if len(filter.Users) > 0 {
		q = q.Where("initiator_id IN ?", filter.Users)
	}
	if len(filter.States) > 0 {
		q = q.Where("state IN ?", filter.States)
	}
	if len(filter.Categories) > 0 {
		q = q.Where("category_id IN ?", filter.Categories)
	}
	if filter.RangeStart != nil {
		q = q.Where("event_date >= ?", *filter.RangeStart)
	}
	if filter.RangeEnd != nil {
		q = q.Where("event_date <= ?", *filter.RangeEnd)
	}

	var events []models.Event
	if err := q.Order("id ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) SearchPublic(ctx context.Context, filter PublicEventFilter) ([]models.Event, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").Preload("Initiator").
		Where("state = ?", models.EventPublished)
	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		q = q.Where("annotation ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if len(filter.Categories) > 0 {
		q = q.Where("category_id IN ?", filter.Categories)
	}
	if filter.Paid != nil {
		q = q.Where("paid = ?", *filter.Paid)
	}
	if filter.RangeStart != nil {
		q = q.Where("event_date >= ?", *filter.RangeStart)
	}
	if filter.RangeEnd != nil {
		q = q.Where("event_date <= ?", *filter.RangeEnd)
	}
	if filter.OnlyAvailable {
		q = q.Where("participant_limit = 0 OR confirmed_requests < participant_limit")
	}

	var events []models.Event
	if err := q.Order("event_date ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ExistsByCategory(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}
