package repository

import (
	"context"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *models.Request) error
	Save(ctx context.Context, request *models.Request) error
	SaveAll(ctx context.Context, tx *gorm.DB, requests []models.Request) error
	FindByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Request, error)
	FindAllByRequester(ctx context.Context, requesterID uint) ([]models.Request, error)
	FindAllByIDInAndStatus(ctx context.Context, tx *gorm.DB, ids []uint, status models.RequestStatus) ([]models.Request, error)
	FindAllByEventInitiatorAndEvent(ctx context.Context, initiatorID, eventID uint) ([]models.Request, error)
	ExistsByEventAndRequester(ctx context.Context, tx *gorm.DB, eventID, requesterID uint) (bool, error)
	GetDB() *gorm.DB
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *requestRepository) Create(ctx context.Context, tx *gorm.DB, request *models.Request) error {
	return tx.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) Save(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// SaveAll persists the batch as one write inside the given transaction.
func (r *requestRepository) SaveAll(ctx context.Context, tx *gorm.DB, requests []models.Request) error {
	if len(requests) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Save(&requests).Error
}

func (r *requestRepository) FindByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ?", id, requesterID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAllByRequester(ctx context.Context, requesterID uint) ([]models.Request, error) {
	var requests []models.Request
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) FindAllByIDInAndStatus(ctx context.Context, tx *gorm.DB, ids []uint, status models.RequestStatus) ([]models.Request, error) {
	var requests []models.Request
	if len(ids) == 0 {
		return requests, nil
	}
	if err := tx.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, status).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) FindAllByEventInitiatorAndEvent(ctx context.Context, initiatorID, eventID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = requests.event_id").
		Where("events.initiator_id = ? AND requests.event_id = ?", initiatorID, eventID).
		Order("requests.id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ExistsByEventAndRequester(ctx context.Context, tx *gorm.DB, eventID, requesterID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Request{}).
		Where("event_id = ? AND requester_id = ?", eventID, requesterID).
		Count(&count).Error
	return count > 0, err
}
