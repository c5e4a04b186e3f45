package repository

import (
	"context"
	"errors"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FindOrCreate(ctx context.Context, lat, lon float64) (*models.Location, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// FindOrCreate is an idempotent upsert keyed by the coordinate pair.
func (r *locationRepository) FindOrCreate(ctx context.Context, lat, lon float64) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).
		Where("lat = ? AND lon = ?", lat, lon).
		First(&location).Error
	if err == nil {
		return &location, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	location = models.Location{Lat: lat, Lon: lon}
	if err := r.db.WithContext(ctx).Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}
