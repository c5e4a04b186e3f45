package service

import (
	"context"
	"errors"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, in *dto.NewCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uint, in *dto.NewCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context, offset, limit int) ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	eventRepo    repository.EventRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, eventRepo repository.EventRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, eventRepo: eventRepo}
}

func (s *categoryService) Create(ctx context.Context, in *dto.NewCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: in.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, in *dto.NewCategoryRequest) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses while events still reference the category.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	inUse, err := s.eventRepo.ExistsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Conflict("The category is not empty")
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgCategoryNotFound, id)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, offset, limit int) ([]models.Category, error) {
	return s.categoryRepo.FindAll(ctx, offset, limit)
}
