package service

import (
	"context"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, in *dto.NewUserRequest) (*models.User, error)
	List(ctx context.Context, ids []uint, offset, limit int) ([]models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, in *dto.NewUserRequest) (*models.User, error) {
	user := &models.User{
		Name:          in.Name,
		Email:         in.Email,
		AutoSubscribe: in.AutoSubscribe,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, ids []uint, offset, limit int) ([]models.User, error) {
	return s.userRepo.FindAll(ctx, ids, offset, limit)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	ok, err := s.userRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(msgUserNotFound, id)
	}
	return s.userRepo.Delete(ctx, id)
}
