package service

import (
	"context"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
)

// FriendService serves the views derived from approved friendships.
type FriendService interface {
	Friends(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	ParticipateEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
	FriendEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
}

type friendService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

func NewFriendService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) FriendService {
	return &friendService{friendshipRepo: friendshipRepo, userRepo: userRepo}
}

func (s *friendService) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.checkExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendshipRepo.FriendsOf(ctx, userID)
}

func (s *friendService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.checkExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendshipRepo.FollowersOf(ctx, userID)
}

// ParticipateEvents lists upcoming events a followed friend openly
// participates in.
func (s *friendService) ParticipateEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	if err := s.checkExists(ctx, followerID); err != nil {
		return nil, err
	}
	return s.friendshipRepo.ParticipateEvents(ctx, followerID, offset, limit)
}

// FriendEvents lists upcoming published events hosted by followed friends.
func (s *friendService) FriendEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	if err := s.checkExists(ctx, followerID); err != nil {
		return nil, err
	}
	return s.friendshipRepo.FriendEvents(ctx, followerID, offset, limit)
}

func (s *friendService) checkExists(ctx context.Context, userID uint) error {
	ok, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(msgUserNotFound, userID)
	}
	return nil
}
