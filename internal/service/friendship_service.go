package service

import (
	"context"
	"errors"
	"time"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"gorm.io/gorm"
)

// FriendshipBatch partitions a batch approve/reject into rows that changed
// state and rows skipped because their current state was not a legal
// source for the transition.
type FriendshipBatch struct {
	Updated []models.Friendship
	Skipped []models.Friendship
}

type FriendshipService interface {
	Request(ctx context.Context, followerID, friendID uint) (*models.Friendship, error)
	Approve(ctx context.Context, friendID uint, ids []uint) (*FriendshipBatch, error)
	Reject(ctx context.Context, friendID uint, ids []uint) (*FriendshipBatch, error)
	Cancel(ctx context.Context, followerID, subsID uint) error
	ListOutgoing(ctx context.Context, followerID uint, filter string) ([]models.Friendship, error)
	ListIncoming(ctx context.Context, friendID uint, filter string) ([]models.Friendship, error)
}

type friendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

func NewFriendshipService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) FriendshipService {
	return &friendshipService{friendshipRepo: friendshipRepo, userRepo: userRepo}
}

// Request creates a directed follow request. When the target has
// auto-subscribe enabled the relation is approved immediately.
func (s *friendshipService) Request(ctx context.Context, followerID, friendID uint) (*models.Friendship, error) {
	if followerID == friendID {
		return nil, apperr.Conflict("You can't follow yourself.")
	}
	if _, err := s.findUser(ctx, followerID); err != nil {
		return nil, err
	}
	friend, err := s.findUser(ctx, friendID)
	if err != nil {
		return nil, err
	}

	exists, err := s.friendshipRepo.ExistsActiveByFollowerAndFriend(ctx, followerID, friendID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Already friends.")
	}

	state := models.FriendshipPending
	if friend.AutoSubscribe {
		state = models.FriendshipApproved
	}
	friendship := &models.Friendship{
		FollowerID: followerID,
		FriendID:   friendID,
		State:      state,
		CreatedOn:  time.Now(),
	}
	if err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// Approve transitions PENDING rows of the batch to APPROVED. Rows in any
// other state are reported back as skipped rather than force-approved.
func (s *friendshipService) Approve(ctx context.Context, friendID uint, ids []uint) (*FriendshipBatch, error) {
	return s.changeState(ctx, friendID, ids, models.FriendshipApproved,
		map[models.FriendshipState]bool{models.FriendshipPending: true},
		"Status should be one of: [PENDING]")
}

// Reject transitions PENDING and APPROVED rows of the batch to REJECTED;
// already-rejected rows are skipped.
func (s *friendshipService) Reject(ctx context.Context, friendID uint, ids []uint) (*FriendshipBatch, error) {
	return s.changeState(ctx, friendID, ids, models.FriendshipRejected,
		map[models.FriendshipState]bool{models.FriendshipPending: true, models.FriendshipApproved: true},
		"Status should be one of: [APPROVED, PENDING]")
}

func (s *friendshipService) changeState(
	ctx context.Context,
	friendID uint,
	ids []uint,
	target models.FriendshipState,
	allowed map[models.FriendshipState]bool,
	conflictMsg string,
) (*FriendshipBatch, error) {
	rows, err := s.friendshipRepo.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("Request friendship not found.")
	}
	for i := range rows {
		if rows[i].FriendID != friendID {
			return nil, apperr.Conflict("You can change only your requests.")
		}
	}

	batch := &FriendshipBatch{}
	for i := range rows {
		if allowed[rows[i].State] {
			rows[i].State = target
			batch.Updated = append(batch.Updated, rows[i])
		} else {
			batch.Skipped = append(batch.Skipped, rows[i])
		}
	}
	if len(batch.Updated) == 0 {
		return nil, apperr.Conflict(conflictMsg)
	}

	if err := s.friendshipRepo.SaveAll(ctx, batch.Updated); err != nil {
		return nil, err
	}
	return batch, nil
}

// Cancel removes the follower's own still-pending request.
func (s *friendshipService) Cancel(ctx context.Context, followerID, subsID uint) error {
	if _, err := s.findUser(ctx, followerID); err != nil {
		return err
	}
	exists, err := s.friendshipRepo.ExistsPendingByIDAndFollower(ctx, subsID, followerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Friendship request no exist.")
	}
	return s.friendshipRepo.DeleteByIDAndFollower(ctx, subsID, followerID)
}

func (s *friendshipService) ListOutgoing(ctx context.Context, followerID uint, filter string) ([]models.Friendship, error) {
	state, err := s.parseFilter(ctx, followerID, filter)
	if err != nil {
		return nil, err
	}
	return s.friendshipRepo.FindAllByFollower(ctx, followerID, state)
}

func (s *friendshipService) ListIncoming(ctx context.Context, friendID uint, filter string) ([]models.Friendship, error) {
	state, err := s.parseFilter(ctx, friendID, filter)
	if err != nil {
		return nil, err
	}
	return s.friendshipRepo.FindAllByFriend(ctx, friendID, state)
}

// parseFilter resolves a list filter token; ALL yields a nil state.
func (s *friendshipService) parseFilter(ctx context.Context, userID uint, filter string) (*models.FriendshipState, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	switch filter {
	case "", "ALL":
		return nil, nil
	case string(models.FriendshipPending), string(models.FriendshipApproved), string(models.FriendshipRejected):
		state := models.FriendshipState(filter)
		return &state, nil
	default:
		return nil, apperr.Conflict("Wrong filter. Filter should be one of: [ALL, APPROVED, PENDING, REJECTED]")
	}
}

func (s *friendshipService) findUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgUserNotFound, id)
		}
		return nil, err
	}
	return user, nil
}
