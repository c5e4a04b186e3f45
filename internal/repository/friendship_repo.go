package repository

import (
	"context"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/gorm"
)

type FriendshipRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	SaveAll(ctx context.Context, friendships []models.Friendship) error
	FindAllByIDs(ctx context.Context, ids []uint) ([]models.Friendship, error)
	FindAllByFollower(ctx context.Context, followerID uint, state *models.FriendshipState) ([]models.Friendship, error)
	FindAllByFriend(ctx context.Context, friendID uint, state *models.FriendshipState) ([]models.Friendship, error)
	ExistsActiveByFollowerAndFriend(ctx context.Context, followerID, friendID uint) (bool, error)
	ExistsPendingByIDAndFollower(ctx context.Context, id, followerID uint) (bool, error)
	DeleteByIDAndFollower(ctx context.Context, id, followerID uint) error
	FriendsOf(ctx context.Context, followerID uint) ([]models.User, error)
	FollowersOf(ctx context.Context, friendID uint) ([]models.User, error)
	ParticipateEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
	FriendEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

func (r *friendshipRepository) SaveAll(ctx context.Context, friendships []models.Friendship) error {
	if len(friendships) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&friendships).Error
}

func (r *friendshipRepository) FindAllByIDs(ctx context.Context, ids []uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if len(ids) == 0 {
		return friendships, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Follower").Preload("Friend").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *friendshipRepository) FindAllByFollower(ctx context.Context, followerID uint, state *models.FriendshipState) ([]models.Friendship, error) {
	return r.findAllBy(ctx, "follower_id", followerID, state)
}

func (r *friendshipRepository) FindAllByFriend(ctx context.Context, friendID uint, state *models.FriendshipState) ([]models.Friendship, error) {
	return r.findAllBy(ctx, "friend_id", friendID, state)
}

func (r *friendshipRepository) findAllBy(ctx context.Context, column string, userID uint, state *models.FriendshipState) ([]models.Friendship, error) {
	q := r.db.WithContext(ctx).
		Preload("Follower").Preload("Friend").
		Where(column+" = ?", userID)
	if state != nil {
		q = q.Where("state = ?", *state)
	}
	var friendships []models.Friendship
	if err := q.Order("id ASC").Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

// ExistsActiveByFollowerAndFriend reports whether a non-REJECTED relation
// already exists for the ordered (follower, friend) pair.
func (r *friendshipRepository) ExistsActiveByFollowerAndFriend(ctx context.Context, followerID, friendID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("follower_id = ? AND friend_id = ? AND state <> ?", followerID, friendID, models.FriendshipRejected).
		Count(&count).Error
	return count > 0, err
}

func (r *friendshipRepository) ExistsPendingByIDAndFollower(ctx context.Context, id, followerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("id = ? AND follower_id = ? AND state = ?", id, followerID, models.FriendshipPending).
		Count(&count).Error
	return count > 0, err
}

func (r *friendshipRepository) DeleteByIDAndFollower(ctx context.Context, id, followerID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND follower_id = ?", id, followerID).
		Delete(&models.Friendship{}).Error
}

func (r *friendshipRepository) FriendsOf(ctx context.Context, followerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.follower_id = ? AND friendships.state = ?", followerID, models.FriendshipApproved).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *friendshipRepository) FollowersOf(ctx context.Context, friendID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN friendships ON friendships.follower_id = users.id").
		Where("friendships.friend_id = ? AND friendships.state = ?", friendID, models.FriendshipApproved).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ParticipateEvents lists upcoming events where a followed friend holds a
// non-private confirmed participation request.
func (r *friendshipRepository) ParticipateEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Distinct("events.*").
		Joins("JOIN requests ON requests.event_id = events.id").
		Joins("JOIN friendships ON friendships.friend_id = requests.requester_id").
		Where("friendships.follower_id = ? AND friendships.state = ?", followerID, models.FriendshipApproved).
		Where("requests.status = ? AND requests.private = false", models.RequestConfirmed).
		Where("events.event_date > now() + interval '2 hours'").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FriendEvents lists upcoming published events hosted by followed friends.
func (r *friendshipRepository) FriendEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Distinct("events.*").
		Joins("JOIN friendships ON friendships.friend_id = events.initiator_id").
		Where("friendships.follower_id = ? AND friendships.state = ?", followerID, models.FriendshipApproved).
		Where("events.state = ?", models.EventPublished).
		Where("events.event_date > now() + interval '2 hours'").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
