package service

import (
	"context"
	"errors"
	"testing"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriends_Success(t *testing.T) {
	repo := &mockFriendshipRepo{
		friendsOfFn: func(ctx context.Context, followerID uint) ([]models.User, error) {
			return []models.User{{ID: 2, Name: "friend", Email: "friend@example.com"}}, nil
		},
	}
	svc := NewFriendService(repo, &mockUserRepo{})

	users, err := svc.Friends(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, uint(2), users[0].ID)
}

func TestFriends_UnknownUser(t *testing.T) {
	userRepo := &mockUserRepo{
		existsFn: func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewFriendService(&mockFriendshipRepo{}, userRepo)

	_, err := svc.Friends(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestParticipateEvents_PassesPaging(t *testing.T) {
	repo := &mockFriendshipRepo{
		participateEventsFn: func(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
			assert.Equal(t, uint(1), followerID)
			assert.Equal(t, 20, offset)
			assert.Equal(t, 10, limit)
			return nil, nil
		},
	}
	svc := NewFriendService(repo, &mockUserRepo{})

	_, err := svc.ParticipateEvents(context.Background(), 1, 20, 10)

	require.NoError(t, err)
}

func TestFriendEvents_Success(t *testing.T) {
	repo := &mockFriendshipRepo{
		friendEventsFn: func(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
			return []models.Event{{ID: 5, State: models.EventPublished}}, nil
		},
	}
	svc := NewFriendService(repo, &mockUserRepo{})

	events, err := svc.FriendEvents(context.Background(), 1, 0, 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventPublished, events[0].State)
}
