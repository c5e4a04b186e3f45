package service

import (
	"context"
	"time"

	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn   func(ctx context.Context, user *models.User) error
	findByIDFn func(ctx context.Context, id uint) (*models.User, error)
	findAllFn  func(ctx context.Context, ids []uint, offset, limit int) ([]models.User, error)
	existsFn   func(ctx context.Context, id uint) (bool, error)
	deleteFn   func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &models.User{ID: id, Name: "user", Email: "user@example.com"}, nil
}
func (m *mockUserRepo) FindAll(ctx context.Context, ids []uint, offset, limit int) ([]models.User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, ids, offset, limit)
	}
	return nil, nil
}
func (m *mockUserRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	createFn   func(ctx context.Context, category *models.Category) error
	saveFn     func(ctx context.Context, category *models.Category) error
	findByIDFn func(ctx context.Context, id uint) (*models.Category, error)
	findAllFn  func(ctx context.Context, offset, limit int) ([]models.Category, error)
	deleteFn   func(ctx context.Context, id uint) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}
func (m *mockCategoryRepo) Save(ctx context.Context, category *models.Category) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, category)
	}
	return nil
}
func (m *mockCategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &models.Category{ID: id, Name: "concerts"}, nil
}
func (m *mockCategoryRepo) FindAll(ctx context.Context, offset, limit int) ([]models.Category, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, offset, limit)
	}
	return nil, nil
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock LocationRepository ---

type mockLocationRepo struct {
	findOrCreateFn func(ctx context.Context, lat, lon float64) (*models.Location, error)
}

func (m *mockLocationRepo) FindOrCreate(ctx context.Context, lat, lon float64) (*models.Location, error) {
	if m.findOrCreateFn != nil {
		return m.findOrCreateFn(ctx, lat, lon)
	}
	return &models.Location{ID: 1, Lat: lat, Lon: lon}, nil
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn        func(ctx context.Context, event *models.Event) error
	saveFn          func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	findByIDFn      func(ctx context.Context, id uint) (*models.Event, error)
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	findByIDsFn     func(ctx context.Context, ids []uint) ([]models.Event, error)
	findByInitFn    func(ctx context.Context, id, initiatorID uint) (*models.Event, error)
	listByInitFn    func(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error)
	searchAdminFn   func(ctx context.Context, filter repository.AdminEventFilter) ([]models.Event, error)
	searchPublicFn  func(ctx context.Context, filter repository.PublicEventFilter) ([]models.Event, error)
	existsByCatFn   func(ctx context.Context, categoryID uint) (bool, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}
func (m *mockEventRepo) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, event)
	}
	return nil
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	if m.findForUpdateFn != nil {
		return m.findForUpdateFn(ctx, tx, id)
	}
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error) {
	return m.findByIDsFn(ctx, ids)
}
func (m *mockEventRepo) FindByIDAndInitiator(ctx context.Context, id, initiatorID uint) (*models.Event, error) {
	return m.findByInitFn(ctx, id, initiatorID)
}
func (m *mockEventRepo) FindByInitiator(ctx context.Context, initiatorID uint, offset, limit int) ([]models.Event, error) {
	return m.listByInitFn(ctx, initiatorID, offset, limit)
}
func (m *mockEventRepo) SearchAdmin(ctx context.Context, filter repository.AdminEventFilter) ([]models.Event, error) {
	return m.searchAdminFn(ctx, filter)
}
func (m *mockEventRepo) SearchPublic(ctx context.Context, filter repository.PublicEventFilter) ([]models.Event, error) {
	return m.searchPublicFn(ctx, filter)
}
func (m *mockEventRepo) ExistsByCategory(ctx context.Context, categoryID uint) (bool, error) {
	if m.existsByCatFn != nil {
		return m.existsByCatFn(ctx, categoryID)
	}
	return false, nil
}
func (m *mockEventRepo) GetDB() *gorm.DB { return nil }

// --- Mock RequestRepository ---

type mockRequestRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, request *models.Request) error
	saveFn              func(ctx context.Context, request *models.Request) error
	saveAllFn           func(ctx context.Context, tx *gorm.DB, requests []models.Request) error
	findByRequesterFn   func(ctx context.Context, id, requesterID uint) (*models.Request, error)
	listByRequesterFn   func(ctx context.Context, requesterID uint) ([]models.Request, error)
	listByIDsFn         func(ctx context.Context, tx *gorm.DB, ids []uint, status models.RequestStatus) ([]models.Request, error)
	listParticipantsFn  func(ctx context.Context, initiatorID, eventID uint) ([]models.Request, error)
	existsByRequesterFn func(ctx context.Context, tx *gorm.DB, eventID, requesterID uint) (bool, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, tx *gorm.DB, request *models.Request) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, request)
	}
	return nil
}
func (m *mockRequestRepo) Save(ctx context.Context, request *models.Request) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, request)
	}
	return nil
}
func (m *mockRequestRepo) SaveAll(ctx context.Context, tx *gorm.DB, requests []models.Request) error {
	if m.saveAllFn != nil {
		return m.saveAllFn(ctx, tx, requests)
	}
	return nil
}
func (m *mockRequestRepo) FindByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Request, error) {
	return m.findByRequesterFn(ctx, id, requesterID)
}
func (m *mockRequestRepo) FindAllByRequester(ctx context.Context, requesterID uint) ([]models.Request, error) {
	return m.listByRequesterFn(ctx, requesterID)
}
func (m *mockRequestRepo) FindAllByIDInAndStatus(ctx context.Context, tx *gorm.DB, ids []uint, status models.RequestStatus) ([]models.Request, error) {
	return m.listByIDsFn(ctx, tx, ids, status)
}
func (m *mockRequestRepo) FindAllByEventInitiatorAndEvent(ctx context.Context, initiatorID, eventID uint) ([]models.Request, error) {
	return m.listParticipantsFn(ctx, initiatorID, eventID)
}
func (m *mockRequestRepo) ExistsByEventAndRequester(ctx context.Context, tx *gorm.DB, eventID, requesterID uint) (bool, error) {
	if m.existsByRequesterFn != nil {
		return m.existsByRequesterFn(ctx, tx, eventID, requesterID)
	}
	return false, nil
}
func (m *mockRequestRepo) GetDB() *gorm.DB { return nil }

// --- Mock FriendshipRepository ---

type mockFriendshipRepo struct {
	createFn            func(ctx context.Context, friendship *models.Friendship) error
	saveAllFn           func(ctx context.Context, friendships []models.Friendship) error
	findByIDsFn         func(ctx context.Context, ids []uint) ([]models.Friendship, error)
	listByFollowerFn    func(ctx context.Context, followerID uint, state *models.FriendshipState) ([]models.Friendship, error)
	listByFriendFn      func(ctx context.Context, friendID uint, state *models.FriendshipState) ([]models.Friendship, error)
	existsActiveFn      func(ctx context.Context, followerID, friendID uint) (bool, error)
	existsPendingFn     func(ctx context.Context, id, followerID uint) (bool, error)
	deleteFn            func(ctx context.Context, id, followerID uint) error
	friendsOfFn         func(ctx context.Context, followerID uint) ([]models.User, error)
	followersOfFn       func(ctx context.Context, friendID uint) ([]models.User, error)
	participateEventsFn func(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
	friendEventsFn      func(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error)
}

func (m *mockFriendshipRepo) Create(ctx context.Context, friendship *models.Friendship) error {
	if m.createFn != nil {
		return m.createFn(ctx, friendship)
	}
	return nil
}
func (m *mockFriendshipRepo) SaveAll(ctx context.Context, friendships []models.Friendship) error {
	if m.saveAllFn != nil {
		return m.saveAllFn(ctx, friendships)
	}
	return nil
}
func (m *mockFriendshipRepo) FindAllByIDs(ctx context.Context, ids []uint) ([]models.Friendship, error) {
	return m.findByIDsFn(ctx, ids)
}
func (m *mockFriendshipRepo) FindAllByFollower(ctx context.Context, followerID uint, state *models.FriendshipState) ([]models.Friendship, error) {
	return m.listByFollowerFn(ctx, followerID, state)
}
func (m *mockFriendshipRepo) FindAllByFriend(ctx context.Context, friendID uint, state *models.FriendshipState) ([]models.Friendship, error) {
	return m.listByFriendFn(ctx, friendID, state)
}
func (m *mockFriendshipRepo) ExistsActiveByFollowerAndFriend(ctx context.Context, followerID, friendID uint) (bool, error) {
	if m.existsActiveFn != nil {
		return m.existsActiveFn(ctx, followerID, friendID)
	}
	return false, nil
}
func (m *mockFriendshipRepo) ExistsPendingByIDAndFollower(ctx context.Context, id, followerID uint) (bool, error) {
	if m.existsPendingFn != nil {
		return m.existsPendingFn(ctx, id, followerID)
	}
	return false, nil
}
func (m *mockFriendshipRepo) DeleteByIDAndFollower(ctx context.Context, id, followerID uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, followerID)
	}
	return nil
}
func (m *mockFriendshipRepo) FriendsOf(ctx context.Context, followerID uint) ([]models.User, error) {
	return m.friendsOfFn(ctx, followerID)
}
func (m *mockFriendshipRepo) FollowersOf(ctx context.Context, friendID uint) ([]models.User, error) {
	return m.followersOfFn(ctx, friendID)
}
func (m *mockFriendshipRepo) ParticipateEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	return m.participateEventsFn(ctx, followerID, offset, limit)
}
func (m *mockFriendshipRepo) FriendEvents(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error) {
	return m.friendEventsFn(ctx, followerID, offset, limit)
}

// --- Mock HitRepository ---

type mockHitRepo struct {
	createFn     func(ctx context.Context, hit *models.EndpointHit) error
	countViewsFn func(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error)
}

func (m *mockHitRepo) Create(ctx context.Context, hit *models.EndpointHit) error {
	if m.createFn != nil {
		return m.createFn(ctx, hit)
	}
	return nil
}
func (m *mockHitRepo) CountViews(ctx context.Context, start, end *time.Time, uris []string, unique bool) ([]models.ViewStats, error) {
	return m.countViewsFn(ctx, start, end, uris, unique)
}
