package service

import (
	"context"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
)

type userStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetMany(ctx context.Context, ids []int64) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

// UserService maintains the recipient records the dispatch path works with,
// most importantly the device tokens the push channel targets.
type UserService struct {
	userStorage userStorage
}

func NewUserService(userStorage userStorage) *UserService {
	return &UserService{
		userStorage: userStorage,
	}
}

func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.LangKey == "" {
		user.LangKey = "en"
	}
	return s.userStorage.Create(ctx, &user)
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	return s.userStorage.Get(ctx, userID)
}

// GetMany resolves the recipient set of a dispatch in one query.
func (s *UserService) GetMany(ctx context.Context, userIDs []int64) ([]entity.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return s.userStorage.GetMany(ctx, userIDs)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.userStorage.Update(ctx, user)
}

// RegisterDeviceToken adds a mobile device token to the user. Registering the
// same token twice is a no-op.
func (s *UserService) RegisterDeviceToken(ctx context.Context, userID int64, token string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, existing := range user.DeviceTokens {
		if existing == token {
			return user, nil
		}
	}
	user.DeviceTokens = append(user.DeviceTokens, token)
	return s.userStorage.Update(ctx, user)
}

// RemoveDeviceToken drops a token, typically on logout of the mobile app.
func (s *UserService) RemoveDeviceToken(ctx context.Context, userID int64, token string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := user.DeviceTokens[:0]
	for _, existing := range user.DeviceTokens {
		if existing != token {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(user.DeviceTokens) {
		return user, nil
	}
	user.DeviceTokens = kept
	return s.userStorage.Update(ctx, user)
}
