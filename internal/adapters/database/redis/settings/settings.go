package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

// Storage caches the resolved settings of a (user, course) pair, the selected
// preset and the custom specification map, under a single key, so settings
// lookups during dispatch do not hit the database for every notification.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(userID, courseID int64) string {
	return fmt.Sprintf("notifspec_%d_%d", userID, courseID)
}

// Get returns the cached resolved settings, or redis.Nil when not cached.
func (s *Storage) Get(ctx context.Context, userID, courseID int64) (*entity.UserCourseNotificationSettings, error) {
	raw, err := s.redis.Get(ctx, key(userID, courseID)).Result()
	if err != nil {
		return nil, err
	}

	var settings entity.UserCourseNotificationSettings
	if err = json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Storage) Set(ctx context.Context, userID, courseID int64, settings *entity.UserCourseNotificationSettings, expiration time.Duration) {
	raw, _ := json.Marshal(settings)
	s.redis.Set(ctx, key(userID, courseID), raw, expiration)
}

// Clear drops the cached entry so the next dispatch sees fresh settings.
func (s *Storage) Clear(ctx context.Context, userID, courseID int64) error {
	if userID == 0 {
		return errorz.InvalidUserID
	}
	if courseID == 0 {
		return errorz.InvalidCourseID
	}
	return s.redis.Del(ctx, key(userID, courseID)).Err()
}
