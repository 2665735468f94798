package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStorage(client)
}

func TestSettingsRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	_, err := storage.Get(ctx, 1, 7)
	assert.ErrorIs(t, err, redis.Nil)

	settings := &entity.UserCourseNotificationSettings{
		PresetID: 0,
		Specifications: map[int16]entity.UserCourseNotificationSpecification{
			1: {UserID: 1, CourseID: 7, Type: 1, Webapp: true, Push: false, Email: true},
			4: {UserID: 1, CourseID: 7, Type: 4, Webapp: false, Push: true, Email: false},
		},
	}
	storage.Set(ctx, 1, 7, settings, time.Hour)

	got, err := storage.Get(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestClearDropsOnlyOwnPair(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	settings := &entity.UserCourseNotificationSettings{
		PresetID:       2,
		Specifications: map[int16]entity.UserCourseNotificationSpecification{},
	}
	storage.Set(ctx, 1, 7, settings, time.Hour)
	storage.Set(ctx, 2, 7, settings, time.Hour)

	require.NoError(t, storage.Clear(ctx, 1, 7))

	_, err := storage.Get(ctx, 1, 7)
	assert.ErrorIs(t, err, redis.Nil)
	_, err = storage.Get(ctx, 2, 7)
	assert.NoError(t, err)
}

func TestClearValidatesIDs(t *testing.T) {
	storage := newTestStorage(t)
	assert.ErrorIs(t, storage.Clear(context.Background(), 0, 7), errorz.InvalidUserID)
	assert.ErrorIs(t, storage.Clear(context.Background(), 1, 0), errorz.InvalidCourseID)
}
