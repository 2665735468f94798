package service

import (
	"context"
	"testing"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCreateUnseenIsIdempotent(t *testing.T) {
	storage := newMockStatusStorage()
	invalidator := &recordingInvalidator{}
	svc := NewStatusService(storage, invalidator, testLogger())

	users := []entity.User{{ID: 1}, {ID: 2}}
	require.NoError(t, svc.BatchCreateUnseen(context.Background(), users, "n-1", 7))
	require.NoError(t, svc.BatchCreateUnseen(context.Background(), users, "n-1", 7))

	assert.Len(t, storage.rowsFor("n-1"), 2, "re-running the batch must not duplicate rows")
}

func TestBatchCreateUnseenInvalidatesEveryUser(t *testing.T) {
	storage := newMockStatusStorage()
	invalidator := &recordingInvalidator{}
	svc := NewStatusService(storage, invalidator, testLogger())

	require.NoError(t, svc.BatchCreateUnseen(context.Background(), []entity.User{{ID: 1}, {ID: 2}}, "n-1", 7))
	assert.ElementsMatch(t, []pairKey{{1, 7}, {2, 7}}, invalidator.pairs)
}

func TestBatchCreateUnseenNoUsers(t *testing.T) {
	storage := newMockStatusStorage()
	invalidator := &recordingInvalidator{}
	svc := NewStatusService(storage, invalidator, testLogger())

	require.NoError(t, svc.BatchCreateUnseen(context.Background(), nil, "n-1", 7))
	assert.Empty(t, storage.statuses)
	assert.Empty(t, invalidator.pairs)
}

func TestUpdateStatusInvalidatesAfterWrite(t *testing.T) {
	storage := newMockStatusStorage()
	invalidator := &recordingInvalidator{}
	svc := NewStatusService(storage, invalidator, testLogger())

	require.NoError(t, svc.BatchCreateUnseen(context.Background(), []entity.User{{ID: 1}}, "n-1", 7))
	invalidator.pairs = nil

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, []string{"n-1"}, entity.NotificationStatusSeen, 7))

	rows := storage.rowsFor("n-1")
	require.Len(t, rows, 1)
	assert.Equal(t, entity.NotificationStatusSeen, rows[0].Status)
	assert.Equal(t, []pairKey{{1, 7}}, invalidator.pairs)
}

func TestArchiveAllForUser(t *testing.T) {
	storage := newMockStatusStorage()
	invalidator := &recordingInvalidator{}
	svc := NewStatusService(storage, invalidator, testLogger())

	require.NoError(t, svc.BatchCreateUnseen(context.Background(), []entity.User{{ID: 1}}, "n-1", 7))
	require.NoError(t, svc.BatchCreateUnseen(context.Background(), []entity.User{{ID: 1}}, "n-2", 7))
	require.NoError(t, svc.BatchCreateUnseen(context.Background(), []entity.User{{ID: 1}}, "n-3", 8))

	require.NoError(t, svc.ArchiveAllForUser(context.Background(), 7, 1))

	assert.Equal(t, entity.NotificationStatusArchived, storage.rowsFor("n-1")[0].Status)
	assert.Equal(t, entity.NotificationStatusArchived, storage.rowsFor("n-2")[0].Status)
	assert.Equal(t, entity.NotificationStatusUnseen, storage.rowsFor("n-3")[0].Status, "other courses must stay untouched")
}
