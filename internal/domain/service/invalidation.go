package service

import (
	"context"

	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"github.com/ls1intum/Artemis-sub058/pkg/taskpool"
)

type pageCache interface {
	Invalidate(ctx context.Context, userID, courseID int64) error
}

// InvalidationService drops stale notification-list cache entries. The ids are
// validated synchronously (a zero id is a caller bug and must surface), while
// the cache round-trip itself is fire-and-forget on the task pool so it never
// blocks the triggering write.
//
// The pool must not be shared with the delivery pool: invalidations are
// triggered from inside delivery tasks, and Submit into the same full pool
// would wedge its own worker.
type InvalidationService struct {
	cache  pageCache
	pool   *taskpool.Pool
	logger *types.Logger
}

func NewInvalidationService(cache pageCache, pool *taskpool.Pool, logger *types.Logger) *InvalidationService {
	return &InvalidationService{
		cache:  cache,
		pool:   pool,
		logger: logger,
	}
}

// InvalidatePages removes every cached page and the count entry of the
// (user, course) pair.
func (s *InvalidationService) InvalidatePages(userID, courseID int64) error {
	if userID == 0 {
		return errorz.InvalidUserID
	}
	if courseID == 0 {
		return errorz.InvalidCourseID
	}

	s.pool.Submit(func() {
		if err := s.cache.Invalidate(context.Background(), userID, courseID); err != nil {
			// Best effort: a failed invalidation means a short staleness
			// window, never a failed write.
			s.logger.Warnf("failed to invalidate notification cache (user_id=%d, course_id=%d): %v", userID, courseID, err)
		}
	})
	return nil
}

// InvalidatePagesForUsers invalidates the pair cache for every given user.
func (s *InvalidationService) InvalidatePagesForUsers(userIDs []int64, courseID int64) error {
	for _, userID := range userIDs {
		if err := s.InvalidatePages(userID, courseID); err != nil {
			return err
		}
	}
	return nil
}
