package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/internal/domain/notification"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"gorm.io/gorm"
)

const settingsCacheTTL = 30 * time.Minute

type presetSelectionStorage interface {
	Get(ctx context.Context, userID, courseID int64) (*entity.UserCourseSettingPreset, error)
	Put(ctx context.Context, selection *entity.UserCourseSettingPreset) error
}

type specificationStorage interface {
	GetAllForUserCourse(ctx context.Context, userID, courseID int64) ([]entity.UserCourseNotificationSpecification, error)
	Put(ctx context.Context, spec *entity.UserCourseNotificationSpecification) error
}

type settingsCache interface {
	Get(ctx context.Context, userID, courseID int64) (*entity.UserCourseNotificationSettings, error)
	Set(ctx context.Context, userID, courseID int64, settings *entity.UserCourseNotificationSettings, expiration time.Duration)
	Clear(ctx context.Context, userID, courseID int64) error
}

// SettingsService decides, per recipient and channel, whether a notification
// may be delivered: preset selection first (baseline preset when the user
// never picked one), then either the preset registry or, for the custom
// sentinel, the user's explicit per-type specification. The resolved
// selection and specification map are cached together per (user, course), so
// a dispatch hits storage at most once per pair however many candidates and
// channels it filters.
type SettingsService struct {
	presets          *notification.PresetRegistry
	selectionStorage presetSelectionStorage
	specStorage      specificationStorage
	cache            settingsCache
	logger           *types.Logger
}

func NewSettingsService(
	presets *notification.PresetRegistry,
	selectionStorage presetSelectionStorage,
	specStorage specificationStorage,
	cache settingsCache,
	logger *types.Logger,
) *SettingsService {
	return &SettingsService{
		presets:          presets,
		selectionStorage: selectionStorage,
		specStorage:      specStorage,
		cache:            cache,
		logger:           logger,
	}
}

// FilterRecipients returns the candidates that allow the variant's type on the
// given channel. A storage failure excludes the affected candidate only.
func (s *SettingsService) FilterRecipients(ctx context.Context, variant notification.Variant, candidates []entity.User, channel notification.Channel) []entity.User {
	allowed := make([]entity.User, 0, len(candidates))
	for _, candidate := range candidates {
		ok, err := s.isEnabled(ctx, candidate.ID, variant.CourseID(), variant.TypeCode(), channel)
		if err != nil {
			s.logger.Errorf("failed to resolve notification settings (user_id=%d, course_id=%d): %v", candidate.ID, variant.CourseID(), err)
			continue
		}
		if ok {
			allowed = append(allowed, candidate)
		}
	}
	return allowed
}

func (s *SettingsService) isEnabled(ctx context.Context, userID, courseID int64, typeCode int16, channel notification.Channel) (bool, error) {
	resolved, err := s.resolveSettings(ctx, userID, courseID)
	if err != nil {
		return false, err
	}

	if resolved.PresetID != notification.CustomPresetID {
		// Unknown preset ids resolve to disabled, so a removed preset fails
		// closed instead of crashing historical selections.
		return s.presets.IsEnabled(resolved.PresetID, typeCode, channel), nil
	}

	spec, ok := resolved.Specifications[typeCode]
	if !ok {
		// Custom preset without a row for this type: fail closed.
		return false, nil
	}
	switch channel {
	case notification.ChannelWebapp:
		return spec.Webapp, nil
	case notification.ChannelPush:
		return spec.Push, nil
	case notification.ChannelEmail:
		return spec.Email, nil
	}
	return false, nil
}

// resolveSettings returns the user's resolved settings for a course, served
// from the cache when possible. On a miss the selection row is read once and
// the specification rows only when the selection is the custom sentinel.
func (s *SettingsService) resolveSettings(ctx context.Context, userID, courseID int64) (*entity.UserCourseNotificationSettings, error) {
	if cached, err := s.cache.Get(ctx, userID, courseID); err == nil {
		return cached, nil
	}

	presetID := notification.DefaultPresetID
	selection, err := s.selectionStorage.Get(ctx, userID, courseID)
	switch {
	case err == nil:
		presetID = selection.PresetID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no selection row, baseline preset applies
	default:
		return nil, err
	}

	specs := make(map[int16]entity.UserCourseNotificationSpecification)
	if presetID == notification.CustomPresetID {
		rows, errRows := s.specStorage.GetAllForUserCourse(ctx, userID, courseID)
		if errRows != nil {
			return nil, errRows
		}
		for _, row := range rows {
			specs[row.Type] = row
		}
	}

	resolved := &entity.UserCourseNotificationSettings{
		PresetID:       presetID,
		Specifications: specs,
	}
	s.cache.Set(ctx, userID, courseID, resolved, settingsCacheTTL)
	return resolved, nil
}

// SelectPreset stores the user's preset choice for a course and drops the
// cached resolution so the change applies to the next dispatch.
func (s *SettingsService) SelectPreset(ctx context.Context, userID, courseID int64, presetID int16) error {
	if presetID != notification.CustomPresetID && !s.presets.Has(presetID) {
		return fmt.Errorf("unknown preset id %d", presetID)
	}
	err := s.selectionStorage.Put(ctx, &entity.UserCourseSettingPreset{
		UserID:   userID,
		CourseID: courseID,
		PresetID: presetID,
	})
	if err != nil {
		return err
	}
	return s.invalidateSettingsCache(ctx, userID, courseID)
}

// UpdateSpecification upserts one per-type override and invalidates the cache.
func (s *SettingsService) UpdateSpecification(ctx context.Context, spec *entity.UserCourseNotificationSpecification) error {
	if err := s.specStorage.Put(ctx, spec); err != nil {
		return err
	}
	return s.invalidateSettingsCache(ctx, spec.UserID, spec.CourseID)
}

func (s *SettingsService) invalidateSettingsCache(ctx context.Context, userID, courseID int64) error {
	if err := s.cache.Clear(ctx, userID, courseID); err != nil {
		s.logger.Warnf("failed to clear settings cache (user_id=%d, course_id=%d): %v", userID, courseID, err)
	}
	return nil
}

// PresetDTOs returns every registered preset with its full enablement matrix.
func (s *SettingsService) PresetDTOs() []dto.NotificationPresetDTO {
	presets := s.presets.Presets()
	out := make([]dto.NotificationPresetDTO, 0, len(presets))
	for _, p := range presets {
		matrix := make(map[int16]map[notification.Channel]bool)
		for _, code := range notification.RegisteredTypes() {
			matrix[code] = make(map[notification.Channel]bool, len(notification.Channels))
			for _, channel := range notification.Channels {
				matrix[code][channel] = p.IsEnabled(code, channel)
			}
		}
		out = append(out, dto.NotificationPresetDTO{
			ID:       p.ID(),
			Name:     p.Name(),
			Settings: matrix,
		})
	}
	return out
}
