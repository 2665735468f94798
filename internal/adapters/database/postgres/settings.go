package postgres

import (
	"context"

	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresetSelectionStorage struct {
	db *gorm.DB
}

func NewPresetSelectionStorage(db *gorm.DB) *PresetSelectionStorage {
	return &PresetSelectionStorage{
		db: db,
	}
}

// Get returns the user's preset selection for a course, or
// gorm.ErrRecordNotFound when the user never picked one.
func (s *PresetSelectionStorage) Get(ctx context.Context, userID, courseID int64) (*entity.UserCourseSettingPreset, error) {
	var selection entity.UserCourseSettingPreset
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&selection).Error
	return &selection, err
}

// Put upserts the selection, keeping at most one row per (user, course).
func (s *PresetSelectionStorage) Put(ctx context.Context, selection *entity.UserCourseSettingPreset) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preset_id", "updated_at"}),
		}).
		Create(selection).Error
}

type SpecificationStorage struct {
	db *gorm.DB
}

func NewSpecificationStorage(db *gorm.DB) *SpecificationStorage {
	return &SpecificationStorage{
		db: db,
	}
}

// GetAllForUserCourse returns every per-type specification a user keeps for a
// course. Missing types simply have no row.
func (s *SpecificationStorage) GetAllForUserCourse(ctx context.Context, userID, courseID int64) ([]entity.UserCourseNotificationSpecification, error) {
	var specs []entity.UserCourseNotificationSpecification
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&specs).Error
	return specs, err
}

// Put upserts one per-type specification row.
func (s *SpecificationStorage) Put(ctx context.Context, spec *entity.UserCourseNotificationSpecification) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"webapp", "push", "email", "updated_at"}),
		}).
		Create(spec).Error
}
