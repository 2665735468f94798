package entity

import "time"

// UserCourseSettingPreset selects which notification preset a user applies in
// a course. At most one row per (user, course); PresetID 0 means the user
// maintains explicit per-type specifications instead.
type UserCourseSettingPreset struct {
	UserID    int64 `gorm:"primaryKey"`
	CourseID  int64 `gorm:"primaryKey"`
	PresetID  int16 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCourseNotificationSettings is the resolved form of a user's settings in
// a course, cached as one unit: the selected preset and, when the selection is
// the custom sentinel, the per-type specification map.
type UserCourseNotificationSettings struct {
	PresetID       int16                                         `json:"presetId"`
	Specifications map[int16]UserCourseNotificationSpecification `json:"specifications"`
}

// UserCourseNotificationSpecification is a per-type channel override, only
// consulted when the user's preset selection is the custom sentinel.
type UserCourseNotificationSpecification struct {
	UserID    int64 `gorm:"primaryKey"`
	CourseID  int64 `gorm:"primaryKey"`
	Type      int16 `gorm:"primaryKey"`
	Webapp    bool  `gorm:"not null"`
	Push      bool  `gorm:"not null"`
	Email     bool  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
