package postgres

import "github.com/ls1intum/Artemis-sub058/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Course{},
	&entity.CourseNotification{},
	&entity.NotificationParameter{},
	&entity.UserCourseNotificationStatus{},
	&entity.UserCourseSettingPreset{},
	&entity.UserCourseNotificationSpecification{},
}
