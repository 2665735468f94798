package errorz

import "errors"

var (
	InvalidUserID   = errors.New("invalid user id")
	InvalidCourseID = errors.New("invalid course id")
	UnknownType     = errors.New("unknown notification type")
	MissingTemplate = errors.New("missing email template")
)
