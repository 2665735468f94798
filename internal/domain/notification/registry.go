package notification

import "time"

// descriptor is the static metadata of one notification type.
type descriptor struct {
	readableType string
	category     Category
	channels     []Channel
	cleanup      time.Duration
	decode       func(courseID int64, p map[string]string) Variant
}

// registry maps every type code to its descriptor. The table is the single
// source of truth for the code <-> variant mapping; it is fixed at compile
// time so the mapping survives restarts and AOT deployments without any
// runtime scanning.
var registry = map[int16]descriptor{
	TypeNewPost: {
		readableType: "newPostNotification",
		category:     CategoryCommunication,
		channels:     []Channel{ChannelWebapp, ChannelPush, ChannelEmail},
		cleanup:      30 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return NewPostNotification{
				Course:              courseID,
				CourseTitle:         p["courseTitle"],
				CourseIcon:          p["courseIcon"],
				PostID:              p["postId"],
				PostMarkdownContent: p["postMarkdownContent"],
				ChannelID:           p["channelId"],
				ChannelName:         p["channelName"],
				ChannelType:         p["channelType"],
				AuthorName:          p["authorName"],
				AuthorImageURL:      p["authorImageUrl"],
				AuthorID:            p["authorId"],
			}
		},
	},
	TypeNewAnnouncement: {
		readableType: "newAnnouncementNotification",
		category:     CategoryCommunication,
		channels:     []Channel{ChannelWebapp, ChannelPush, ChannelEmail},
		cleanup:      60 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return NewAnnouncementNotification{
				Course:              courseID,
				CourseTitle:         p["courseTitle"],
				CourseIcon:          p["courseIcon"],
				PostID:              p["postId"],
				PostTitle:           p["postTitle"],
				PostMarkdownContent: p["postMarkdownContent"],
				ChannelID:           p["channelId"],
				AuthorName:          p["authorName"],
				AuthorImageURL:      p["authorImageUrl"],
				AuthorID:            p["authorId"],
			}
		},
	},
	TypeNewMention: {
		readableType: "newMentionNotification",
		category:     CategoryCommunication,
		channels:     []Channel{ChannelWebapp, ChannelPush, ChannelEmail},
		cleanup:      30 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return NewMentionNotification{
				Course:              courseID,
				CourseTitle:         p["courseTitle"],
				CourseIcon:          p["courseIcon"],
				PostID:              p["postId"],
				PostMarkdownContent: p["postMarkdownContent"],
				ChannelID:           p["channelId"],
				ChannelName:         p["channelName"],
				AuthorName:          p["authorName"],
				AuthorImageURL:      p["authorImageUrl"],
				AuthorID:            p["authorId"],
			}
		},
	},
	TypeExerciseAssessed: {
		readableType: "exerciseAssessedNotification",
		category:     CategoryGeneral,
		channels:     []Channel{ChannelWebapp, ChannelPush, ChannelEmail},
		cleanup:      90 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return ExerciseAssessedNotification{
				Course:       courseID,
				CourseTitle:  p["courseTitle"],
				CourseIcon:   p["courseIcon"],
				ExerciseID:   p["exerciseId"],
				ExerciseName: p["exerciseName"],
				ExerciseType: p["exerciseType"],
				Score:        p["score"],
				MaxPoints:    p["maxPoints"],
			}
		},
	},
	TypeChannelDeleted: {
		readableType: "channelDeletedNotification",
		category:     CategoryCommunication,
		channels:     []Channel{ChannelWebapp, ChannelPush},
		cleanup:      30 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return ChannelDeletedNotification{
				Course:       courseID,
				CourseTitle:  p["courseTitle"],
				CourseIcon:   p["courseIcon"],
				ChannelName:  p["channelName"],
				DeletingUser: p["deletingUser"],
			}
		},
	},
	TypeAddedToChannel: {
		readableType: "addedToChannelNotification",
		category:     CategoryCommunication,
		channels:     []Channel{ChannelWebapp, ChannelPush},
		cleanup:      30 * 24 * time.Hour,
		decode: func(courseID int64, p map[string]string) Variant {
			return AddedToChannelNotification{
				Course:      courseID,
				CourseTitle: p["courseTitle"],
				CourseIcon:  p["courseIcon"],
				ChannelID:   p["channelId"],
				ChannelName: p["channelName"],
				AddingUser:  p["addingUser"],
			}
		},
	},
}

// FromStore reconstructs a variant from its stored type code and parameter
// map. The second return value is false for codes that are no longer
// registered; callers must skip such notifications instead of failing.
func FromStore(code int16, courseID int64, params map[string]string) (Variant, bool) {
	d, ok := registry[code]
	if !ok {
		return nil, false
	}
	return d.decode(courseID, params), true
}

// ReadableType returns the display name of a type code.
func ReadableType(code int16) (string, bool) {
	d, ok := registry[code]
	return d.readableType, ok
}

// CategoryOf returns the display category of a type code.
func CategoryOf(code int16) Category {
	return registry[code].category
}

// SupportedChannels returns the delivery media a type can be sent over.
func SupportedChannels(code int16) []Channel {
	return registry[code].channels
}

// CleanupDuration returns how long notifications of this type are retained.
func CleanupDuration(code int16) time.Duration {
	return registry[code].cleanup
}

// RegisteredTypes returns every known type code, for building preset matrices.
func RegisteredTypes() []int16 {
	codes := make([]int16, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
