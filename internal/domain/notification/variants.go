package notification

// Variant is one concrete kind of course notification. The set of variants is
// closed: every variant is a plain struct registered in the type table in
// registry.go, and a variant's parameter map is the exact payload that gets
// persisted next to its notification record.
type Variant interface {
	TypeCode() int16
	CourseID() int64
	Parameters() map[string]string
}

// Type codes are part of the stored data and must never be reused for a
// different variant.
const (
	TypeNewPost          int16 = 1
	TypeNewAnnouncement  int16 = 2
	TypeNewMention       int16 = 3
	TypeExerciseAssessed int16 = 4
	TypeChannelDeleted   int16 = 5
	TypeAddedToChannel   int16 = 6
)

// NewPostNotification is sent when a message is posted in a conversation the
// recipient is part of.
type NewPostNotification struct {
	Course              int64
	CourseTitle         string
	CourseIcon          string
	PostID              string
	PostMarkdownContent string
	ChannelID           string
	ChannelName         string
	ChannelType         string
	AuthorName          string
	AuthorImageURL      string
	AuthorID            string
}

func (n NewPostNotification) TypeCode() int16 { return TypeNewPost }
func (n NewPostNotification) CourseID() int64 { return n.Course }

func (n NewPostNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle":         n.CourseTitle,
		"courseIcon":          n.CourseIcon,
		"postId":              n.PostID,
		"postMarkdownContent": n.PostMarkdownContent,
		"channelId":           n.ChannelID,
		"channelName":         n.ChannelName,
		"channelType":         n.ChannelType,
		"authorName":          n.AuthorName,
		"authorImageUrl":      n.AuthorImageURL,
		"authorId":            n.AuthorID,
	})
}

// NewAnnouncementNotification is sent for posts in announcement channels.
// Announcements are delivered even when the recipient muted the channel.
type NewAnnouncementNotification struct {
	Course              int64
	CourseTitle         string
	CourseIcon          string
	PostID              string
	PostTitle           string
	PostMarkdownContent string
	ChannelID           string
	AuthorName          string
	AuthorImageURL      string
	AuthorID            string
}

func (n NewAnnouncementNotification) TypeCode() int16 { return TypeNewAnnouncement }
func (n NewAnnouncementNotification) CourseID() int64 { return n.Course }

func (n NewAnnouncementNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle":         n.CourseTitle,
		"courseIcon":          n.CourseIcon,
		"postId":              n.PostID,
		"postTitle":           n.PostTitle,
		"postMarkdownContent": n.PostMarkdownContent,
		"channelId":           n.ChannelID,
		"authorName":          n.AuthorName,
		"authorImageUrl":      n.AuthorImageURL,
		"authorId":            n.AuthorID,
	})
}

// NewMentionNotification is sent to users mentioned in a post, separately from
// the NewPostNotification the rest of the conversation receives.
type NewMentionNotification struct {
	Course              int64
	CourseTitle         string
	CourseIcon          string
	PostID              string
	PostMarkdownContent string
	ChannelID           string
	ChannelName         string
	AuthorName          string
	AuthorImageURL      string
	AuthorID            string
}

func (n NewMentionNotification) TypeCode() int16 { return TypeNewMention }
func (n NewMentionNotification) CourseID() int64 { return n.Course }

func (n NewMentionNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle":         n.CourseTitle,
		"courseIcon":          n.CourseIcon,
		"postId":              n.PostID,
		"postMarkdownContent": n.PostMarkdownContent,
		"channelId":           n.ChannelID,
		"channelName":         n.ChannelName,
		"authorName":          n.AuthorName,
		"authorImageUrl":      n.AuthorImageURL,
		"authorId":            n.AuthorID,
	})
}

// ExerciseAssessedNotification is sent when a grading result for the
// recipient's submission is published.
type ExerciseAssessedNotification struct {
	Course       int64
	CourseTitle  string
	CourseIcon   string
	ExerciseID   string
	ExerciseName string
	ExerciseType string
	Score        string
	MaxPoints    string
}

func (n ExerciseAssessedNotification) TypeCode() int16 { return TypeExerciseAssessed }
func (n ExerciseAssessedNotification) CourseID() int64 { return n.Course }

func (n ExerciseAssessedNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle":  n.CourseTitle,
		"courseIcon":   n.CourseIcon,
		"exerciseId":   n.ExerciseID,
		"exerciseName": n.ExerciseName,
		"exerciseType": n.ExerciseType,
		"score":        n.Score,
		"maxPoints":    n.MaxPoints,
	})
}

// ChannelDeletedNotification tells former members that a channel is gone.
type ChannelDeletedNotification struct {
	Course       int64
	CourseTitle  string
	CourseIcon   string
	ChannelName  string
	DeletingUser string
}

func (n ChannelDeletedNotification) TypeCode() int16 { return TypeChannelDeleted }
func (n ChannelDeletedNotification) CourseID() int64 { return n.Course }

func (n ChannelDeletedNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle":  n.CourseTitle,
		"courseIcon":   n.CourseIcon,
		"channelName":  n.ChannelName,
		"deletingUser": n.DeletingUser,
	})
}

// AddedToChannelNotification is sent to users that were added to a channel.
type AddedToChannelNotification struct {
	Course      int64
	CourseTitle string
	CourseIcon  string
	ChannelID   string
	ChannelName string
	AddingUser  string
}

func (n AddedToChannelNotification) TypeCode() int16 { return TypeAddedToChannel }
func (n AddedToChannelNotification) CourseID() int64 { return n.Course }

func (n AddedToChannelNotification) Parameters() map[string]string {
	return params(map[string]string{
		"courseTitle": n.CourseTitle,
		"courseIcon":  n.CourseIcon,
		"channelId":   n.ChannelID,
		"channelName": n.ChannelName,
		"addingUser":  n.AddingUser,
	})
}

// params drops empty values so only meaningful pairs are persisted.
func params(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
