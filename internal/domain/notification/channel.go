package notification

// Channel is a delivery medium for course notifications.
type Channel string

const (
	ChannelWebapp Channel = "WEBAPP"
	ChannelPush   Channel = "PUSH"
	ChannelEmail  Channel = "EMAIL"
)

// Channels lists every delivery medium, in the order the settings UI shows them.
var Channels = []Channel{ChannelWebapp, ChannelPush, ChannelEmail}

// Category groups notification types for display purposes.
type Category string

const (
	CategoryCommunication Category = "COMMUNICATION"
	CategoryGeneral       Category = "GENERAL"
)
