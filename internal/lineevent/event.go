// Package lineevent holds the inbound LINE webhook events and the outbound echo reply
// this service works with.
package lineevent

// EventKind is the tag of an inbound webhook event.
type EventKind string

const (
	KindMessage           EventKind = "message"
	KindFollow            EventKind = "follow"
	KindUnfollow          EventKind = "unfollow"
	KindJoin              EventKind = "join"
	KindLeave             EventKind = "leave"
	KindMemberJoined      EventKind = "memberJoined"
	KindMemberLeft        EventKind = "memberLeft"
	KindPostback          EventKind = "postback"
	KindBeacon            EventKind = "beacon"
	KindAccountLink       EventKind = "accountLink"
	KindThings            EventKind = "things"
	KindUnsend            EventKind = "unsend"
	KindVideoPlayComplete EventKind = "videoPlayComplete"
	KindUnknown           EventKind = "unknown"
)

// MessageKind is the tag of the message carried by a message event.
type MessageKind string

const (
	MessageText     MessageKind = "text"
	MessageImage    MessageKind = "image"
	MessageVideo    MessageKind = "video"
	MessageAudio    MessageKind = "audio"
	MessageFile     MessageKind = "file"
	MessageLocation MessageKind = "location"
	MessageSticker  MessageKind = "sticker"
	MessageUnknown  MessageKind = "unknown"
)

// Event is a single inbound webhook event.
type Event struct {
	Kind EventKind
	// ReplyToken is single-use and expires shortly after delivery. Empty for kinds
	// that cannot be replied to.
	ReplyToken string
	// WebhookEventID identifies the event in logs. It is never used to deduplicate.
	WebhookEventID string
	// Message is set only when Kind is KindMessage.
	Message *Message
}

// Message is the payload of a message event.
type Message struct {
	Kind MessageKind
	ID   string
	// Text is set only when Kind is MessageText.
	Text string
}

// TextMessage returns the message text and true when the event is a text message.
func (e Event) TextMessage() (string, bool) {
	if e.Kind != KindMessage || e.Message == nil || e.Message.Kind != MessageText {
		return "", false
	}
	return e.Message.Text, true
}
