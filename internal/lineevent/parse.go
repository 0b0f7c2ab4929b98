package lineevent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog"
)

type callbackEnvelope struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

// Parse decodes a verified webhook body. A body without an events field yields no events.
// Only a body that is not a webhook envelope is an error: an event that fails to decode
// is logged and kept as a KindUnknown event so its siblings are still handled.
func Parse(ctx context.Context, body []byte) ([]Event, error) {
	var envelope callbackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode webhook body: %w", err)
	}
	events := make([]Event, 0, len(envelope.Events))
	for i, raw := range envelope.Events {
		ev, err := webhook.UnmarshalEvent(raw)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int("event_index", i).Msg("Skipping undecodable event")
			events = append(events, Event{Kind: KindUnknown})
			continue
		}
		events = append(events, FromWebhookEvent(ev))
	}
	return events, nil
}

// FromWebhookEvent maps an SDK event onto the tagged Event.
func FromWebhookEvent(ev webhook.EventInterface) Event {
	switch e := ev.(type) {
	case webhook.MessageEvent:
		return Event{
			Kind:           KindMessage,
			ReplyToken:     e.ReplyToken,
			WebhookEventID: e.WebhookEventId,
			Message:        fromMessageContent(e.Message),
		}
	case webhook.FollowEvent:
		return Event{Kind: KindFollow, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.JoinEvent:
		return Event{Kind: KindJoin, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.PostbackEvent:
		return Event{Kind: KindPostback, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.UnfollowEvent:
		return Event{Kind: KindUnfollow, WebhookEventID: e.WebhookEventId}
	case webhook.LeaveEvent:
		return Event{Kind: KindLeave, WebhookEventID: e.WebhookEventId}
	case webhook.MemberJoinedEvent:
		return Event{Kind: KindMemberJoined, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.MemberLeftEvent:
		return Event{Kind: KindMemberLeft, WebhookEventID: e.WebhookEventId}
	case webhook.BeaconEvent:
		return Event{Kind: KindBeacon, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.AccountLinkEvent:
		return Event{Kind: KindAccountLink, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.ThingsEvent:
		return Event{Kind: KindThings, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	case webhook.UnsendEvent:
		return Event{Kind: KindUnsend, WebhookEventID: e.WebhookEventId}
	case webhook.VideoPlayCompleteEvent:
		return Event{Kind: KindVideoPlayComplete, ReplyToken: e.ReplyToken, WebhookEventID: e.WebhookEventId}
	default:
		return Event{Kind: KindUnknown}
	}
}

func fromMessageContent(content webhook.MessageContentInterface) *Message {
	switch m := content.(type) {
	case webhook.TextMessageContent:
		return &Message{Kind: MessageText, ID: m.Id, Text: m.Text}
	case webhook.ImageMessageContent:
		return &Message{Kind: MessageImage, ID: m.Id}
	case webhook.VideoMessageContent:
		return &Message{Kind: MessageVideo, ID: m.Id}
	case webhook.AudioMessageContent:
		return &Message{Kind: MessageAudio, ID: m.Id}
	case webhook.FileMessageContent:
		return &Message{Kind: MessageFile, ID: m.Id}
	case webhook.LocationMessageContent:
		return &Message{Kind: MessageLocation, ID: m.Id}
	case webhook.StickerMessageContent:
		return &Message{Kind: MessageSticker, ID: m.Id}
	case nil:
		return nil
	default:
		return &Message{Kind: MessageUnknown}
	}
}
