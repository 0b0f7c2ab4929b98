package replysender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/lineevent"
)

const (
	// ReplyFailureCode is the code returned when a reply could not be delivered.
	ReplyFailureCode = -1

	// Default timeout for reply requests
	defaultReplyTimeout = 30 * time.Second
)

var errEmptyReplyToken = errors.New("empty reply token")

// ReplySender delivers replies through the LINE Messaging API.
type ReplySender struct {
	channelToken string
	options      []messaging_api.MessagingApiAPIOption
}

// NewReplySender creates a ReplySender for the given channel access token. An empty
// endpoint keeps the SDK default, a nil client gets a client with a 30s timeout.
func NewReplySender(channelToken, endpoint string, client *http.Client) (*ReplySender, error) {
	if client == nil {
		client = &http.Client{
			Timeout: defaultReplyTimeout,
		}
	}
	options := []messaging_api.MessagingApiAPIOption{messaging_api.WithHTTPClient(client)}
	if endpoint != "" {
		options = append(options, messaging_api.WithEndpoint(endpoint))
	}
	// Surfaces a malformed endpoint at construction.
	if _, err := messaging_api.NewMessagingApiAPI(channelToken, options...); err != nil {
		return nil, fmt.Errorf("failed to create messaging API client: %w", err)
	}
	return &ReplySender{
		channelToken: channelToken,
		options:      options,
	}, nil
}

// SendReply sends one text message against replyToken.
// Returns error for failures, nil for success
func (s *ReplySender) SendReply(ctx context.Context, replyToken string, reply lineevent.Reply) error {
	if replyToken == "" {
		return richerrors.Error{
			Code: ReplyFailureCode,
			Err:  errEmptyReplyToken,
		}
	}
	if err := ctx.Err(); err != nil {
		return richerrors.Error{
			Code: ReplyFailureCode,
			Err:  fmt.Errorf("reply not sent: %w", err),
		}
	}

	// The SDK client keeps its context on the instance, so each reply gets its own.
	api, err := messaging_api.NewMessagingApiAPI(s.channelToken, s.options...)
	if err != nil {
		return fmt.Errorf("failed to create messaging API client: %w", err)
	}

	resp, _, err := api.WithContext(ctx).ReplyMessageWithHttpInfo(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: reply.Text},
		},
	})
	if err != nil {
		if resp != nil && resp.StatusCode/100 == 2 {
			// accepted by LINE; only the response body was unreadable
			return nil
		}
		if resp != nil {
			return richerrors.Error{
				Code: ReplyFailureCode,
				Err:  fmt.Errorf("reply returned status code %d: %w", resp.StatusCode, err),
			}
		}
		return richerrors.Error{
			Code: ReplyFailureCode,
			Err:  fmt.Errorf("failed to POST reply: %w", err),
		}
	}

	return nil
}
