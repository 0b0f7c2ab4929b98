package webhook

import (
	"context"
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/lineevent"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 100

type ReplySender interface {
	SendReply(ctx context.Context, replyToken string, reply lineevent.Reply) error
}

// WebhookController receives LINE webhook batches and echoes text messages back to their sender.
type WebhookController struct {
	sender      ReplySender
	logger      zerolog.Logger
	concurrency int
}

// NewWebhookController creates a new WebhookController. concurrency bounds the
// number of replies in flight for one batch.
func NewWebhookController(sender ReplySender, logger zerolog.Logger, concurrency int) *WebhookController {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &WebhookController{
		sender:      sender,
		logger:      logger,
		concurrency: concurrency,
	}
}

// HandleWebhook godoc
// @Summary      Receive LINE webhook events
// @Description  Receives a batch of LINE Messaging API events. Every text message is answered with an echo reply. The response is always 200 with an empty body once every event has been handled, whatever the outcome of the individual replies.
// @Tags         Webhook
// @Accept       json
// @Param        X-Line-Signature  header  string  true  "Base64 HMAC-SHA256 of the body keyed with the channel secret"
// @Success      200  "All events handled"
// @Failure      400  "Body is not a webhook payload"
// @Failure      401  "Missing or invalid signature"
// @Router       /webhook [post]
// @Router       /callback [post]
func (w *WebhookController) HandleWebhook(c *fiber.Ctx) error {
	body := c.Body()
	logger := w.logger.With().Str("batch_id", uuid.NewString()).Logger()
	logger.Debug().Str("body", string(body)).Msg("Received webhook body")

	ctx := logger.WithContext(c.UserContext())
	events, err := lineevent.Parse(ctx, body)
	if err != nil {
		return richerrors.Error{
			ExternalMsg: "Invalid webhook payload",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}

	logger.Info().Int("event_count", len(events)).Msg("Processing webhook batch")
	w.processEvents(ctx, events)

	c.Status(fiber.StatusOK)
	return nil
}

// processEvents handles every event concurrently and returns once all of them have settled.
func (w *WebhookController) processEvents(ctx context.Context, events []lineevent.Event) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(w.concurrency)
	for _, ev := range events {
		metrics.EventsReceived.WithLabelValues(string(ev.Kind)).Inc()
		group.Go(func() error {
			if err := w.handleEvent(groupCtx, ev); err != nil {
				zerolog.Ctx(groupCtx).Error().
					Err(err).
					Str("webhook_event_id", ev.WebhookEventID).
					Str("event_kind", string(ev.Kind)).
					Msg("failed to handle event")
			}
			// errors are logged per event and never fail the group
			return nil
		})
	}
	_ = group.Wait()
}

func (w *WebhookController) handleEvent(ctx context.Context, ev lineevent.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling event: %v", r)
		}
	}()

	switch ev.Kind {
	case lineevent.KindMessage:
		text, ok := ev.TextMessage()
		if !ok {
			zerolog.Ctx(ctx).Debug().Str("webhook_event_id", ev.WebhookEventID).Msg("Skipping non-text message")
			return nil
		}
		return w.reply(ctx, ev.ReplyToken, lineevent.EchoReply(text))
	case lineevent.KindFollow, lineevent.KindUnfollow, lineevent.KindJoin, lineevent.KindLeave,
		lineevent.KindMemberJoined, lineevent.KindMemberLeft, lineevent.KindPostback,
		lineevent.KindBeacon, lineevent.KindAccountLink, lineevent.KindThings,
		lineevent.KindUnsend, lineevent.KindVideoPlayComplete, lineevent.KindUnknown:
		zerolog.Ctx(ctx).Debug().Str("event_kind", string(ev.Kind)).Msg("Skipping event")
		return nil
	default:
		zerolog.Ctx(ctx).Warn().Str("event_kind", string(ev.Kind)).Msg("Unhandled event kind")
		return nil
	}
}

func (w *WebhookController) reply(ctx context.Context, replyToken string, reply lineevent.Reply) error {
	if err := w.sender.SendReply(ctx, replyToken, reply); err != nil {
		metrics.RepliesSent.WithLabelValues(metrics.ResultFailure).Inc()
		return fmt.Errorf("failed to send reply: %w", err)
	}
	metrics.RepliesSent.WithLabelValues(metrics.ResultSuccess).Inc()
	zerolog.Ctx(ctx).Debug().Msg("Reply sent")
	return nil
}
