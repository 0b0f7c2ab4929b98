// Package fakeline is an in-process stand-in for the LINE Messaging API reply endpoint.
// It records every authenticated reply call so tests and local runs can inspect what
// the webhook service sent.
package fakeline

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReplyPath is the Messaging API reply endpoint.
const ReplyPath = "/v2/bot/message/reply"

// Message is one message of a reply request.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ReplyCall is a reply request received by the fake.
type ReplyCall struct {
	ReplyToken string
	Messages   []Message
	Accepted   bool
	Time       time.Time
}

type replyRequest struct {
	ReplyToken           string    `json:"replyToken"`
	Messages             []Message `json:"messages"`
	NotificationDisabled bool      `json:"notificationDisabled"`
}

type sentMessage struct {
	ID         string `json:"id"`
	QuoteToken string `json:"quoteToken"`
}

type replyResponse struct {
	SentMessages []sentMessage `json:"sentMessages"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Server is the fake reply endpoint. Reply tokens are single use like on the real platform.
type Server struct {
	channelToken string
	logger       zerolog.Logger

	mu       sync.RWMutex
	received []ReplyCall
	used     map[string]bool
	rejected map[string]bool

	app *fiber.App
}

// New creates a fake that accepts requests authorized with channelToken. Replies to
// any of rejectedTokens fail with 400 Invalid reply token. Entries are trimmed and
// blank ones ignored.
func New(channelToken string, logger zerolog.Logger, rejectedTokens ...string) *Server {
	s := &Server{
		channelToken: channelToken,
		logger:       logger,
		used:         make(map[string]bool),
		rejected:     make(map[string]bool, len(rejectedTokens)),
	}
	for _, tok := range rejectedTokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			s.rejected[tok] = true
		}
	}

	s.app = fiber.New(fiber.Config{DisableStartupMessage: true})
	s.app.Post(ReplyPath, s.handleReply)
	return s
}

// App returns the fiber app serving the fake endpoint.
func (s *Server) App() *fiber.App {
	return s.app
}

// Received returns a copy of every authenticated reply call so far.
func (s *Server) Received() []ReplyCall {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ReplyCall, len(s.received))
	copy(result, s.received)
	return result
}

// Reset forgets received calls and used tokens.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = nil
	s.used = make(map[string]bool)
}

func (s *Server) handleReply(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) != "Bearer "+s.channelToken {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
			Message: "Authentication failed. Confirm that the access token in the authorization header is valid.",
		})
	}

	var req replyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Message: "The request body has 1 error(s)"})
	}

	accepted := s.record(req)
	s.logger.Info().
		Str("reply_token", req.ReplyToken).
		Int("messages", len(req.Messages)).
		Bool("accepted", accepted).
		Msg("Reply received")

	if !accepted {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Message: "Invalid reply token"})
	}

	sent := make([]sentMessage, len(req.Messages))
	for i := range sent {
		sent[i] = sentMessage{ID: uuid.NewString(), QuoteToken: uuid.NewString()}
	}
	return c.JSON(replyResponse{SentMessages: sent})
}

func (s *Server) record(req replyRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := req.ReplyToken != "" && !s.rejected[req.ReplyToken] && !s.used[req.ReplyToken]
	if accepted {
		s.used[req.ReplyToken] = true
	}
	s.received = append(s.received, ReplyCall{
		ReplyToken: req.ReplyToken,
		Messages:   req.Messages,
		Accepted:   accepted,
		Time:       time.Now(),
	})
	return accepted
}
