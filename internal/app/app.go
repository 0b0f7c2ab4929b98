package app

import (
	"fmt"
	"net/http"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
	_ "github.com/shanxiaxiongyilang488-commits/line-bot-min/docs" // Import Swagger docs
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/config"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/controllers/webhook"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/metrics"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/services/replysender"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/pkg/middleware"
)

// RootMessage is the body served on GET /.
const RootMessage = "LINE webhook is running."

// CreateServers builds the reply sender from settings and the web app around it.
func CreateServers(settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	sender, err := replysender.NewReplySender(
		settings.ChannelAccessToken,
		settings.LineAPIEndpoint,
		&http.Client{Timeout: settings.ReplyTimeout},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply sender: %w", err)
	}
	return CreateFiberApp(logger, sender, settings), nil
}

// CreateFiberApp sets up the routes of the webhook server.
func CreateFiberApp(logger zerolog.Logger, sender webhook.ReplySender, settings *config.Settings) *fiber.App {
	logger.Info().Msg("Starting LINE webhook API...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(RootMessage)
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	signatureMiddleware := middleware.LineSignature(settings.ChannelSecret, func(c *fiber.Ctx) {
		metrics.SignatureRejected.Inc()
		logger.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("Rejected webhook request with invalid signature")
	})
	webhookController := webhook.NewWebhookController(sender, logger, settings.ReplyConcurrency)
	logger.Info().Msg("Registering routes...")

	app.Post("/webhook", signatureMiddleware, webhookController.HandleWebhook)
	app.Post("/callback", signatureMiddleware, webhookController.HandleWebhook)

	return app
}
