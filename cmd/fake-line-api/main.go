package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/DIMO-Network/server-garage/pkg/env"
	"github.com/DIMO-Network/server-garage/pkg/logging"
	"github.com/DIMO-Network/server-garage/pkg/runner"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/fakeline"
	"golang.org/x/sync/errgroup"
)

type settings struct {
	Port               int    `env:"FAKE_LINE_PORT"`
	ChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	RejectedTokens     string `env:"FAKE_LINE_REJECTED_TOKENS"`
}

func main() {
	logger := logging.GetAndSetDefaultLogger("fake-line-api")
	mainCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	envFile := flag.String("env-file", ".env", "path to env file")
	flag.Parse()

	s, err := env.LoadSettings[settings](*envFile)
	if err != nil {
		log.Fatalf("could not load settings: %s", err)
	}
	if s.Port == 0 {
		s.Port = 4001
	}
	if s.RejectedTokens == "" {
		s.RejectedTokens = "expired"
	}
	if s.ChannelAccessToken == "" {
		logger.Fatal().Msg("LINE_CHANNEL_ACCESS_TOKEN is required")
	}

	fake := fakeline.New(s.ChannelAccessToken, logger, strings.Split(s.RejectedTokens, ",")...)

	group, groupCtx := errgroup.WithContext(mainCtx)
	logger.Info().Str("port", strconv.Itoa(s.Port)).Msg("Starting fake LINE API")
	runner.RunFiber(groupCtx, group, fake.App(), ":"+strconv.Itoa(s.Port))

	if err := group.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed.")
	}
	logger.Info().Msg("Server stopped.")
}
