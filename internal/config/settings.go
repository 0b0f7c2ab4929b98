package config

import (
	"errors"
	"time"
)

const (
	defaultPort             = 3000
	defaultMonPort          = 8888
	defaultLogLevel         = "info"
	defaultServiceName      = "line-webhook-api"
	defaultLineAPIEndpoint  = "https://api.line.me"
	defaultReplyTimeout     = 30 * time.Second
	defaultReplyConcurrency = 100
)

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT"`
	MonPort     int    `env:"MON_PORT"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME"`

	ChannelAccessToken string        `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	ChannelSecret      string        `env:"LINE_CHANNEL_SECRET"`
	LineAPIEndpoint    string        `env:"LINE_API_ENDPOINT"`
	ReplyTimeout       time.Duration `env:"REPLY_TIMEOUT"`
	ReplyConcurrency   int           `env:"REPLY_CONCURRENCY"`
}

// ApplyDefaults fills every unset optional field.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.MonPort == 0 {
		s.MonPort = defaultMonPort
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	if s.ServiceName == "" {
		s.ServiceName = defaultServiceName
	}
	if s.LineAPIEndpoint == "" {
		s.LineAPIEndpoint = defaultLineAPIEndpoint
	}
	if s.ReplyTimeout <= 0 {
		s.ReplyTimeout = defaultReplyTimeout
	}
	if s.ReplyConcurrency < 1 {
		s.ReplyConcurrency = defaultReplyConcurrency
	}
}

// Validate reports missing channel credentials.
func (s *Settings) Validate() error {
	var errs []error
	if s.ChannelAccessToken == "" {
		errs = append(errs, errors.New("LINE_CHANNEL_ACCESS_TOKEN is required"))
	}
	if s.ChannelSecret == "" {
		errs = append(errs, errors.New("LINE_CHANNEL_SECRET is required"))
	}
	return errors.Join(errs...)
}
