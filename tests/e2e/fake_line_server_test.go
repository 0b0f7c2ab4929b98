package e2e_test

import (
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/fakeline"
	"github.com/stretchr/testify/require"
)

// fakeLineServer serves the fake reply endpoint on a loopback port.
type fakeLineServer struct {
	*fakeline.Server
	listener net.Listener
}

func setupFakeLineServer(t *testing.T, logger zerolog.Logger) *fakeLineServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &fakeLineServer{
		Server:   fakeline.New(testChannelToken, logger, expiredReplyToken),
		listener: listener,
	}
	go func() {
		if err := srv.App().Listener(listener); err != nil {
			logger.Error().Err(err).Msg("fake LINE API stopped")
		}
	}()
	return srv
}

func (s *fakeLineServer) URL() string {
	return "http://" + s.listener.Addr().String()
}

// CallsFor returns the received reply calls that used one of the given reply tokens.
func (s *fakeLineServer) CallsFor(tokens ...string) []fakeline.ReplyCall {
	wanted := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		wanted[tok] = true
	}
	var calls []fakeline.ReplyCall
	for _, call := range s.Received() {
		if wanted[call.ReplyToken] {
			calls = append(calls, call)
		}
	}
	return calls
}

func (s *fakeLineServer) Close() error {
	return s.App().Shutdown()
}
