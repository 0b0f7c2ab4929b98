package e2e_test

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shanxiaxiongyilang488-commits/line-bot-min/internal/config"
)

const (
	testChannelToken  = "e2e-channel-token"
	testChannelSecret = "e2e-channel-secret"
	expiredReplyToken = "expired"
)

var (
	testServices        *TestServices
	globalTestContainer sync.Once
	srvcLock            sync.Mutex
)

type TestServices struct {
	LineAPI  *fakeLineServer
	refs     atomic.Int64
	Settings config.Settings
}

func GetTestServices(t *testing.T) *TestServices {
	t.Helper()
	srvcLock.Lock()
	globalTestContainer.Do(func() {
		logger := zerolog.New(os.Stdout).Level(zerolog.WarnLevel)
		zerolog.DefaultContextLogger = &logger
		settings := config.Settings{
			ChannelAccessToken: testChannelToken,
			ChannelSecret:      testChannelSecret,
			LogLevel:           "warn",
		}

		lineAPI := setupFakeLineServer(t, logger)
		settings.LineAPIEndpoint = lineAPI.URL()
		settings.ApplyDefaults()

		testServices = &TestServices{
			LineAPI:  lineAPI,
			Settings: settings,
		}
	})
	srvcLock.Unlock()
	testServices.TeardownIfLastTest(t)
	return testServices
}

func (tc *TestServices) TeardownIfLastTest(t *testing.T) {
	tc.refs.Add(1)
	t.Cleanup(func() {
		refs := tc.refs.Add(-1)
		if refs != 0 {
			return
		}
		if err := tc.LineAPI.Close(); err != nil {
			t.Logf("Error closing fake LINE API: %v", err)
		}
		// reset the onceSetup to allow the next test to run if this one is closed
		globalTestContainer = sync.Once{}
	})
}
