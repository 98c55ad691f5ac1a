package app

import (
	"log/slog"
	"mime"
	"os"
	"sync"
	"sync/atomic"
)

// TestModeEnv skips process startup when set to "1".
const TestModeEnv = "COSTINTEL_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
	mimeOnce     sync.Once
)

// staticTypes are the content types of the embedded assets. Minimal
// containers often ship without /etc/mime.types.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
	".svg": "image/svg+xml",
}

// InTestMode reports whether main should return before touching Redis or the network.
func InTestMode() bool {
	testModeOnce.Do(RefreshTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads the flag after the environment changed.
func RefreshTestMode() {
	testMode.Store(os.Getenv(TestModeEnv) == "1")
}

func registerStaticTypes(logger *slog.Logger) {
	mimeOnce.Do(func() {
		for ext, typ := range staticTypes {
			if mime.TypeByExtension(ext) != "" {
				continue
			}
			if err := mime.AddExtensionType(ext, typ); err != nil {
				logger.Warn("register mime type", slog.String("ext", ext), slog.Any("error", err))
			}
		}
	})
}
