package deps

import (
	"time"

	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/persistence"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time     // for testing, defaults to time.Now
	AllowedHosts []string             // Host headers allowed to access the server
	AllowedCIDRS []string             // IPs allowed to access the API
	TrustProxy   bool                 // true if running behind a trusted reverse proxy
	RateBurst    int                  // per-IP burst on mutating routes
	RatePerMin   int                  // per-IP refill on mutating routes
	Library      *library.Store       // the book collection
	Adapter      *persistence.Adapter // theme storage and backend health
	Storage      string               // backend name, reported by /infra
	FlushTrigger chan struct{}        // Channel to trigger a manual flush
	Shutdown     <-chan struct{}      // closed when the server starts shutting down
}
