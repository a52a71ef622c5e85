package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"bighole/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with throttling or your own middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// SearchStack bounds concurrent in-flight searches on top of CommonStack
// corpus scans are heavy, so excess callers queue instead of piling on
func SearchStack(limit, backlog int, wait time.Duration) []func(http.Handler) http.Handler {
	return append(CommonStack(), middleware.ThrottleBacklog(limit, backlog, wait))
}
