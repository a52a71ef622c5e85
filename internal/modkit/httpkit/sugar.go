package httpkit

import (
	"net/http"

	phttp "bighole/internal/platform/net/http"
)

// PostJSON mounts a pure JSON handler under POST
// the request body is bound and validated before the handler runs
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
