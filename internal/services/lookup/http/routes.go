// Package http provides the thin http transport for lookup
// It binds one request shape and hands the term to the single engine entry
// point, nothing else lives here
package http

import (
	stdhttp "net/http"

	"bighole/internal/core/keynorm"
	"bighole/internal/modkit/httpkit"
	"bighole/internal/services/lookup/domain"
)

// Register mounts lookup endpoints on the given router
func Register(r httpkit.Router, s domain.SearcherPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
}

type handlers struct{ svc domain.SearcherPort }

func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	recs, err := h.svc.Search(r.Context(), domain.Query{
		Term: in.Term,
		Kind: keynorm.Kind(in.Kind),
	})
	if err != nil {
		return nil, err
	}
	return domain.SearchOutput{Total: len(recs), Records: recs}, nil
}
