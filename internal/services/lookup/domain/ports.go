package domain

import "context"

// SearcherPort is the single external entry point of the engine
// Both the corpus scanner and the indexed Postgres backend implement it,
// the caller cannot tell them apart beyond latency
type SearcherPort interface {
	Search(ctx context.Context, q Query) ([]WireRecord, error)
}
