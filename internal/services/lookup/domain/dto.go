package domain

// SearchInput is the transport request for a lookup call
type SearchInput struct {
	Term string `json:"search_term" validate:"required"`
	Kind string `json:"search_type" validate:"required,oneof=fbid phone name"`
}

// SearchOutput is the transport response for a lookup call
type SearchOutput struct {
	Total   int          `json:"total"`
	Records []WireRecord `json:"records"`
}
