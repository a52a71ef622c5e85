// Package domain defines the types and interfaces for the lookup service
package domain

import (
	"bighole/internal/core/keynorm"
	"bighole/internal/core/row"
)

// Query is one lookup request
type Query struct {
	Term string
	Kind keynorm.Kind
}

// Match is one row found to satisfy a query, with provenance
// Line numbers are 1-based over the raw file and include the header row
type Match struct {
	File   string
	Line   int
	Record row.Record
}

// Chunk is a contiguous range of data rows assigned to one scan task
// Start is inclusive and End exclusive, both 1-based over data rows
// (the header is not a data row)
type Chunk struct {
	Start int
	End   int
}

// Rows returns the number of data rows covered by the chunk
func (c Chunk) Rows() int { return c.End - c.Start }

// WireRecord is the external response shape, every field is a string and
// absent values carry the N/A sentinel
type WireRecord struct {
	Fbid       string `json:"fbid"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	School     string `json:"school"`
	Location   string `json:"location"`
	Gender     string `json:"gender"`
	ProfileURL string `json:"profile_url"`
}

// Wire maps a structured record into the external response shape
func Wire(r row.Record) WireRecord {
	return WireRecord{
		Fbid:       r.Fbid,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		School:     r.School,
		Location:   r.Location,
		Gender:     r.Gender,
		ProfileURL: r.ProfileURL,
	}
}
