// Package row defines the fixed column layout of the corpus files and the
// positional field accessor used by every scanner and the importer
// Rows routinely carry fewer columns than the schema references, short rows
// degrade to absent fields rather than erroring
package row

import "strings"

// Column offsets within a data row
// The layout is fixed across every corpus file, unreferenced columns are noise
const (
	ColFbid       = 0
	ColPhone      = 3
	ColFirstName  = 6
	ColLastName   = 7
	ColGender     = 8
	ColProfileURL = 9
	ColLocation   = 16
	ColSchool     = 17
	ColEmail      = 19
)

// NotAvailable is the sentinel reported for absent or blank columns
const NotAvailable = "N/A"

// Fields is one parsed data row addressed by column offset
type Fields []string

// At returns the value at column i, or "" when the row is too short
// The empty string is the explicit absent value, callers never index past it
func (f Fields) At(i int) string {
	if i < 0 || i >= len(f) {
		return ""
	}
	return f[i]
}

// FullName joins the first and last name columns with a single space
// Either side may be absent, the join is trimmed
func (f Fields) FullName() string {
	return strings.TrimSpace(f.At(ColFirstName) + " " + f.At(ColLastName))
}

// Record is the structured form of one matched row
type Record struct {
	Fbid       string
	Name       string
	Phone      string
	Email      string
	School     string
	Location   string
	Gender     string
	ProfileURL string
}

// FromFields extracts a Record by positional lookup, substituting the
// NotAvailable sentinel for any absent or empty column
func FromFields(f Fields) Record {
	return Record{
		Fbid:       OrNA(f.At(ColFbid)),
		Name:       OrNA(f.FullName()),
		Phone:      OrNA(f.At(ColPhone)),
		Email:      OrNA(f.At(ColEmail)),
		School:     OrNA(f.At(ColSchool)),
		Location:   OrNA(f.At(ColLocation)),
		Gender:     OrNA(f.At(ColGender)),
		ProfileURL: OrNA(f.At(ColProfileURL)),
	}
}

// OrNA returns the NotAvailable sentinel for blank values
// The indexed backend uses it too so both backends format identically
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
