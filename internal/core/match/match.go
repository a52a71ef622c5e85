// Package match decides whether one parsed row satisfies a lookup term
package match

import (
	"strings"

	"bighole/internal/core/keynorm"
	"bighole/internal/core/row"
)

// Row tests fields against the variant set and extracts a Record on success
// A row shorter than the referenced columns simply fails to match
func Row(f row.Fields, vs keynorm.VariantSet) (row.Record, bool) {
	if vs.Empty() {
		return row.Record{}, false
	}
	var hit bool
	switch vs.Kind {
	case keynorm.KindPhone:
		hit = equalsAny(f.At(row.ColPhone), vs.Exact)
	case keynorm.KindFbid:
		// fbid column first, email only when the fbid misses
		hit = equalsAny(f.At(row.ColFbid), vs.Exact) ||
			equalsAny(f.At(row.ColEmail), vs.Exact)
	case keynorm.KindName:
		hit = nameContains(f, vs.Fold)
	}
	if !hit {
		return row.Record{}, false
	}
	return row.FromFields(f), true
}

func equalsAny(v string, variants []string) bool {
	if v == "" {
		return false
	}
	for _, want := range variants {
		if v == want {
			return true
		}
	}
	return false
}

// nameContains matches the folded needle against the joined full name and
// against each name column on its own
func nameContains(f row.Fields, needle string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(keynorm.Fold(f.FullName()), needle) {
		return true
	}
	return strings.Contains(keynorm.Fold(f.At(row.ColFirstName)), needle) ||
		strings.Contains(keynorm.Fold(f.At(row.ColLastName)), needle)
}
