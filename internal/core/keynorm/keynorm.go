// Package keynorm expands a raw lookup term into the set of literal forms
// considered equivalent for matching
// Rules
// 1 phone numbers swap between local leading zero and the +20 country prefix
// 2 fbids swap between bare id and the @facebook.com mail form
// 3 names are case folded and matched by substring containment downstream
package keynorm

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind selects which normalization rules apply to a term
type Kind string

const (
	// KindFbid is an exact match lookup against the fbid or email columns
	KindFbid Kind = "fbid"
	// KindPhone is an exact match lookup against the phone column
	KindPhone Kind = "phone"
	// KindName is a substring lookup against the name columns
	KindName Kind = "name"
)

// Valid reports whether k is one of the supported kinds
func (k Kind) Valid() bool {
	switch k {
	case KindFbid, KindPhone, KindName:
		return true
	}
	return false
}

const (
	countryPrefix = "+20"
	fbidSuffix    = "@facebook.com"
)

// VariantSet holds the literal forms equivalent to one term
// Exact variants are compared by equality, name terms by folded substring
type VariantSet struct {
	Kind  Kind
	Exact []string // fbid and phone kinds, at most 2 entries
	Fold  string   // name kind, single folded needle
}

// Empty reports whether the set can never match anything
func (v VariantSet) Empty() bool {
	return len(v.Exact) == 0 && v.Fold == ""
}

// Variants normalizes term according to kind
// Pure and total, a blank or malformed term yields a set that matches nothing
func Variants(term string, kind Kind) VariantSet {
	term = strings.TrimSpace(term)
	if term == "" {
		return VariantSet{Kind: kind}
	}
	switch kind {
	case KindPhone:
		return VariantSet{Kind: kind, Exact: phoneVariants(term)}
	case KindFbid:
		return VariantSet{Kind: kind, Exact: fbidVariants(term)}
	case KindName:
		return VariantSet{Kind: kind, Fold: Fold(term)}
	}
	return VariantSet{Kind: kind}
}

// phoneVariants swaps the local 0 prefix and the country prefix
func phoneVariants(phone string) []string {
	switch {
	case strings.HasPrefix(phone, "0"):
		return []string{phone, countryPrefix + phone[1:]}
	case strings.HasPrefix(phone, countryPrefix):
		return []string{phone, "0" + phone[len(countryPrefix):]}
	}
	return []string{phone}
}

// fbidVariants swaps the bare id and the mail-suffixed form
func fbidVariants(fbid string) []string {
	if strings.Contains(fbid, fbidSuffix) {
		return []string{fbid, strings.ReplaceAll(fbid, fbidSuffix, "")}
	}
	return []string{fbid, fbid + fbidSuffix}
}

// Fold lower-cases s for caseless comparison using unicode case folding
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
