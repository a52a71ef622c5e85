// Package repo provides the indexed Postgres backend for lookup
// It answers the same logical contract as the corpus scanner, find by
// normalized key, against a people table kept by the bulk importer
// Index lifecycle (create and drop) is owned by migrations, not this code
package repo

import (
	"context"
	"fmt"
	"strings"

	"bighole/internal/core/keynorm"
	"bighole/internal/core/row"
	"bighole/internal/modkit/repokit"
	perr "bighole/internal/platform/errors"
	"bighole/internal/platform/store"
	pstrings "bighole/internal/platform/strings"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the lookup repository
type Storage interface {
	FindByKey(ctx context.Context, vs keynorm.VariantSet, limit int) ([]row.Record, error)
	WriteBatch(ctx context.Context, recs []PersonWrite) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PersonWrite is one person row headed for the people table
// Blank columns are stored as NULL so the partial indexes stay sparse
type PersonWrite struct {
	Fbid       string
	Phone      string
	FirstName  string
	LastName   string
	Name       string
	Gender     string
	ProfileURL string
	Location   string
	School     string
	Email      string
}

type pg struct{ q repokit.Queryer }

const selectCols = `
	COALESCE(fbid, ''), COALESCE(name, ''), COALESCE(phone, ''),
	COALESCE(email, ''), COALESCE(school, ''), COALESCE(location, ''),
	COALESCE(gender, ''), COALESCE(profile_url, '')`

// FindByKey implements Storage
// phone and fbid kinds use indexed equality against any variant, names use
// a case-insensitive substring over name, first_name, and last_name
func (s *pg) FindByKey(ctx context.Context, vs keynorm.VariantSet, limit int) ([]row.Record, error) {
	if vs.Empty() {
		return nil, nil
	}

	var sql string
	var args []any
	switch vs.Kind {
	case keynorm.KindPhone:
		sql = `SELECT` + selectCols + ` FROM people WHERE phone = ANY($1) LIMIT $2`
		args = []any{vs.Exact, limit}
	case keynorm.KindFbid:
		sql = `SELECT` + selectCols + ` FROM people WHERE fbid = ANY($1) OR email = ANY($1) LIMIT $2`
		args = []any{vs.Exact, limit}
	case keynorm.KindName:
		pat := "%" + escapeLike(vs.Fold) + "%"
		sql = `SELECT` + selectCols + ` FROM people
			WHERE name ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1 LIMIT $2`
		args = []any{pat, limit}
	default:
		return nil, nil
	}

	out, err := store.Many(ctx, s.q, scanPerson, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "lookup people kind=%s", vs.Kind)
	}
	return out, nil
}

// scanPerson maps one people row, blanks become the shared N/A sentinel
func scanPerson(r store.Row) (row.Record, error) {
	var rec row.Record
	if err := r.Scan(
		&rec.Fbid, &rec.Name, &rec.Phone, &rec.Email,
		&rec.School, &rec.Location, &rec.Gender, &rec.ProfileURL,
	); err != nil {
		return row.Record{}, err
	}
	return sentinel(rec), nil
}

// WriteBatch implements Storage with a single multi-row insert
// Rows without an fbid are the caller's problem, duplicates are tolerated
func (s *pg) WriteBatch(ctx context.Context, recs []PersonWrite) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO people
		(fbid, phone, first_name, last_name, name, gender, profile_url, location, school, email) VALUES `)

	args := make([]any, 0, len(recs)*10)
	for i, p := range recs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*10 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4,
			base+5, base+6, base+7, base+8, base+9)
		args = append(args,
			p.Fbid,
			pstrings.SQLNull(p.Phone), pstrings.SQLNull(p.FirstName), pstrings.SQLNull(p.LastName),
			pstrings.SQLNull(p.Name), pstrings.SQLNull(p.Gender), pstrings.SQLNull(p.ProfileURL),
			pstrings.SQLNull(p.Location), pstrings.SQLNull(p.School), pstrings.SQLNull(p.Email),
		)
	}
	// re-imports are idempotent per fbid
	sb.WriteString(` ON CONFLICT (fbid) DO NOTHING`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, perr.AttachFieldFromPg(perr.FromPostgresf(err, "insert people batch n=%d", len(recs)))
	}
	return tag.RowsAffected(), nil
}

// Count implements Storage
func (s *pg) Count(ctx context.Context) (int64, error) {
	n, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM people`)
	if err != nil {
		return 0, perr.FromPostgresf(err, "count people")
	}
	return n, nil
}

// sentinel maps blank columns to the shared N/A formatting contract
func sentinel(r row.Record) row.Record {
	r.Fbid = row.OrNA(r.Fbid)
	r.Name = row.OrNA(r.Name)
	r.Phone = row.OrNA(r.Phone)
	r.Email = row.OrNA(r.Email)
	r.School = row.OrNA(r.School)
	r.Gender = row.OrNA(r.Gender)
	r.Location = row.OrNA(r.Location)
	r.ProfileURL = row.OrNA(r.ProfileURL)
	return r
}

// escapeLike escapes the ILIKE metacharacters in a user term
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
