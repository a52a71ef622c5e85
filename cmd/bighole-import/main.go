package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bighole/internal/core/row"
	"bighole/internal/modkit/repokit"
	"bighole/internal/platform/config"
	perr "bighole/internal/platform/errors"
	"bighole/internal/platform/logger"
	"bighole/internal/platform/store"

	lookuprepo "bighole/internal/services/lookup/repo"
	"bighole/internal/services/lookup/scan"
)

// One-shot bulk load of the CSV corpus into the indexed Postgres backend.
// Rows without an fbid are skipped and re-runs are idempotent, the insert
// tolerates duplicate keys.

const maxLineBytes = 16 * 1024 * 1024

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	lookCfg := root.Prefix("CORE_LOOKUP_")

	l := logger.Get()

	var (
		fDir   = flag.String("dir", lookCfg.MayString("CSV_DIR", "csv"), "corpus directory")
		fBatch = flag.Int("batch", 10000, "rows per insert batch")
	)
	flag.Parse()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(context.Background(), st)
	storage := lookuprepo.NewPG().Bind(st.PG)

	files := flag.Args()
	if len(files) == 0 {
		files = lookCfg.MayCSV("FILES", []string{"eg-1.csv", "eg-2.csv", "eg-3.csv", "eg-4.csv"})
	}

	ctx := context.Background()
	var grandTotal int64
	for _, name := range files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(*fDir, path)
		}
		n, err := importFile(ctx, storage, path, *fBatch, l)
		if err != nil {
			l.Error().Err(err).Str("file", path).Msg("import failed, continuing with next file")
			continue
		}
		grandTotal += n
	}

	tableTotal, err := storage.Count(ctx)
	if err != nil {
		l.Error().Err(err).Msg("final count failed")
	}
	l.Info().Int64("imported", grandTotal).Int64("table_total", tableTotal).Msg("import complete")
}

func importFile(ctx context.Context, storage lookuprepo.Storage, path string, batchSize int, l *logger.Logger) (int64, error) {
	total, err := scan.CountLines(path)
	if err != nil {
		return 0, err
	}
	log := l.With().Str("file", filepath.Base(path)).Int("rows", total-1).Logger()
	log.Info().Msg("importing")

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	sc.Scan() // header

	var imported int64
	batch := make([]lookuprepo.PersonWrite, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := storage.WriteBatch(ctx, batch)
		if err != nil && perr.IsRetryable(err) {
			// transient serialization or connection hiccup, one retry is enough
			// for a single-writer bulk load
			log.Warn().Err(err).Msg("batch insert retrying")
			time.Sleep(500 * time.Millisecond)
			n, err = storage.WriteBatch(ctx, batch)
		}
		if err != nil {
			return err
		}
		imported += n
		batch = batch[:0]
		return nil
	}

	var seen int
	for sc.Scan() {
		seen++
		p, ok := parsePerson(sc.Text())
		if ok {
			batch = append(batch, p)
		}
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return imported, err
			}
			if seen%500000 == 0 {
				log.Info().Int("seen", seen).Int64("imported", imported).Msg("progress")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return imported, err
	}
	if err := flush(); err != nil {
		return imported, err
	}
	log.Info().Int64("imported", imported).Msg("file done")
	return imported, nil
}

// parsePerson maps one raw line onto the fixed column schema
// Rows without an fbid are dropped, short rows keep whatever they carry
func parsePerson(line string) (lookuprepo.PersonWrite, bool) {
	line = strings.ToValidUTF8(line, "�")
	if line == "" {
		return lookuprepo.PersonWrite{}, false
	}
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rec, err := r.Read()
	if err != nil {
		return lookuprepo.PersonWrite{}, false
	}
	f := row.Fields(rec)
	if f.At(row.ColFbid) == "" {
		return lookuprepo.PersonWrite{}, false
	}
	return lookuprepo.PersonWrite{
		Fbid:       f.At(row.ColFbid),
		Phone:      f.At(row.ColPhone),
		FirstName:  f.At(row.ColFirstName),
		LastName:   f.At(row.ColLastName),
		Name:       f.FullName(),
		Gender:     f.At(row.ColGender),
		ProfileURL: f.At(row.ColProfileURL),
		Location:   f.At(row.ColLocation),
		School:     f.At(row.ColSchool),
		Email:      f.At(row.ColEmail),
	}, true
}
