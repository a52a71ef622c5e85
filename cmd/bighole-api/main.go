package main

import (
	"context"

	"bighole/internal/core/version"
	"bighole/internal/modkit/repokit"
	"bighole/internal/platform/config"
	"bighole/internal/platform/logger"
	phttp "bighole/internal/platform/net/http"
	"bighole/internal/platform/store"

	"bighole/internal/services/api"
	lookupsvc "bighole/internal/services/lookup/service"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	bi := version.Info()
	l.Info().
		Str("service", bi.Service).
		Str("version", bi.Version).
		Str("commit", bi.Commit).
		Str("built", bi.Date).
		Msg("starting")

	// the Postgres pool only exists when the indexed backend is selected,
	// the file scanner needs no store at all
	var st *store.Store
	if root.Prefix("CORE_LOOKUP_").MayString("BACKEND", lookupsvc.BackendFiles) == lookupsvc.BackendPostgres {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				PG: store.PGConfig{
					Enabled:     true,
					URL:         pgCfg.MustString("DBURL"),
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", false),
				},
			},
			store.WithLogger(*l),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		repokit.MustGuard(context.Background(), st)
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	lookup := api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
			Logger: l,
		},
	)
	defer lookup.Close()

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
