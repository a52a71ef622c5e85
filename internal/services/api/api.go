// Package api provides the HTTP API for the application
// The API is a deliberately thin presentation layer: it binds one request
// shape and calls the lookup engine's single entry point
package api

import (
	"time"

	"bighole/internal/platform/config"
	"bighole/internal/platform/logger"
	phttp "bighole/internal/platform/net/http"
	"bighole/internal/platform/net/middleware"
	"bighole/internal/platform/store"

	"bighole/internal/modkit"
	"bighole/internal/modkit/httpkit"

	lookupmod "bighole/internal/services/lookup/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router and returns the lookup
// module so the caller can close its scan pool on shutdown
// Search calls hold files or a pool connection for their whole lifetime, so
// the stack bounds in-flight requests instead of letting them pile up
func Mount(r phttp.Router, opt Options) *lookupmod.Module {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	lookup := lookupmod.New(deps)

	// heartbeat lives on the root router, chi matches it on the full path
	r.Use(middleware.Heartbeat("/health"))

	apiCfg := opt.Config.Prefix("CORE_API_")
	stack := httpkit.SearchStack(
		apiCfg.MayInt("SEARCH_LIMIT", 16),
		apiCfg.MayInt("SEARCH_BACKLOG", 64),
		apiCfg.MayDuration("SEARCH_WAIT", 30*time.Second),
	)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		lookup.MountRoutes(api)
	})
	return lookup
}
