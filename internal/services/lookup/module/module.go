// Package module wires the lookup service into the API using modkit
package module

import (
	"net/http"

	modkit "bighole/internal/modkit"
	"bighole/internal/modkit/httpkit"
	str "bighole/internal/platform/strings"
	"bighole/internal/services/lookup/domain"
	lookuphttp "bighole/internal/services/lookup/http"
	lookuprepo "bighole/internal/services/lookup/repo"
	"bighole/internal/services/lookup/scan"
	lookupsvc "bighole/internal/services/lookup/service"
)

// Ports exposed by the lookup module
type Ports struct {
	Searcher domain.SearcherPort
}

var _ modkit.Module = (*Module)(nil)

// Module implements the lookup service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	engine *scan.Engine
	svc    *lookupsvc.Service
}

// New constructs the lookup module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("lookup"), modkit.WithPrefix("/lookup")}, opts...)...)

	o := FromConfig(deps.Cfg)
	engine := scan.NewEngine(o.Scan, nil)
	svc := lookupsvc.New(deps.PG, lookuprepo.NewPG(), engine, lookupsvc.Config{
		Backend:    o.Backend,
		MaxResults: o.MaxResults,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		engine:    engine,
		svc:       svc,
	}
	m.ports = Ports{Searcher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		lookuphttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Close stops the scan engine's worker pool
func (m *Module) Close() { m.engine.Close() }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports for cross wiring
func (m *Module) Ports() any { return m.ports }
