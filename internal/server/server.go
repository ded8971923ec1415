package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "acbuy.com/showcase/internal/middleware"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/cache"
	"acbuy.com/showcase/internal/catalog"
	"acbuy.com/showcase/internal/config"
	pgdb "acbuy.com/showcase/internal/db"
	"acbuy.com/showcase/internal/demodata"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/observability"
	"acbuy.com/showcase/internal/product"
	"acbuy.com/showcase/internal/sqlite"
	"acbuy.com/showcase/internal/supabase"
	"acbuy.com/showcase/static"

	apihttp "acbuy.com/showcase/internal/http/api"
	webhttp "acbuy.com/showcase/internal/http/web"
)

type Server struct {
	Echo    *echo.Echo
	HTTP    *http.Server
	Metrics *observability.Metrics

	closers []func()
}

// Close releases the store and cache connections.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// store is one backend's repositories plus its readiness probe.
type store struct {
	products product.Repository
	links    appdownload.Repository
	ping     func(context.Context) error
	close    func()
}

func Build(ctx context.Context, cfg *config.Config) (*Server, error) {
	srv := &Server{}

	//
	// Store
	//
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	srv.closers = append(srv.closers, st.close)

	//
	// Cache
	//
	var respCache *cache.Cache
	if cfg.Cache.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			srv.Close()
			return nil, err
		}
		srv.closers = append(srv.closers, func() { _ = client.Close() })
		respCache = cache.New(client, cfg.Cache.TTL)
		logx.Info().Dur("ttl", cfg.Cache.TTL).Msg("redis cache enabled")
	}

	//
	// Domain services
	//
	metrics := observability.NewMetrics()
	srv.Metrics = metrics

	productSvc := product.NewService(product.NewCached(st.products, respCache)).
		WithObserver(metrics.ObserveRead)
	linkSvc := appdownload.NewService(appdownload.NewCached(st.links, respCache)).
		WithObserver(metrics.ObserveRead)
	catalogSvc := catalog.NewService(productSvc)

	pager := catalog.Pager{
		Initial: cfg.Catalog.InitialVisible,
		Step:    cfg.Catalog.RevealStep,
		Delay:   cfg.Catalog.RevealDelay,
	}
	prices := catalog.NewPriceFormatter(cfg.Catalog.Locale, cfg.Catalog.CurrencySymbol)

	//
	// Handlers
	//
	webHandler := webhttp.NewHandler(catalogSvc, linkSvc, pager, prices, cfg.Site, cfg.Community, metrics)
	apiHandler := apihttp.NewHandler(catalogSvc, linkSvc)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if err := st.ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "Store not ready")
		}
		if err := respCache.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "Cache not ready")
		}
		return c.String(http.StatusOK, "Ready")
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Middleware
	e.Use(mwecho.Recover())
	e.Use(mwecho.RequestIDWithConfig(mwecho.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mwsvc.Platform())
	e.Use(mwsvc.Version())
	e.Use(mwsvc.RequestLogger())
	e.Use(metrics.Middleware())
	e.Use(mwsvc.SecureHeaders(cfg.DemoMode))
	e.Use(mwsvc.RateLimit(cfg.RateLimit))
	e.Use(mwecho.Gzip())

	// Storefront
	webhttp.RegisterRoutes(e, webHandler)

	// JSON API
	apihttp.RegisterRoutes(e.Group("/api/v1"), apiHandler)

	// Static files (embedded)
	cssFS, _ := fs.Sub(static.Files, "css")
	e.GET("/static/css/*", echo.WrapHandler(http.StripPrefix("/static/css/", http.FileServer(http.FS(cssFS)))))
	imgFS, _ := fs.Sub(static.Files, "img")
	e.GET("/static/img/*", echo.WrapHandler(http.StripPrefix("/static/img/", http.FileServer(http.FS(imgFS)))))

	//
	// HTTP server
	//
	srv.Echo = e
	srv.HTTP = &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return srv, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return openSQLite(cfg)

	case config.BackendPostgres:
		pool, err := pgdb.Connect(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		logx.Info().Msg("reading from postgres")
		return &store{
			products: product.NewPostgres(pool),
			links:    appdownload.NewPostgres(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil

	case config.BackendREST:
		client := supabase.New(cfg.Store.RestURL, cfg.Store.RestKey, cfg.Store.RequestTimeout)
		logx.Info().Str("url", cfg.Store.RestURL).Msg("reading from rest api")
		return &store{
			products: supabase.NewProductRepository(client),
			links:    supabase.NewAppDownloadRepository(client),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, product.ProductsTable)
			},
			close: func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func openSQLite(cfg *config.Config) (*store, error) {
	db, isNewDB, err := openMirrorDB(cfg.Store.DBPath, cfg.DBPathSource)
	if err != nil {
		return nil, err
	}

	// Load demo data if requested and database is new
	if cfg.DemoMode && isNewDB {
		if err := demodata.Load(db.DB); err != nil {
			db.Close()
			return nil, errors.New("failed to load demo data: " + err.Error())
		}
		logx.Info().Msg("demo data loaded")
	}

	return &store{
		products: product.New(db),
		links:    appdownload.New(db),
		ping:     db.PingContext,
		close:    func() { db.Close() },
	}, nil
}

// openMirrorDB opens (creating if needed) and migrates the SQLite mirror.
func openMirrorDB(path, source string) (*sqlx.DB, bool, error) {
	isNewDB := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		isNewDB = true
		logx.Info().Str("path", path).Str("source", source).Msg("creating database")
	} else {
		logx.Info().Str("path", path).Str("source", source).Msg("opening database")
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, false, err
	}

	// WAL mode is only required once after creating the database, but
	// doesn't hurt to set it each time
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, false, err
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, false, err
	}
	return db, isNewDB, nil
}
