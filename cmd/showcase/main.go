package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"acbuy.com/showcase/internal/config"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/server"
	"acbuy.com/showcase/internal/sqlite"
	"acbuy.com/showcase/internal/version"
)

func main() {
	fmt.Println(version.Banner())

	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file")
	routesFlag := flag.Bool("routes", false, "print routes and exit")
	schemaFlag := flag.Bool("schema", false, "print the mirror database schema and exit")
	demoFlag := flag.Bool("demo", false, "load sample data on new database (for demos)")
	syncPath := flag.String("sync-mirror", "", "copy the configured postgres/rest store into this SQLite file and exit")
	flag.Parse()

	if *schemaFlag {
		fmt.Print(sqlite.Schema())
		os.Exit(0)
	}

	//
	// Load configuration
	//
	cfg, err := config.Load(*configPath)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.DemoMode = *demoFlag

	logx.Init(logx.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	//
	// Build server (Echo, store, cache, services, etc.)
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// Mirror sync mode
	//
	if *syncPath != "" {
		res, err := server.SyncMirror(ctx, cfg, *syncPath)
		if err != nil {
			logx.Fatal().Err(err).Str("path", *syncPath).Msg("mirror sync failed")
		}
		fmt.Printf("synced %d products, %d campaign products into %s\n", res.Products, res.CampaignProducts, *syncPath)
		return
	}

	srv, err := server.Build(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to build server")
	}
	defer srv.Close()

	//
	// Routes inspection mode
	//
	if *routesFlag {
		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Printf("%-6s %s\n", r.Method, r.Path)
		}
		return
	}

	//
	// Normal server startup
	//
	go func() {
		logx.Info().Str("addr", cfg.Addr).Str("backend", cfg.Store.Backend).Msg("showcase listening")
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown")
	}
}
