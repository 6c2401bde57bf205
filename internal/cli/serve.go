package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/stangrad/wayfind/internal/server"
	"github.com/stangrad/wayfind/pkg/cache"
	"github.com/stangrad/wayfind/pkg/pipeline"
	"github.com/stangrad/wayfind/pkg/store"
)

// serveCommand creates the serve command for running the navigation API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		mapName    string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [map.json]",
		Short: "Run the navigation HTTP API",
		Long: `Run the navigation HTTP API.

The server loads one map, computes its layout, and exposes session-based
navigation endpoints under /api. The map comes from a file argument or, with
--map, from the configured document store. Cache and store backends are
configured in ~/.config/wayfind/config.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && mapName == "" {
				return fmt.Errorf("a map file argument or --map is required")
			}
			if len(args) == 1 && mapName != "" {
				return fmt.Errorf("a map file argument and --map are mutually exclusive")
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			cacheBackend, err := buildCache(ctx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			runner := pipeline.NewRunner(cacheBackend, buildKeyer(cfg.Cache), c.Logger)
			defer runner.Close()

			if len(args) == 1 {
				opts.MapPath = args[0]
			} else {
				st, err := buildStore(ctx, cfg.Store)
				if err != nil {
					return fmt.Errorf("initialize store: %w", err)
				}
				defer st.Close()
				opts.MapName = mapName
				opts.Store = st
			}
			opts.Logger = c.Logger

			result, err := runner.Execute(ctx, opts)
			if err != nil {
				return fmt.Errorf("load map: %w", err)
			}

			return c.runServer(ctx, cfg.Server.Addr, result)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/wayfind/config.toml)")
	cmd.Flags().StringVar(&mapName, "map", "", "named map from the document store")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: fixed)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute the layout even when cached")

	return cmd
}

// runServer serves until the context is cancelled, then shuts down
// gracefully.
func (c *CLI) runServer(ctx context.Context, addr string, result *pipeline.Result) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(result, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildCache constructs the configured cache backend.
func buildCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// buildKeyer returns the cache keyer for the configured key prefix. Without
// a prefix the runner falls back to its default keyer; with one, deployments
// sharing a redis instance keep each building's layouts apart.
func buildKeyer(cfg CacheConfig) cache.Keyer {
	if cfg.KeyPrefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.KeyPrefix)
}

// buildStore constructs the configured document store backend.
func buildStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
