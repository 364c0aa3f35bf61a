package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/internal/api"
	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/service"
)

// serveOptions holds flag values for the serve command.
type serveOptions struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	cachePrefix   string
	noCache       bool
	shutdown      time.Duration
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve offset resolution over HTTP",
		Long: `Start an HTTP server exposing POST /v1/offset, GET /v1/placements, and GET /healthz.

Results are cached in Redis when --redis is set, otherwise in the local cache directory.`,
		Example: `  floatplace serve --addr :8080
  floatplace serve --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", ":8080", "listen address")
	f.StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared result cache")
	f.StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	f.IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	f.StringVar(&opts.cachePrefix, "cache-prefix", appName+":", "key prefix for Redis entries")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	f.DurationVar(&opts.shutdown, "shutdown-timeout", 10*time.Second, "time allowed for in-flight requests on shutdown")

	return cmd
}

func (c *CLI) serve(ctx context.Context, opts serveOptions) error {
	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := service.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}

	srv := &http.Server{
		Handler:           api.NewServer(runner, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	c.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serverCache picks Redis when configured, else the local file cache.
func (c *CLI) serverCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.noCache || opts.redisAddr == "" {
		return newFileCache(opts.noCache, c.Logger), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
		Prefix:   opts.cachePrefix,
	})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	return rc, nil
}
