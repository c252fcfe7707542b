package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/internal/server"
	"github.com/matzehuels/treeviz/pkg/store"
)

// defaultListenAddr is used when neither the flag nor the config file set one.
const defaultListenAddr = ":8080"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree visualizations over HTTP",
		Long: `Start an HTTP server exposing the render pipeline.

Endpoints:
  GET  /healthz                   health and version
  GET  /api/render                render on demand (count, seed, strategy, format, style)
  POST /api/snapshots             persist a visualization and get a shareable ID
  GET  /api/snapshots/{id}        fetch a snapshot as JSON
  GET  /api/snapshots/{id}.svg    fetch a snapshot as SVG

Snapshots are stored in memory unless a MongoDB URI is configured in the
config file, in which case they survive restarts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, noCache)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string, noCache bool) error {
	if listen == "" {
		listen = c.Config.Listen
	}
	if listen == "" {
		listen = defaultListenAddr
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize snapshot store: %w", err)
	}
	defer st.Close(context.Background())

	srv := server.New(runner, st, c.Logger)
	printInfo("Serving on %s", listen)
	return srv.ListenAndServe(ctx, listen)
}

// newStore selects the snapshot store: MongoDB when configured, otherwise
// in-memory.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Mongo.URI == "" {
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongodb snapshot store", "database", c.Config.Mongo.Database)
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      c.Config.Mongo.URI,
		Database: c.Config.Mongo.Database,
	})
}
