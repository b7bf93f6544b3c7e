// Package serve contains the HTTP server command.
package serve

import (
	"fmt"
	"path/filepath"

	"steuer-chat/cmd/root"
	"steuer-chat/internal/catalog"
	"steuer-chat/internal/config"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/server"
	"steuer-chat/internal/sessionstore"

	"github.com/spf13/cobra"
)

var address string

// Cmd is the serve command exposing the interview over HTTP.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview over HTTP",
	Long: `Start an HTTP server exposing the interview as a session API.
Sessions are persisted in a SQLite database, so conversations survive
restarts.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := catalog.NewStore(cfg.Data.CatalogFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load deduction catalog: %w", err)
	}

	dbPath := cfg.Data.SessionDB
	if cfg.Data.Directory != "" && !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(cfg.Data.Directory, dbPath)
	}
	store, err := sessionstore.NewSQLiteStore(dbPath, cat, logging.NewLogrusAdapter(root.Log))
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	srv, err := server.New(store, cat, root.Log)
	if err != nil {
		return err
	}

	addr := address
	if addr == "" {
		addr = cfg.Server.Address
	}
	return srv.Run(addr)
}
