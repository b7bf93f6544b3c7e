// Package report contains the filing export command.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"steuer-chat/cmd/root"
	"steuer-chat/internal/catalog"
	"steuer-chat/internal/config"
	"steuer-chat/internal/export"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/sessionstore"

	"github.com/spf13/cobra"
)

var (
	sessionID string
	format    string
)

// Cmd renders the filing record of a completed session as CSV or XLSX.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Export a completed filing as CSV or XLSX",
	Long: `Load a completed session from the session store and export its
filing record, one row per deduction plus the calculation totals.`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id to export (required)")
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or xlsx")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	if sessionID == "" {
		return fmt.Errorf("--session id is required")
	}
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported format '%s', use csv or xlsx", format)
	}

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

	session, err := store.Get(sessionID)
	if err != nil {
		return err
	}

	_, record, err := session.GetSummary()
	if err != nil {
		return fmt.Errorf("session %s has no completed filing: %w", sessionID, err)
	}

	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	} else if format == "xlsx" {
		return fmt.Errorf("xlsx output requires --output")
	}

	if format == "xlsx" {
		if err := export.WriteXLSX(record, out); err != nil {
			return fmt.Errorf("failed to write XLSX report: %w", err)
		}
	} else {
		if err := export.WriteCSV(record, out); err != nil {
			return fmt.Errorf("failed to write CSV report: %w", err)
		}
	}

	if root.SharedFlags.Output != "" {
		root.Log.Infof("Report written to %s", root.SharedFlags.Output)
	}
	return nil
}
