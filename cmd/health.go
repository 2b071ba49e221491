package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"race-admin/core/config"
	"race-admin/core/database"
	"race-admin/core/logger"
	"race-admin/core/session"
	"race-admin/core/storage"
	"race-admin/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// healthCmd runs the dependency checks of GET /health from the command line.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database, session store and export storage",
	Long:  `Runs the same checks as GET /health and exits non-zero when one fails. Use --json for the full report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		// A failed connection is reported, not fatal.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed", zap.Error(err))
		} else {
			db = conn
		}

		sessions, err := session.NewStore(cfg.Session)
		if err != nil {
			logg.Warn("Session store unavailable", zap.Error(err))
		}

		var client storage.Client
		if cfg.Storage.Enabled {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		svc := health.NewService(logg, db, sessions, client, cfg.Storage.Bucket)
		report := svc.Check(cmd.Context())

		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
		} else {
			fmt.Println("\n=== Health ===")
			fmt.Printf("Database: %s %s\n", report.Database.Status, report.Database.Error)
			fmt.Printf("Sessions: %s %s\n", report.Sessions.Status, report.Sessions.Error)
			fmt.Printf("Storage:  %s %s\n", report.Storage.Status, report.Storage.Error)
		}

		if !report.Healthy() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().Bool("json", false, "Print the full report as JSON")
	RootCmd.AddCommand(healthCmd)
}
