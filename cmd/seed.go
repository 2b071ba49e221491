package cmd

import (
	"errors"
	"fmt"

	"race-admin/core/config"
	"race-admin/core/database"
	"race-admin/core/logger"
	"race-admin/core/models"
	"race-admin/core/password"
	"race-admin/feature/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedAccount  string
	seedName     string
	seedPassword string
	seedSuper    bool
)

// seedAdminCmd creates an administrator. Admins cannot be added over HTTP.
var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db, models.All()...); err != nil {
			return err
		}

		role := models.RoleAdmin
		if seedSuper {
			role = models.RoleSuperAdmin
		}

		svc := user.NewService(logg, db, password.NewBcrypt(0), cfg.Server.DefaultPassword)
		err = svc.CreateAdmin(cmd.Context(), seedAccount, seedName, seedPassword, role)
		if errors.Is(err, user.ErrUserExists) {
			logg.Warn("Admin already exists", zap.String("account", seedAccount))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		logg.Info("Admin created", zap.String("account", seedAccount), zap.Int("role_id", role))
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedAccount, "account", "admin", "Admin account id")
	seedAdminCmd.Flags().StringVar(&seedName, "name", "Administrator", "Display name")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "Initial password")
	seedAdminCmd.Flags().BoolVar(&seedSuper, "super", false, "Grant the super admin role")
	_ = seedAdminCmd.MarkFlagRequired("password")

	RootCmd.AddCommand(seedAdminCmd)
}
