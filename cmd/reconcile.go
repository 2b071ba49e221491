package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

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
	// Flags for reconcile accounts command
	accountsType   string
	accountsFile   string
	dryRunAccounts bool
	yesConfirm     bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile account batches against the database",
}

// accountsReconcileCmd plans and optionally imports a batch of accounts.
var accountsReconcileCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Report which accounts of a JSON batch exist, then import the rest",
	Long: `Reads a JSON array of student or teacher profiles, reports which ones
already exist and imports the others in a single transaction.

Examples:
  # Report only
  reconcile accounts --type student --file students.json --dry-run

  # Import with interactive confirmation
  reconcile accounts --type student --file students.json

  # Import without prompting
  reconcile accounts --type teacher --file teachers.json --yes`,
	RunE: runAccountsReconcile,
}

func init() {
	reconcileCmd.AddCommand(accountsReconcileCmd)

	accountsReconcileCmd.Flags().StringVar(&accountsType, "type", "", "Account kind: student or teacher")
	accountsReconcileCmd.Flags().StringVar(&accountsFile, "file", "", "Path to a JSON array of profiles")
	accountsReconcileCmd.Flags().BoolVar(&dryRunAccounts, "dry-run", false, "Report only, never import")
	accountsReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the import (non-interactive)")
	_ = accountsReconcileCmd.MarkFlagRequired("type")
	_ = accountsReconcileCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(reconcileCmd)
}

func runAccountsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	kind, ok := models.ParseKind(accountsType)
	if !ok || !kind.Importable() {
		return fmt.Errorf("invalid account type %q: expected student or teacher", accountsType)
	}

	raw, err := os.ReadFile(accountsFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", accountsFile, err)
	}
	var batch []map[string]any
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("failed to parse %s: %w", accountsFile, err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := user.NewService(l, db, password.NewBcrypt(0), cfg.Server.DefaultPassword)

	// Step 1: Plan (always runs)
	plan, err := svc.CheckUsers(ctx, kind, batch)
	if err != nil {
		return fmt.Errorf("failed to plan import: %w", err)
	}
	printReconcileReport(l, kind, plan)

	if dryRunAccounts {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Invalid) > 0 {
		return fmt.Errorf("%d profiles have no %s, fix the file first", len(plan.Invalid), kind.PrimaryKey())
	}
	if len(plan.New) == 0 {
		l.Info("Nothing to import.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmImport(len(plan.New)) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	_, inserted, err := svc.Import(ctx, kind, batch)
	if err != nil {
		return fmt.Errorf("failed to import accounts: %w", err)
	}
	l.Info("Successfully imported accounts", zap.Int("count", inserted))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, kind models.Kind, plan *user.AccountPlan) {
	s := plan.Summary()
	l.Info("Reconciliation report",
		zap.String("kind", string(kind)),
		zap.Int("existing", s.Existing),
		zap.Int("new", s.New),
		zap.Int("invalid", s.Invalid),
		zap.Int("duplicates", s.Duplicates),
	)

	maxShow := min(5, len(plan.Existing))
	for _, row := range plan.Existing[:maxShow] {
		l.Info("Existing account", zap.Any(kind.PrimaryKey(), row[kind.PrimaryKey()]))
	}
	if len(plan.Existing) > maxShow {
		l.Info("Additional existing accounts not shown", zap.Int("count", len(plan.Existing)-maxShow))
	}
	if len(plan.Duplicates) > 0 {
		l.Warn("Repeated keys in batch, first occurrence kept", zap.Strings("keys", plan.Duplicates))
	}
}

// confirmImport prompts the user for confirmation or uses --yes flag.
func confirmImport(count int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\nType 'yes' to import %d accounts: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
