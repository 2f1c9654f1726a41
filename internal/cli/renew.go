package cli

import (
	"github.com/pvolkov/certup/internal/output"
	"github.com/spf13/cobra"
)

var renewDryRun bool

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Renew certificates and reload nginx",
	Long: `Renew every certificate lineage that is due and reload nginx.

Lineages not yet due are skipped by certbot itself, so this command is
safe to run from cron. It has no environment preconditions.

Examples:
  certup renew
  certup renew --dry-run`,
	RunE: runRenew,
}

func init() {
	renewCmd.Flags().BoolVar(&renewDryRun, "dry-run", false, "Test renewal against the staging CA without saving certificates")
	rootCmd.AddCommand(renewCmd)
}

func runRenew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, cb, ngx := buildStack(cfg)

	if renewDryRun {
		output.Info("Testing renewal (dry run)...")
		if err := cb.DryRunRenew(); err != nil {
			return err
		}
		return outputResult(
			CommandResult{Success: true, Action: "dry-run"},
			"Renewal dry run succeeded",
		)
	}

	output.Info("Renewing certificates...")
	if err := cb.Renew(); err != nil {
		return err
	}

	output.Info("Reloading %s...", ngx.Name())
	if err := ngx.Reload(); err != nil {
		return err
	}

	return outputResult(
		CommandResult{Success: true, Action: "renew"},
		"Certificates renewed",
	)
}
