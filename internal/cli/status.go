package cli

import (
	"github.com/pvolkov/certup/internal/output"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show certificate status",
	Long: `Show the certificates certbot manages for the stack.

Examples:
  certup status
  certup status --json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, cb, _ := buildStack(cfg)

	certs, err := cb.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(certs)
	}

	if len(certs) == 0 {
		output.Info("No certificates found")
		return nil
	}

	rows := make([][]string, 0, len(certs))
	for _, cert := range certs {
		rows = append(rows, []string{cert.Name, cert.Expiry})
	}
	output.Table([]string{"DOMAIN", "EXPIRY"}, rows)

	return nil
}
