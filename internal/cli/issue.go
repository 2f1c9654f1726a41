package cli

import (
	"github.com/pvolkov/certup/internal/output"
	"github.com/spf13/cobra"
)

var issueStaging bool

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a TLS certificate for the site",
	Long: `Issue a Let's Encrypt certificate for the configured domain.

The site stack is started first so nginx can serve the webroot
challenge, then the certbot service obtains the certificate and nginx
is reloaded to pick it up. DOMAIN and LETSENCRYPT_EMAIL must be set;
they are checked before anything runs.

Examples:
  DOMAIN=example.com LETSENCRYPT_EMAIL=admin@example.com certup issue
  certup issue --staging`,
	RunE: runIssue,
}

func init() {
	issueCmd.Flags().BoolVar(&issueStaging, "staging", false, "Use the Let's Encrypt staging CA")
	rootCmd.AddCommand(issueCmd)
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if issueStaging {
		cfg.Staging = true
	}

	// All preconditions are checked before any external command runs
	if err := cfg.RequireIssuance(); err != nil {
		return err
	}
	if err := validateDomain(cfg.Domain); err != nil {
		return err
	}
	if err := validateEmail(cfg.Email); err != nil {
		return err
	}
	if err := cfg.RequireComposeFile(); err != nil {
		return err
	}

	comp, cb, ngx := buildStack(cfg)

	output.Info("Starting services...")
	if err := comp.Up(cfg.ProxyService); err != nil {
		return err
	}

	output.Info("Requesting certificate for %s...", cfg.Domain)
	cert, err := cb.Issue(cfg.Domain, cfg.Email)
	if err != nil {
		return err
	}

	if err := ngx.TestAndReload(); err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"success":   true,
			"domain":    cfg.Domain,
			"staging":   cfg.Staging,
			"cert_path": cert.CertPath,
			"key_path":  cert.KeyPath,
		})
	}

	output.Success("Certificate issued for %s", cfg.Domain)
	output.Print("  Certificate: %s", cert.CertPath)
	output.Print("  Private Key: %s", cert.KeyPath)

	return nil
}
