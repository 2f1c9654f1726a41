package cli

import (
	"fmt"
	"strings"

	"github.com/pvolkov/certup/internal/certbot"
	"github.com/pvolkov/certup/internal/compose"
	"github.com/pvolkov/certup/internal/config"
	"github.com/pvolkov/certup/internal/output"
	"github.com/pvolkov/certup/internal/proxy"
)

// loadConfig resolves the configuration and applies the --file override
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if composeFile != "" {
		cfg.ComposeFile = composeFile
	}
	return cfg, nil
}

// buildStack wires the compose, certbot and proxy helpers for a config
func buildStack(cfg *config.Config) (*compose.Compose, *certbot.Client, *proxy.Nginx) {
	comp := deps.ComposeFactory.Create(cfg.ComposeFile)
	cb := certbot.New(comp, cfg.CertbotService, cfg.Webroot)
	cb.SetStaging(cfg.Staging)
	ngx := proxy.New(comp, cfg.ProxyService)
	return comp, cb, ngx
}

// validateDomain checks if domain is valid
func validateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	if strings.Contains(domain, " ") {
		return fmt.Errorf("domain cannot contain spaces")
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return fmt.Errorf("domain cannot start or end with hyphen")
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("domain must contain a dot")
	}
	return nil
}

// validateEmail checks if the contact email is plausible
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email: %s", email)
	}
	if strings.ContainsAny(email, " \t") {
		return fmt.Errorf("email cannot contain whitespace")
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain,omitempty"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}
