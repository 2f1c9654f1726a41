package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pvolkov/certup/internal/compose"
	"github.com/pvolkov/certup/internal/config"
	"github.com/pvolkov/certup/internal/output"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and diagnose issues",
	Long: `Run diagnostic checks on the environment certup depends on.

Checks:
  - docker compose availability and version
  - Compose file presence
  - Issuance variables (DOMAIN, LETSENCRYPT_EMAIL)
  - Lead delivery settings (Telegram)

Examples:
  certup doctor
  certup doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Stack    []CheckResult `json:"stack"`
	Issuance []CheckResult `json:"issuance"`
	Delivery []CheckResult `json:"delivery"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	comp, _, _ := buildStack(cfg)
	report := buildDoctorReport(cfg, comp)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func buildDoctorReport(cfg *config.Config, comp *compose.Compose) *DoctorReport {
	report := &DoctorReport{}

	// Stack checks
	if comp.IsInstalled() {
		version := "unknown"
		if v, err := comp.Version(); err == nil {
			version = strings.TrimSpace(v)
		}
		report.Stack = append(report.Stack, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("docker compose installed (%s)", version),
		})
	} else {
		report.Stack = append(report.Stack, CheckResult{
			Status:  "error",
			Message: "docker compose not installed",
		})
	}

	if _, err := os.Stat(cfg.ComposeFile); err == nil {
		report.Stack = append(report.Stack, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("compose file exists (%s)", cfg.ComposeFile),
		})
	} else {
		report.Stack = append(report.Stack, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("compose file not found (%s)", cfg.ComposeFile),
		})
	}

	// Issuance checks
	if cfg.Domain != "" {
		report.Issuance = append(report.Issuance, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("DOMAIN set (%s)", cfg.Domain),
		})
	} else {
		report.Issuance = append(report.Issuance, CheckResult{
			Status:  "warning",
			Message: "DOMAIN not set (required for issue)",
		})
	}

	if cfg.Email != "" {
		report.Issuance = append(report.Issuance, CheckResult{
			Status:  "success",
			Message: "LETSENCRYPT_EMAIL set",
		})
	} else {
		report.Issuance = append(report.Issuance, CheckResult{
			Status:  "warning",
			Message: "LETSENCRYPT_EMAIL not set (required for issue)",
		})
	}

	if cfg.Staging {
		report.Issuance = append(report.Issuance, CheckResult{
			Status:  "warning",
			Message: "staging CA enabled (certificates will not be trusted)",
		})
	}

	// Delivery checks
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		report.Delivery = append(report.Delivery, CheckResult{
			Status:  "success",
			Message: "Telegram delivery configured",
		})
	} else {
		report.Delivery = append(report.Delivery, CheckResult{
			Status:  "warning",
			Message: "Telegram delivery not configured (leads will fail to send)",
		})
	}

	return report
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking stack...")
	for _, check := range report.Stack {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking issuance settings...")
	for _, check := range report.Issuance {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking lead delivery...")
	for _, check := range report.Delivery {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
