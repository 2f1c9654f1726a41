package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pvolkov/certup/internal/notify"
	"github.com/pvolkov/certup/internal/output"
	"github.com/pvolkov/certup/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lead-form web server",
	Long: `Run the landing site's HTTP server.

Serves the site pages and static assets and accepts lead submissions
on /api/lead, forwarding them to the configured Telegram chat. Stops
gracefully on SIGINT or SIGTERM.

Examples:
  certup serve
  LISTEN_ADDR=0.0.0.0:8041 certup serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tg, err := notify.NewTelegram(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.APIBase,
		cfg.Telegram.ProxyURL,
	)
	if err != nil {
		return err
	}

	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		output.Warn("Telegram delivery not configured; lead submissions will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output.Info("Serving on %s", cfg.Server.Addr)
	srv := server.New(cfg.Server, tg)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
