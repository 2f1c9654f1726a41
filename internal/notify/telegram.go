// Package notify delivers lead submissions to a Telegram chat through
// the bot API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	cerrors "github.com/pvolkov/certup/internal/errors"
	"github.com/pvolkov/certup/internal/logger"
)

// requestTimeout bounds a single bot API call.
const requestTimeout = 10 * time.Second

// Notifier sends a text message to the configured destination.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Telegram sends messages via the Telegram bot API.
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegram creates a Telegram notifier. proxyURL may be empty, in
// which case the HTTPS_PROXY environment variables are consulted; with
// no proxy configured, requests go direct.
func NewTelegram(botToken, chatID, apiBase, proxyURL string) (*Telegram, error) {
	if apiBase == "" {
		apiBase = "https://api.telegram.org"
	}

	transport := &http.Transport{}
	if proxyURL == "" {
		proxyURL = os.Getenv("HTTPS_PROXY")
	}
	if proxyURL == "" {
		proxyURL = os.Getenv("https_proxy")
	}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeNotify, "invalid proxy URL", err)
		}
		transport.Proxy = http.ProxyURL(parsed)
	}

	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  strings.TrimRight(apiBase, "/"),
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}, nil
}

// sendMessagePayload is the bot API sendMessage request body.
type sendMessagePayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send posts an HTML-formatted message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t.botToken == "" || t.chatID == "" {
		return cerrors.Wrap(cerrors.ErrCodeNotify, "missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID", nil)
	}

	payload := sendMessagePayload{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNotify, "failed to encode message", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNotify, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNotify, "telegram request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			respBody = []byte("<failed to read body>")
		}
		logger.Warn("telegram API returned %d: %s", resp.StatusCode, respBody)
		return cerrors.Wrap(cerrors.ErrCodeNotify,
			fmt.Sprintf("telegram API error: %d; body: %s", resp.StatusCode, respBody), nil)
	}

	return nil
}
