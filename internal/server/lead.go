package server

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pvolkov/certup/internal/logger"
)

// Request body and field limits for lead submissions.
const (
	maxBodyBytes    = 32 * 1024
	maxFirstNameLen = 60
	maxEmailLen     = 120
	maxPhoneLen     = 32
	maxMessageLen   = 4000
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\-\s]{1,60}$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()]{6,32}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// lead is a validated form submission.
type lead struct {
	FirstName string
	Email     string
	Phone     string
	Message   string
}

// handleLead accepts a lead submission, validates it, and forwards it
// to the notifier.
func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	fail := func(status int, code string) {
		logger.Warn("lead rejected: %s (ip=%s)", code, clientIP(r))
		writeJSON(w, status, map[string]interface{}{"ok": false, "error": code})
	}

	if cl := r.Header.Get("Content-Length"); cl != "" {
		n, err := strconv.Atoi(cl)
		if err != nil {
			fail(http.StatusBadRequest, "invalid_content_length")
			return
		}
		if n > maxBodyBytes {
			fail(http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		fail(http.StatusBadRequest, "invalid_body")
		return
	}
	if len(body) > maxBodyBytes {
		fail(http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	data := parseBody(r.Header.Get("Content-Type"), body)

	firstName := strings.TrimSpace(getString(data, "first_name"))
	email := strings.TrimSpace(getString(data, "email"))
	phone := strings.TrimSpace(getString(data, "phone"))
	message := strings.TrimSpace(getString(data, "message"))
	formToken := strings.TrimSpace(getString(data, "form_token"))

	if firstName == "" || email == "" || phone == "" || message == "" {
		fail(http.StatusBadRequest, "required_fields")
		return
	}

	if !consentGiven(data["consent"]) {
		fail(http.StatusBadRequest, "consent_required")
		return
	}

	if formToken == "" || !s.tokens.Verify(formToken) {
		fail(http.StatusForbidden, "invalid_form_token")
		return
	}

	if utf8.RuneCountInString(firstName) > maxFirstNameLen || !nameRe.MatchString(firstName) {
		fail(http.StatusBadRequest, "invalid_first_name")
		return
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !emailRe.MatchString(email) {
		fail(http.StatusBadRequest, "invalid_email")
		return
	}
	if utf8.RuneCountInString(phone) > maxPhoneLen || !phoneRe.MatchString(phone) {
		fail(http.StatusBadRequest, "invalid_phone")
		return
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		fail(http.StatusBadRequest, "message_too_long")
		return
	}

	l := lead{FirstName: firstName, Email: email, Phone: phone, Message: message}
	if err := s.notifier.Send(r.Context(), formatLead(l)); err != nil {
		logger.Error("lead delivery failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"ok": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// formatLead renders the Telegram notification text. Fields are
// HTML-escaped since the message is sent with HTML parse mode.
func formatLead(l lead) string {
	lines := []string{
		"<b>Новая заявка с сайта</b>",
		"Имя: " + html.EscapeString(l.FirstName),
		"Email: " + html.EscapeString(l.Email),
		"Телефон: " + html.EscapeString(l.Phone),
		"Сообщение: " + html.EscapeString(l.Message),
	}
	return strings.Join(lines, "\n")
}

// parseBody decodes a JSON or urlencoded-form body into a generic map.
// Undecodable bodies yield an empty map so the field checks produce
// the user-facing error.
func parseBody(contentType string, body []byte) map[string]interface{} {
	data := map[string]interface{}{}

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		_ = json.Unmarshal(body, &data)
		return data
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return data
	}
	for key := range values {
		data[key] = values.Get(key)
	}
	return data
}

// getString extracts a string field, tolerating absent or non-string
// values.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// consentGiven reports whether the consent checkbox value counts as
// granted. Forms send "on" or "true", JSON clients send true or 1.
func consentGiven(v interface{}) bool {
	switch c := v.(type) {
	case bool:
		return c
	case string:
		return c == "true" || c == "on" || c == "1"
	case float64:
		return c == 1
	case int:
		return c == 1
	default:
		return false
	}
}

// clientIP returns the remote address for diagnostics.
func clientIP(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "-"
	}
	return r.RemoteAddr
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
