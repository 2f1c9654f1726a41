// Package certbot drives certificate issuance and renewal through the
// certbot one-off service of the site's compose stack.
//
// Certificates live in the stack's letsencrypt volume under
// /etc/letsencrypt/live/{domain}/, shared with the reverse proxy.
// Validation uses the webroot method: certbot writes challenge tokens
// into a directory nginx serves over plain HTTP.
package certbot

import (
	"fmt"
	"path"
	"strings"

	cerrors "github.com/pvolkov/certup/internal/errors"
	"github.com/pvolkov/certup/internal/logger"
)

// Runner runs one-off containers for a compose service. Implemented by
// *compose.Compose.
type Runner interface {
	RunRm(service string, cmdArgs ...string) error
	RunRmOutput(service string, cmdArgs ...string) ([]byte, error)
}

// letsencryptDir is the base directory for Let's Encrypt certificates
// inside the containers.
const letsencryptDir = "/etc/letsencrypt/live"

// Cert represents an issued certificate.
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

// Client wraps certbot invocations for one stack.
type Client struct {
	runner  Runner
	service string
	webroot string
	staging bool
}

// New creates a certbot client running one-offs through runner.
func New(runner Runner, service, webroot string) *Client {
	return &Client{
		runner:  runner,
		service: service,
		webroot: webroot,
	}
}

// SetStaging switches issuance to the Let's Encrypt staging CA.
func (c *Client) SetStaging(staging bool) {
	c.staging = staging
}

// CertPaths returns the in-container certificate paths for a domain.
func CertPaths(domain string) *Cert {
	return &Cert{
		Domain:   domain,
		CertPath: path.Join(letsencryptDir, domain, "fullchain.pem"),
		KeyPath:  path.Join(letsencryptDir, domain, "privkey.pem"),
	}
}

// Issue obtains a certificate for domain using the webroot method.
func (c *Client) Issue(domain, email string) (*Cert, error) {
	args := []string{
		"certonly",
		"--webroot",
		"-w", c.webroot,
		"-d", domain,
		"--email", email,
		"--agree-tos",
		"--non-interactive",
	}
	if c.staging {
		args = append(args, "--staging")
	}

	logger.InfoFields("issuing certificate", map[string]interface{}{
		"domain":  domain,
		"staging": c.staging,
	})
	if err := c.runner.RunRm(c.service, args...); err != nil {
		return nil, cerrors.WrapDomain(cerrors.ErrCodeCertbot, domain, "issuance failed", err)
	}

	return CertPaths(domain), nil
}

// Renew renews every certificate lineage due for renewal. Lineages not
// yet due are skipped by certbot itself.
func (c *Client) Renew() error {
	args := []string{
		"renew",
		"--webroot",
		"-w", c.webroot,
		"--non-interactive",
	}

	logger.Info("renewing certificates")
	if err := c.runner.RunRm(c.service, args...); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeCertbot, "renewal failed", err)
	}
	return nil
}

// DryRunRenew tests the renewal path against the staging CA without
// touching the stored certificates.
func (c *Client) DryRunRenew() error {
	args := []string{
		"renew",
		"--webroot",
		"-w", c.webroot,
		"--dry-run",
		"--non-interactive",
	}
	if err := c.runner.RunRm(c.service, args...); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeCertbot, "dry-run renewal failed", err)
	}
	return nil
}

// CertInfo describes one certificate lineage as reported by certbot.
type CertInfo struct {
	Name   string `json:"name"`
	Expiry string `json:"expiry,omitempty"`
}

// List returns the certificate lineages certbot manages.
func (c *Client) List() ([]CertInfo, error) {
	out, err := c.runner.RunRmOutput(c.service, "certificates", "--non-interactive")
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeCertbot, "certificates listing failed", err)
	}
	return parseCertificates(string(out)), nil
}

// parseCertificates extracts lineages from `certbot certificates` output.
//
// Relevant lines look like:
//
//	Certificate Name: example.com
//	  Expiry Date: 2026-11-01 09:30:12+00:00 (VALID: 69 days)
func parseCertificates(out string) []CertInfo {
	var certs []CertInfo
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Certificate Name:"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "Certificate Name:"))
			certs = append(certs, CertInfo{Name: name})
		case strings.HasPrefix(trimmed, "Expiry Date:") && len(certs) > 0:
			expiry := strings.TrimSpace(strings.TrimPrefix(trimmed, "Expiry Date:"))
			certs[len(certs)-1].Expiry = expiry
		}
	}
	return certs
}

// String returns a human-readable description of the certificate.
func (c *Cert) String() string {
	return fmt.Sprintf("%s (cert: %s, key: %s)", c.Domain, c.CertPath, c.KeyPath)
}
