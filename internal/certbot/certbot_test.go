package certbot

import (
	"errors"
	"reflect"
	"testing"
)

// mockRunner records one-off invocations.
type mockRunner struct {
	runErr  error
	output  []byte
	outErr  error
	calls   [][]string
	service string
}

func (m *mockRunner) RunRm(service string, cmdArgs ...string) error {
	m.service = service
	m.calls = append(m.calls, cmdArgs)
	return m.runErr
}

func (m *mockRunner) RunRmOutput(service string, cmdArgs ...string) ([]byte, error) {
	m.service = service
	m.calls = append(m.calls, cmdArgs)
	return m.output, m.outErr
}

func TestCertPaths(t *testing.T) {
	cert := CertPaths("example.com")

	if cert.Domain != "example.com" {
		t.Errorf("expected domain example.com, got %s", cert.Domain)
	}
	if cert.CertPath != "/etc/letsencrypt/live/example.com/fullchain.pem" {
		t.Errorf("unexpected cert path: %s", cert.CertPath)
	}
	if cert.KeyPath != "/etc/letsencrypt/live/example.com/privkey.pem" {
		t.Errorf("unexpected key path: %s", cert.KeyPath)
	}
}

func TestIssue(t *testing.T) {
	t.Run("webroot arguments", func(t *testing.T) {
		runner := &mockRunner{}
		c := New(runner, "certbot", "/var/www/certbot")

		cert, err := c.Issue("example.com", "admin@example.com")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if cert.Domain != "example.com" {
			t.Errorf("expected domain example.com, got %s", cert.Domain)
		}
		if runner.service != "certbot" {
			t.Errorf("expected certbot service, got %s", runner.service)
		}

		want := []string{
			"certonly",
			"--webroot",
			"-w", "/var/www/certbot",
			"-d", "example.com",
			"--email", "admin@example.com",
			"--agree-tos",
			"--non-interactive",
		}
		if !reflect.DeepEqual(runner.calls[0], want) {
			t.Errorf("expected args %v, got %v", want, runner.calls[0])
		}
	})

	t.Run("staging flag appended", func(t *testing.T) {
		runner := &mockRunner{}
		c := New(runner, "certbot", "/var/www/certbot")
		c.SetStaging(true)

		if _, err := c.Issue("example.com", "admin@example.com"); err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		args := runner.calls[0]
		if args[len(args)-1] != "--staging" {
			t.Errorf("expected --staging as final arg, got %v", args)
		}
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		runner := &mockRunner{runErr: errors.New("exit status 1")}
		c := New(runner, "certbot", "/var/www/certbot")

		if _, err := c.Issue("example.com", "admin@example.com"); err == nil {
			t.Error("Issue should fail when certbot fails")
		}
	})
}

func TestRenew(t *testing.T) {
	t.Run("renew arguments", func(t *testing.T) {
		runner := &mockRunner{}
		c := New(runner, "certbot", "/var/www/certbot")

		if err := c.Renew(); err != nil {
			t.Fatalf("Renew failed: %v", err)
		}

		want := []string{"renew", "--webroot", "-w", "/var/www/certbot", "--non-interactive"}
		if !reflect.DeepEqual(runner.calls[0], want) {
			t.Errorf("expected args %v, got %v", want, runner.calls[0])
		}
	})

	t.Run("failure propagates", func(t *testing.T) {
		runner := &mockRunner{runErr: errors.New("exit status 1")}
		c := New(runner, "certbot", "/var/www/certbot")

		if err := c.Renew(); err == nil {
			t.Error("Renew should fail when certbot fails")
		}
	})
}

func TestDryRunRenew(t *testing.T) {
	runner := &mockRunner{}
	c := New(runner, "certbot", "/var/www/certbot")

	if err := c.DryRunRenew(); err != nil {
		t.Fatalf("DryRunRenew failed: %v", err)
	}

	found := false
	for _, arg := range runner.calls[0] {
		if arg == "--dry-run" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected --dry-run flag, got %v", runner.calls[0])
	}
}

func TestList(t *testing.T) {
	t.Run("parses certbot output", func(t *testing.T) {
		out := `Saving debug log to /var/log/letsencrypt/letsencrypt.log

- - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -
Found the following certs:
  Certificate Name: example.com
    Serial Number: 4f3a
    Domains: example.com
    Expiry Date: 2026-11-01 09:30:12+00:00 (VALID: 69 days)
  Certificate Name: shop.example.com
    Expiry Date: 2026-12-15 18:02:44+00:00 (VALID: 113 days)
- - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -
`
		runner := &mockRunner{output: []byte(out)}
		c := New(runner, "certbot", "/var/www/certbot")

		certs, err := c.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(certs) != 2 {
			t.Fatalf("expected 2 certs, got %d", len(certs))
		}
		if certs[0].Name != "example.com" {
			t.Errorf("unexpected first cert: %s", certs[0].Name)
		}
		if certs[0].Expiry != "2026-11-01 09:30:12+00:00 (VALID: 69 days)" {
			t.Errorf("unexpected expiry: %s", certs[0].Expiry)
		}
		if certs[1].Name != "shop.example.com" {
			t.Errorf("unexpected second cert: %s", certs[1].Name)
		}
	})

	t.Run("no certificates", func(t *testing.T) {
		runner := &mockRunner{output: []byte("No certificates found.\n")}
		c := New(runner, "certbot", "/var/www/certbot")

		certs, err := c.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(certs) != 0 {
			t.Errorf("expected no certs, got %d", len(certs))
		}
	})

	t.Run("listing failure propagates", func(t *testing.T) {
		runner := &mockRunner{outErr: errors.New("exit status 1")}
		c := New(runner, "certbot", "/var/www/certbot")

		if _, err := c.List(); err == nil {
			t.Error("List should fail when certbot fails")
		}
	})
}
