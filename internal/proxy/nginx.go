// Package proxy signals the reverse proxy running inside the compose
// stack. A reload makes nginx re-read configuration and certificates
// without dropping connections.
package proxy

import (
	cerrors "github.com/pvolkov/certup/internal/errors"
	"github.com/pvolkov/certup/internal/logger"
	"github.com/pvolkov/certup/internal/output"
)

// Execer executes commands inside a running service container.
// Implemented by *compose.Compose.
type Execer interface {
	Exec(service string, argv ...string) ([]byte, error)
}

// Nginx controls the nginx service of the stack.
type Nginx struct {
	execer  Execer
	service string
}

// New creates an Nginx controller for the given compose service.
func New(execer Execer, service string) *Nginx {
	return &Nginx{execer: execer, service: service}
}

// Name returns the compose service name.
func (n *Nginx) Name() string {
	return n.service
}

// Test validates the nginx configuration syntax.
func (n *Nginx) Test() error {
	out, err := n.execer.Exec(n.service, "nginx", "-t")
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeProxy, "config test failed: "+string(out), err)
	}
	return nil
}

// Reload signals nginx to re-read configuration and certificates.
func (n *Nginx) Reload() error {
	logger.Debug("reloading %s", n.service)
	out, err := n.execer.Exec(n.service, "nginx", "-s", "reload")
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeProxy, "reload failed: "+string(out), err)
	}
	return nil
}

// TestAndReload tests the configuration and reloads on success.
func (n *Nginx) TestAndReload() error {
	output.Info("Testing %s configuration...", n.service)
	if err := n.Test(); err != nil {
		return err
	}

	output.Info("Reloading %s...", n.service)
	return n.Reload()
}
