// Package compose wraps the docker compose CLI for the site stack.
//
// Commands run against a single compose file. The modern `docker
// compose` plugin is preferred; the legacy docker-compose binary is
// used as a fallback when the docker CLI is not on the PATH.
package compose

import (
	"fmt"
	"io"
	"os"

	cerrors "github.com/pvolkov/certup/internal/errors"
	"github.com/pvolkov/certup/internal/executor"
	"github.com/pvolkov/certup/internal/logger"
)

// Compose runs compose subcommands for one project stack.
type Compose struct {
	file string
	exec executor.CommandExecutor
	out  io.Writer
}

// New creates a Compose for the given compose file.
func New(file string) *Compose {
	return &Compose{
		file: file,
		exec: executor.NewSystemExecutor(),
		out:  os.Stdout,
	}
}

// NewWithExecutor creates a Compose with a custom executor (for testing).
func NewWithExecutor(file string, exec executor.CommandExecutor) *Compose {
	return &Compose{
		file: file,
		exec: exec,
		out:  io.Discard,
	}
}

// SetOutput redirects streamed command output. Default is stdout.
func (c *Compose) SetOutput(w io.Writer) {
	c.out = w
}

// File returns the compose file path commands run against.
func (c *Compose) File() string {
	return c.file
}

// resolve picks the compose invocation. Returns the binary name and
// the argument prefix placed before the subcommand.
func (c *Compose) resolve() (string, []string, error) {
	if _, err := c.exec.LookPath("docker"); err == nil {
		return "docker", []string{"compose"}, nil
	}
	if _, err := c.exec.LookPath("docker-compose"); err == nil {
		return "docker-compose", nil, nil
	}
	return "", nil, cerrors.ErrComposeNotFound
}

// IsInstalled checks whether a compose implementation is available.
func (c *Compose) IsInstalled() bool {
	_, _, err := c.resolve()
	return err == nil
}

// Version returns the compose version string, for diagnostics.
func (c *Compose) Version() (string, error) {
	name, prefix, err := c.resolve()
	if err != nil {
		return "", err
	}
	out, err := c.exec.Execute(name, append(prefix, "version", "--short")...)
	if err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeCompose, "compose version failed", err)
	}
	return string(out), nil
}

// args assembles a full argument list for a subcommand.
func (c *Compose) args(prefix []string, sub ...string) []string {
	full := append([]string{}, prefix...)
	full = append(full, "-f", c.file)
	return append(full, sub...)
}

// Up starts the given services detached. With no services, the whole
// stack is started.
func (c *Compose) Up(services ...string) error {
	name, prefix, err := c.resolve()
	if err != nil {
		return err
	}

	sub := append([]string{"up", "-d"}, services...)
	logger.Debug("compose up: %s %v", name, sub)
	if err := c.exec.Stream(c.out, name, c.args(prefix, sub...)...); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeCompose, "compose up failed", err)
	}
	return nil
}

// RunRm runs a one-off container for service with the given command
// arguments, removing the container afterwards.
func (c *Compose) RunRm(service string, cmdArgs ...string) error {
	name, prefix, err := c.resolve()
	if err != nil {
		return err
	}

	sub := append([]string{"run", "--rm", service}, cmdArgs...)
	logger.Debug("compose run: %s %v", name, sub)
	if err := c.exec.Stream(c.out, name, c.args(prefix, sub...)...); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeCompose, fmt.Sprintf("compose run %s failed", service), err)
	}
	return nil
}

// RunRmOutput is RunRm with combined output captured instead of
// streamed, for subcommands whose output gets parsed.
func (c *Compose) RunRmOutput(service string, cmdArgs ...string) ([]byte, error) {
	name, prefix, err := c.resolve()
	if err != nil {
		return nil, err
	}

	sub := append([]string{"run", "--rm", service}, cmdArgs...)
	logger.Debug("compose run: %s %v", name, sub)
	out, err := c.exec.Execute(name, c.args(prefix, sub...)...)
	if err != nil {
		return out, cerrors.Wrap(cerrors.ErrCodeCompose, fmt.Sprintf("compose run %s failed: %s", service, string(out)), err)
	}
	return out, nil
}

// Exec executes a command inside a running service container and
// returns combined output. Runs without a TTY so it is safe from
// non-interactive contexts like cron.
func (c *Compose) Exec(service string, argv ...string) ([]byte, error) {
	name, prefix, err := c.resolve()
	if err != nil {
		return nil, err
	}

	sub := append([]string{"exec", "-T", service}, argv...)
	logger.Debug("compose exec: %s %v", name, sub)
	out, err := c.exec.Execute(name, c.args(prefix, sub...)...)
	if err != nil {
		return out, cerrors.Wrap(cerrors.ErrCodeCompose, fmt.Sprintf("compose exec %s failed: %s", service, string(out)), err)
	}
	return out, nil
}
