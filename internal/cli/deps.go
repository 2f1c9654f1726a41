package cli

import (
	"github.com/pvolkov/certup/internal/compose"
	"github.com/pvolkov/certup/internal/config"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader   ConfigLoader
	ComposeFactory ComposeFactory
}

// ConfigLoader resolves the application configuration
type ConfigLoader interface {
	Load() (*config.Config, error)
}

// ComposeFactory creates compose wrappers for a compose file
type ComposeFactory interface {
	Create(file string) *compose.Compose
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:   &realConfigLoader{},
	ComposeFactory: &realComposeFactory{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to the packages

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

type realComposeFactory struct{}

func (r *realComposeFactory) Create(file string) *compose.Compose {
	return compose.New(file)
}
