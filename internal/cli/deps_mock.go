package cli

import (
	"github.com/pvolkov/certup/internal/compose"
	"github.com/pvolkov/certup/internal/config"
	"github.com/pvolkov/certup/internal/executor"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg     *config.Config
	LoadErr error
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

// MockComposeFactory creates compose wrappers backed by a shared mock
// executor so tests can verify the exact commands that ran
type MockComposeFactory struct {
	Exec    *executor.MockExecutor
	Created []string
}

func (m *MockComposeFactory) Create(file string) *compose.Compose {
	m.Created = append(m.Created, file)
	return compose.NewWithExecutor(file, m.Exec)
}

// newMockDeps wires mock dependencies around cfg and returns the
// executor for call inspection
func newMockDeps(cfg *config.Config) (*Dependencies, *executor.MockExecutor) {
	mock := &executor.MockExecutor{}
	return &Dependencies{
		ConfigLoader:   &MockConfigLoader{Cfg: cfg},
		ComposeFactory: &MockComposeFactory{Exec: mock},
	}, mock
}
