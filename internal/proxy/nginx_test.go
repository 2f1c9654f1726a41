package proxy

import (
	"errors"
	"reflect"
	"testing"

	cerrors "github.com/pvolkov/certup/internal/errors"
)

type mockExecer struct {
	err   error
	out   []byte
	calls [][]string
}

func (m *mockExecer) Exec(service string, argv ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{service}, argv...))
	return m.out, m.err
}

func TestTest(t *testing.T) {
	t.Run("runs nginx -t", func(t *testing.T) {
		execer := &mockExecer{}
		n := New(execer, "nginx")

		if err := n.Test(); err != nil {
			t.Fatalf("Test failed: %v", err)
		}

		want := []string{"nginx", "nginx", "-t"}
		if !reflect.DeepEqual(execer.calls[0], want) {
			t.Errorf("expected %v, got %v", want, execer.calls[0])
		}
	})

	t.Run("failure includes output", func(t *testing.T) {
		execer := &mockExecer{out: []byte("unexpected token"), err: errors.New("exit status 1")}
		n := New(execer, "nginx")

		err := n.Test()
		if err == nil {
			t.Fatal("Test should fail")
		}
		if !cerrors.Is(err, &cerrors.CertupError{Code: cerrors.ErrCodeProxy}) {
			t.Errorf("expected PROXY error, got %v", err)
		}
	})
}

func TestReload(t *testing.T) {
	t.Run("sends reload signal", func(t *testing.T) {
		execer := &mockExecer{}
		n := New(execer, "web")

		if err := n.Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}

		want := []string{"web", "nginx", "-s", "reload"}
		if !reflect.DeepEqual(execer.calls[0], want) {
			t.Errorf("expected %v, got %v", want, execer.calls[0])
		}
	})

	t.Run("failure propagates", func(t *testing.T) {
		execer := &mockExecer{err: errors.New("exit status 1")}
		n := New(execer, "nginx")

		if err := n.Reload(); err == nil {
			t.Error("Reload should fail")
		}
	})
}

func TestTestAndReload(t *testing.T) {
	t.Run("tests then reloads", func(t *testing.T) {
		execer := &mockExecer{}
		n := New(execer, "nginx")

		if err := n.TestAndReload(); err != nil {
			t.Fatalf("TestAndReload failed: %v", err)
		}

		if len(execer.calls) != 2 {
			t.Fatalf("expected 2 calls, got %d", len(execer.calls))
		}
		if execer.calls[0][2] != "-t" {
			t.Errorf("expected config test first, got %v", execer.calls[0])
		}
		if execer.calls[1][3] != "reload" {
			t.Errorf("expected reload second, got %v", execer.calls[1])
		}
	})

	t.Run("reload skipped when test fails", func(t *testing.T) {
		execer := &mockExecer{err: errors.New("exit status 1")}
		n := New(execer, "nginx")

		if err := n.TestAndReload(); err == nil {
			t.Fatal("expected error")
		}
		if len(execer.calls) != 1 {
			t.Errorf("reload should not run after failed test, got %d calls", len(execer.calls))
		}
	})
}
