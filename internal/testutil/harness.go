// Package testutil holds helpers shared by tests that drive the app end to end.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/app"
	"github.com/vk/fittings/internal/config"
	"github.com/vk/fittings/internal/handlers"
	"github.com/vk/fittings/internal/hcl_adapter"
	"github.com/vk/fittings/internal/yaml_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates files (relative path to content) under a fresh temporary
// directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Loader returns the loader the binary uses: HCL and YAML together.
func Loader() config.Loader {
	return config.Composite{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
}

// Harness is an App built over temporary declaration files.
type Harness struct {
	App  *app.App
	Dir  string
	Out  *SafeBuffer
	Logs *SafeBuffer
}

// NewHarness writes files, then builds an App over them with debug logging.
// An empty module list means the core modules.
func NewHarness(t *testing.T, files map[string]string, framework string, modules ...handlers.Module) *Harness {
	t.Helper()

	dir := WriteFiles(t, files)
	out, logs := &SafeBuffer{}, &SafeBuffer{}

	cfg, err := app.NewConfig(app.Config{
		Declarations: []string{dir},
		Framework:    framework,
		LogLevel:     "debug",
	})
	require.NoError(t, err)

	a, err := app.NewApp(out, logs, cfg, Loader(), modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("FITTINGS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &Harness{App: a, Dir: dir, Out: out, Logs: logs}
}
