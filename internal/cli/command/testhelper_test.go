package command

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// storeArgs isolates the test from user config and returns global flags
// selecting a fresh file store.
func storeArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return []string{"--engine", "file", "--data", filepath.Join(dir, "localstorage.json")}
}

// runApp runs a fresh App with args and returns what it wrote to stdout.
func runApp(t *testing.T, global []string, args ...string) (string, error) {
	t.Helper()
	return runAppWithInput(t, "", global, args...)
}

func runAppWithInput(t *testing.T, input string, global []string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(input)
	app.Writer = &out
	app.ErrWriter = &errOut

	argv := append([]string{"snapkeep"}, global...)
	argv = append(argv, args...)
	err := app.Run(argv)
	if errOut.Len() > 0 {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), err
}

// mustRun fails the test if the command fails.
func mustRun(t *testing.T, global []string, args ...string) string {
	t.Helper()
	out, err := runApp(t, global, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*syncBuffer)(nil)

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
