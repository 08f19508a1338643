package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
)

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "snapkeep" {
		t.Errorf("Name = %q, want snapkeep", app.Name)
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"save", "list", "load", "delete", "export", "host", "ui-state", "stats", "config", "version", "shell"} {
		if !names[want] {
			t.Errorf("missing command: %s", want)
		}
	}

	flags := make(map[string]bool)
	for _, f := range app.Flags {
		for _, n := range f.Names() {
			flags[n] = true
		}
	}
	for _, want := range []string{"config", "c", "engine", "data", "host-key", "output", "o", "log-level", "verbose"} {
		if !flags[want] {
			t.Errorf("missing global flag: %s", want)
		}
	}
}

func TestSetup_InvalidOutput(t *testing.T) {
	global := append(storeArgs(t), "--output", "xml")
	_, err := runApp(t, global, "list")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("err = %v, want unknown format", err)
	}
}

func TestSetup_InvalidConfig(t *testing.T) {
	global := append(storeArgs(t), "--host-key", domain.UIStateKey)
	_, err := runApp(t, global, "list")
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSetup_MissingConfigFile(t *testing.T) {
	global := append(storeArgs(t), "--config", "/nonexistent/snapkeep.yaml")
	if _, err := runApp(t, global, "list"); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestConfigShow_MasksKey(t *testing.T) {
	global := append(storeArgs(t), "-o", "json")
	t.Setenv("SNAPKEEP_SECURITY_ENCRYPTION_KEY", "correct horse battery staple")

	out := mustRun(t, global, "config", "show")
	if strings.Contains(out, "correct horse battery staple") {
		t.Errorf("config show leaked the encryption key:\n%s", out)
	}
	if !strings.Contains(out, `"engine": "file"`) {
		t.Errorf("config show output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, append(storeArgs(t), "-o", "json"), "version")
	if !strings.Contains(out, `"version"`) || !strings.Contains(out, `"go_version"`) {
		t.Errorf("version output:\n%s", out)
	}
}

func TestShell(t *testing.T) {
	global := storeArgs(t)
	seedHost(t, global, hostBlob)

	input := "save --name \"Shell Profile\"\nlist\nexport 'Shell Profile'\nsve\nload ghost\nexit\n"
	out, err := runAppWithInput(t, input, global, "shell", "--no-history")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}

	for _, want := range []string{
		"snapkeep> ",
		"Shell Profile (",
		hostBlob,
		`unknown command "sve"`,
		"error: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q:\n%s", want, out)
		}
	}

	// The shell saved through the same store.
	rows := listRows(t, global)
	if len(rows) != 1 || rows[0].Name != "Shell Profile" {
		t.Errorf("list = %+v", rows)
	}
}

func TestCommandPaths(t *testing.T) {
	paths := commandPaths(shellCommands())
	set := make(map[string]bool)
	for _, p := range paths {
		set[p] = true
	}
	for _, want := range []string{"save", "ls", "host show", "host import", "ui-state set", "rm"} {
		if !set[want] {
			t.Errorf("missing path %q in %v", want, paths)
		}
	}
	if set["shell"] {
		t.Error("shell must not be nested")
	}
}
