package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/infra/confloader"
	"github.com/yndnr/snapkeep-go/internal/infra/shutdown"
	"github.com/yndnr/snapkeep-go/internal/storage"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
)

// snapshotRow is one snapshot as shown by list and save.
type snapshotRow struct {
	Label   string `json:"label" yaml:"label"`
	Key     string `json:"key" yaml:"key"`
	Name    string `json:"name" yaml:"name" table:"-"`
	SavedAt string `json:"savedAt,omitempty" yaml:"savedAt,omitempty" table:"-"`
}

func rowOf(e domain.Entry) snapshotRow {
	return snapshotRow{
		Label:   e.Label(),
		Key:     e.StorageKey,
		Name:    e.Name,
		SavedAt: e.SavedAt(),
	}
}

// selectorFlag addresses a snapshot by storage key instead of by name.
var selectorFlag = &cli.StringFlag{
	Name:    "key",
	Aliases: []string{"k"},
	Usage:   "Storage key of the snapshot (as shown by list)",
}

// selectedKey resolves the snapshot addressed by --key or the NAME
// argument. An empty result is rejected by the services as nothing
// selected.
func selectedKey(c *cli.Context) string {
	if key := c.String("key"); key != "" {
		return key
	}
	if name := c.Args().First(); name != "" {
		return domain.StorageKeyOf(name)
	}
	return ""
}

// SaveCommand returns the save command.
func SaveCommand() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save the host's active configuration as a snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Snapshot name (default: Profile <timestamp>)",
			},
		},
		Action: snapshotSave,
	}
}

func snapshotSave(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}
	ctx := env.Context()

	blob, err := svc.Bridge.CaptureCurrent(ctx)
	if err != nil {
		return err
	}

	entry, err := svc.Snapshots.Save(ctx, c.String("name"), blob)
	if entry.StorageKey == "" {
		return err
	}
	if renderErr := env.Render(rowOf(entry)); renderErr != nil {
		return renderErr
	}
	// A metadata failure leaves a usable payload behind; still report it.
	return err
}

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List saved snapshots",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Re-list whenever the store changes (file and sqlite engines)",
			},
		},
		Action: snapshotList,
	}
}

func snapshotList(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	if err := renderList(env, svc); err != nil {
		return err
	}
	if !c.Bool("watch") {
		return nil
	}
	return watchList(env, svc, shutdown.NewHandler(5*time.Second))
}

func renderList(env *Env, svc *Services) error {
	entries, err := svc.Snapshots.List(env.Context())
	if err != nil {
		return err
	}

	rows := make([]snapshotRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, rowOf(e))
	}
	return env.Render(rows)
}

// watchList re-renders the listing on every change of the store file
// until h is triggered or the process is signalled.
func watchList(env *Env, svc *Services, h *shutdown.Handler) error {
	path := env.Config.Storage.Path
	switch env.Config.Storage.Engine {
	case storage.EngineFile, storage.EngineSQLite:
	default:
		return fmt.Errorf("--watch is not supported with the %s engine", env.Config.Storage.Engine)
	}

	log := logger.L(env.Context())
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(env.Logger)))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var mu sync.Mutex
	w.OnChange(func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		log.Debug("store changed", "path", changed)
		fmt.Fprintln(env.Out)
		if err := renderList(env, svc); err != nil {
			log.Warn("re-list failed", "error", err)
		}
	})
	h.OnShutdown(func(_ context.Context) error {
		return w.Stop()
	})

	w.StartAsync()
	return h.WaitContext(env.Context())
}

// LoadCommand returns the load command.
func LoadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Make a snapshot the host's active configuration",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{selectorFlag},
		Action:    snapshotLoad,
	}
}

func snapshotLoad(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	key := selectedKey(c)
	if err := svc.Bridge.Load(env.Context(), svc.Snapshots, key); err != nil {
		return err
	}

	name, _ := domain.NameOf(key)
	fmt.Fprintf(env.Out, "Loaded %q into %s. Reload the host application to apply it.\n", name, svc.Bridge.HostKey())
	return nil
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a snapshot and its metadata",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{selectorFlag},
		Action:    snapshotDelete,
	}
}

func snapshotDelete(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	key := selectedKey(c)
	if err := svc.Snapshots.Delete(env.Context(), key); err != nil {
		return err
	}

	name, _ := domain.NameOf(key)
	fmt.Fprintf(env.Out, "Deleted %q.\n", name)
	return nil
}

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write a snapshot's payload to stdout or a file",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			selectorFlag,
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Write to `FILE` instead of stdout",
			},
		},
		Action: snapshotExport,
	}
}

func snapshotExport(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	key := selectedKey(c)
	path := c.String("file")
	if path == "" {
		return svc.Snapshots.Export(env.Context(), key, env.Out)
	}

	var buf bytes.Buffer
	if err := svc.Snapshots.Export(env.Context(), key, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	logger.L(env.Context()).Info("snapshot exported", "key", key, "file", path)
	return nil
}

// open returns the environment and its services.
func open(c *cli.Context) (*Env, *Services, error) {
	env, err := envFrom(c)
	if err != nil {
		return nil, nil, err
	}
	svc, err := env.Services()
	if err != nil {
		return nil, nil, err
	}
	return env, svc, nil
}
