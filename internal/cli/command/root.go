package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snapkeep-go/internal/cli/config"
	"github.com/yndnr/snapkeep-go/internal/cli/output"
	"github.com/yndnr/snapkeep-go/internal/infra/buildinfo"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
	"github.com/yndnr/snapkeep-go/internal/telemetry/metric"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "snapkeep",
		Usage:   "Save, switch and export snapshots of a host application's configuration",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SaveCommand(),
			ListCommand(),
			LoadCommand(),
			DeleteCommand(),
			ExportCommand(),
			HostCommand(),
			UIStateCommand(),
			StatsCommand(),
			ConfigCommand(),
			VersionCommand(),
			ShellCommand(),
		},
		Before:   setup,
		After:    teardown,
		Metadata: map[string]any{},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default: " + config.DefaultConfigPath() + ")",
			EnvVars: []string{"SNAPKEEP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Storage engine: memory, file, sqlite, badger",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "Store location (file, database or directory, depending on engine)",
		},
		&cli.StringFlag{
			Name:  "host-key",
			Usage: "Key holding the host application's active configuration",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output (debug logging)",
		},
	}
}

// flagOverrides maps global flags to config keys. Only flags set on the
// command line override lower layers.
var flagOverrides = map[string]string{
	"engine":    "storage.engine",
	"data":      "storage.path",
	"host-key":  "host.config_key",
	"log-level": "log.level",
}

// Env is the per-invocation environment shared by all commands.
type Env struct {
	Config  *config.Config
	Logger  logger.Logger
	Metrics *metric.Registry
	Format  output.Format
	Out     io.Writer

	ctx      context.Context
	services *Services
}

// Context returns the invocation context carrying logger and operation ID.
func (e *Env) Context() context.Context {
	return e.ctx
}

// Render writes data in the selected output format.
func (e *Env) Render(data any) error {
	return output.NewFormatter(e.Format).Format(e.Out, data)
}

// Close releases the store, if one was opened.
func (e *Env) Close() error {
	if e.services == nil {
		return nil
	}
	err := e.services.Close()
	e.services = nil
	return err
}

// setup loads configuration and builds the logger for the invocation.
func setup(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	overrides := make(map[string]any)
	for flag, key := range flagOverrides {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	opID := logger.NewOperationID()
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithOperationID(logger.WithLogger(ctx, log), opID)

	c.App.Metadata[envKey] = &Env{
		Config:  cfg,
		Logger:  log,
		Metrics: metric.NewRegistry(),
		Format:  format,
		Out:     c.App.Writer,
		ctx:     ctx,
	}

	logger.L(ctx).Debug("invocation started",
		"engine", cfg.Storage.Engine,
		"path", cfg.Storage.Path,
		"host_key", cfg.Host.ConfigKey,
	)
	return nil
}

func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	return env.Close()
}

// envFrom returns the environment prepared by setup.
func envFrom(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}
	return nil, fmt.Errorf("command environment not initialized")
}
