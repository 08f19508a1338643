package command

import (
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snapkeep-go/internal/cli/config"
	"github.com/yndnr/snapkeep-go/internal/cli/repl"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive mode: run commands against one opened store",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not read or write the shell history file",
			},
		},
		Action: shellRun,
	}
}

// shellCommands are the commands available inside the shell.
func shellCommands() []*cli.Command {
	return []*cli.Command{
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
	}
}

// commandPaths lists "name" and "name sub" for every shell command.
func commandPaths(cmds []*cli.Command) []string {
	var paths []string
	for _, cmd := range cmds {
		for _, name := range cmd.Names() {
			paths = append(paths, name)
			for _, sub := range cmd.Subcommands {
				paths = append(paths, name+" "+sub.Name)
			}
		}
	}
	return paths
}

func shellRun(c *cli.Context) error {
	env, _, err := open(c)
	if err != nil {
		return err
	}
	log := logger.L(env.Context())

	historyFile := filepath.Join(config.DataDir(), "shell_history")
	if c.Bool("no-history") {
		historyFile = ""
	}
	history := repl.NewHistory(historyFile, repl.DefaultHistorySize)
	if err := history.Load(); err != nil {
		log.Warn("failed to load shell history", "file", historyFile, "error", err)
	}

	exec := func(args []string) error {
		app := &cli.App{
			Name:           "snapkeep",
			HideVersion:    true,
			Commands:       shellCommands(),
			Metadata:       map[string]any{envKey: env},
			Reader:         c.App.Reader,
			Writer:         env.Out,
			ErrWriter:      c.App.ErrWriter,
			ExitErrHandler: func(*cli.Context, error) {},
		}
		return app.RunContext(env.Context(), append([]string{"snapkeep"}, args...))
	}

	r := repl.New(exec,
		repl.WithIO(c.App.Reader, env.Out),
		repl.WithCompleter(repl.NewCompleter(commandPaths(shellCommands()))),
		repl.WithHistory(history),
	)
	runErr := r.Run(env.Context())

	if err := history.Save(); err != nil {
		log.Warn("failed to save shell history", "file", historyFile, "error", err)
	}
	return runErr
}
