package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// HostCommand returns the host subcommand group.
func HostCommand() *cli.Command {
	return &cli.Command{
		Name:  "host",
		Usage: "Inspect or seed the host's active configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the active configuration",
				Action: hostShow,
			},
			{
				Name:  "import",
				Usage: "Replace the active configuration with a file's contents",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Read from `FILE` (- for stdin)",
						Required: true,
					},
				},
				Action: hostImport,
			},
		},
	}
}

func hostShow(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	blob, err := svc.Bridge.CaptureCurrent(env.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(env.Out, blob)
	if !strings.HasSuffix(blob, "\n") {
		fmt.Fprintln(env.Out)
	}
	return nil
}

func hostImport(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	data, err := readInput(c, c.String("file"))
	if err != nil {
		return err
	}

	if err := svc.Bridge.Apply(env.Context(), string(data)); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Imported %d bytes into %s.\n", len(data), svc.Bridge.HostKey())
	return nil
}

// readInput reads path, or the app's reader when path is "-".
func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
