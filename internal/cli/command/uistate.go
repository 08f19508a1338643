package command

import (
	"github.com/urfave/cli/v2"
)

// UIStateCommand returns the ui-state subcommand group.
func UIStateCommand() *cli.Command {
	return &cli.Command{
		Name:  "ui-state",
		Usage: "Panel position and minimized state of the presentation layer",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the stored state",
				Action: uiStateShow,
			},
			{
				Name:  "set",
				Usage: "Update the stored state; unset flags keep their value",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "x", Usage: "Horizontal position"},
					&cli.Float64Flag{Name: "y", Usage: "Vertical position"},
					&cli.BoolFlag{Name: "minimized", Usage: "Minimized flag"},
					&cli.BoolFlag{Name: "reset", Usage: "Forget the position before applying other flags"},
				},
				Action: uiStateSet,
			},
		},
	}
}

func uiStateShow(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}
	return env.Render(svc.UIState.Load(env.Context()))
}

func uiStateSet(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}
	ctx := env.Context()

	state := svc.UIState.Load(ctx)
	if c.Bool("reset") {
		state.X, state.Y = nil, nil
	}
	if c.IsSet("x") {
		x := c.Float64("x")
		state.X = &x
	}
	if c.IsSet("y") {
		y := c.Float64("y")
		state.Y = &y
	}
	if c.IsSet("minimized") {
		state.Minimized = c.Bool("minimized")
	}

	if err := svc.UIState.Save(ctx, state); err != nil {
		return err
	}
	return env.Render(state)
}
