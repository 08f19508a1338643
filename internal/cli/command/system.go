package command

import (
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/snapkeep-go/internal/cli/config"
	"github.com/yndnr/snapkeep-go/internal/cli/output"
	"github.com/yndnr/snapkeep-go/internal/infra/buildinfo"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show operation counters for this process or shell session",
		Description: "Counters cover the current process only: a single command\n" +
			"reports its own stats call, while inside `snapkeep shell` they\n" +
			"accumulate for the session. The snapshot gauge is read from the\n" +
			"store. Table output uses the Prometheus text format.",
		Action: systemStats,
	}
}

// sampleRow is one metric sample for structured output.
type sampleRow struct {
	Metric string  `json:"metric" yaml:"metric"`
	Labels string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Value  float64 `json:"value" yaml:"value"`
}

func systemStats(c *cli.Context) error {
	env, svc, err := open(c)
	if err != nil {
		return err
	}

	// Populates the snapshot gauge.
	if _, err := svc.Snapshots.List(env.Context()); err != nil {
		return err
	}

	if env.Format == output.FormatTable {
		return env.Metrics.WriteText(env.Out)
	}

	families, err := env.Metrics.Families()
	if err != nil {
		return err
	}
	return env.Render(samplesOf(families))
}

func samplesOf(families []*dto.MetricFamily) []sampleRow {
	var rows []sampleRow
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}

			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetUntyped() != nil:
				value = m.GetUntyped().GetValue()
			}

			rows = append(rows, sampleRow{
				Metric: mf.GetName(),
				Labels: strings.Join(pairs, ","),
				Value:  value,
			})
		}
	}
	return rows
}

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: configShow,
			},
			{
				Name:  "path",
				Usage: "Print the default config file path",
				Action: func(c *cli.Context) error {
					env, err := envFrom(c)
					if err != nil {
						return err
					}
					_, err = env.Out.Write([]byte(config.DefaultConfigPath() + "\n"))
					return err
				},
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	return env.Render(config.Sanitize(env.Config))
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			env, err := envFrom(c)
			if err != nil {
				return err
			}
			return env.Render(buildinfo.Get())
		},
	}
}
