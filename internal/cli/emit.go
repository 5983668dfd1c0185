package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"

	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/facade"
	"github.com/willibrandon/mtbridge/metrics"
)

func emitCmd() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "Log one facade event through the configured logger",
		ArgsUsage: "TEMPLATE [ARG...]",
		Description: `Creates a facade event from TEMPLATE and positional ARGs and writes it
through a LogAdapter. Placeholders bind by index ({0}) or by position ({Name}).

  mtbridge emit --level warn --context Orders "Order {Id} delayed" 42`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Event level (debug, info, warn, error, fatal)",
			},
			&cli.StringSliceFlag{
				Name:  "context",
				Usage: "Source context segment; repeat to nest",
			},
			&cli.StringSliceFlag{
				Name:    "property",
				Aliases: []string{"p"},
				Usage:   "Event property as name=value; repeat for more",
			},
			&cli.StringFlag{
				Name:  "error",
				Usage: "Attach an error with this message",
			},
			&cli.BoolFlag{
				Name:  "destructure",
				Usage: "Capture struct-valued properties field by field",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print bridge metrics in Prometheus text format after emitting",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("missing message template")
			}

			coreLevel, err := parseLevel(cmd.String("level"))
			if err != nil {
				return err
			}
			level, err := bridge.ToFacadeLevel(coreLevel)
			if err != nil {
				return err
			}

			event, err := buildEvent(level, cmd.Args().Slice(), cmd.StringSlice("property"), cmd.String("error"))
			if err != nil {
				return err
			}

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			logger, err := buildLogger(cmd, cfg)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			observer, err := metrics.NewPrometheusObserver(reg)
			if err != nil {
				return err
			}
			opts := []bridge.Option{bridge.WithObserver(observer)}
			if cmd.Bool("destructure") {
				opts = append(opts, bridge.WithDestructuring())
			}

			var target facade.Logger = logger.AsFacade(opts...)
			for _, segment := range cmd.StringSlice("context") {
				target = target.ForContext(segment)
			}
			target.Log(event)

			if err := logger.Close(); err != nil {
				return fmt.Errorf("failed to close logger: %w", err)
			}

			if cmd.Bool("metrics") {
				return writeMetrics(cmd, reg)
			}
			return nil
		},
	}
}

func buildEvent(level facade.Level, args, properties []string, errMessage string) (*facade.LogEvent, error) {
	values := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		values = append(values, a)
	}
	event := facade.NewLogEvent(level, args[0], values...)

	for _, p := range properties {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid property %q, expected name=value", p)
		}
		event = event.WithProperty(strings.TrimSpace(name), value)
	}
	if errMessage != "" {
		event = event.WithError(fmt.Errorf("%s", errMessage))
	}
	return event, nil
}

func writeMetrics(cmd *cli.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.Root().Writer, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
