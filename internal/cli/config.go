package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/configuration"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as YAML",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "env",
				Usage: "List the environment variables that override the configuration",
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Build the logger to check sinks, enrichers and filters",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			if cmd.Bool("env") {
				_, err := fmt.Fprintln(out, configuration.Usage())
				return err
			}

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("validate") {
				logger, err := configuration.NewLoggerBuilder().Build(cfg)
				if err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
				if err := logger.Close(); err != nil {
					return err
				}
			}
			return configuration.Dump(out, cfg)
		},
	}
}

func levelsCmd() *cli.Command {
	return &cli.Command{
		Name:  "levels",
		Usage: "Show how levels map between the facade and mtbridge",
		Action: func(_ context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			fmt.Fprintln(out, "facade -> mtbridge")
			for level := facade.Debug; level <= facade.Fatal; level++ {
				target, err := bridge.ToCoreLevel(level)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-6s %s\n", level, target)
			}
			fmt.Fprintln(out, "mtbridge -> facade")
			for level := core.VerboseLevel; level <= core.FatalLevel; level++ {
				target, err := bridge.ToFacadeLevel(level)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-12s %s\n", level, target)
			}
			return nil
		},
	}
}
