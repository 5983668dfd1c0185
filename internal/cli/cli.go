// Package cli implements the mtbridge command: emit facade events through
// a configured logger, replay CLEF streams into a facade logger and inspect
// the effective configuration.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/willibrandon/mtbridge"
	"github.com/willibrandon/mtbridge/configuration"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/sinks"
)

const name = "mtbridge"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML or JSON configuration file",
		Sources: cli.EnvVars("MTBRIDGE_CONFIG"),
	}
	environmentFlag = &cli.StringFlag{
		Name:    "environment",
		Aliases: []string{"e"},
		Usage:   "Merge mtbridge.{environment}.yaml from the configuration directory",
		Sources: cli.EnvVars("MTBRIDGE_ENVIRONMENT"),
	}
)

// NewCommand returns the root command.
func NewCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Bridge events between the mtbridge facade and message-template loggers",
		Flags:   []cli.Flag{configFlag, environmentFlag},
		Commands: []*cli.Command{
			emitCmd(),
			replayCmd(),
			configCmd(),
			levelsCmd(),
		},
	}
}

// loadConfiguration reads the configuration selected by the global flags.
// With --environment, the base file is mtbridge.yaml in the directory of
// --config (or the working directory).
func loadConfiguration(cmd *cli.Command) (*configuration.Configuration, error) {
	path := cmd.String(configFlag.Name)
	if env := cmd.String(environmentFlag.Name); env != "" {
		dir := "."
		if path != "" {
			dir = filepath.Dir(path)
		}
		return configuration.LoadForEnvironment(dir, env)
	}
	return configuration.Load(path)
}

// buildLogger builds the configured logger. Without configured sinks,
// events are written as text to the command's output.
func buildLogger(cmd *cli.Command, cfg *configuration.Configuration, extra ...mtbridge.Option) (*mtbridge.Logger, error) {
	if len(cfg.MtBridge.WriteTo) == 0 {
		extra = append(extra, mtbridge.WithSink(sinks.NewConsoleSinkWithWriter(cmd.Root().Writer)))
	}
	logger, err := configuration.NewLoggerBuilder().Build(cfg, extra...)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(value string) (core.LogEventLevel, error) {
	level, err := core.ParseLevel(value)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %w", value, err)
	}
	return level, nil
}

// Run executes the command with the process arguments.
func Run(ctx context.Context, version string, args []string) error {
	return NewCommand(version).Run(ctx, args)
}
