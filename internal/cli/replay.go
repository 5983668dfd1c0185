package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/urfave/cli/v3"

	mtlogr "github.com/willibrandon/mtbridge/adapters/logr"
	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/facade"
	"github.com/willibrandon/mtbridge/formatters"
)

const maxLineSize = 1 << 20

func replayCmd() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Replay CLEF events into a facade logger",
		ArgsUsage: "[FILE]",
		Description: `Reads one CLEF JSON event per line from FILE (or standard input) and
forwards each through a ReverseSink. Levels collapse to the facade's five and
SourceContext becomes the facade "logger" property.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Value:   "debug",
				Usage:   "Minimum level written (debug, info, warn, error, fatal)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format: text or logr (funcr JSON)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on the first line that is not a CLEF event",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			coreLevel, err := parseLevel(cmd.String("level"))
			if err != nil {
				return err
			}
			minimum, err := bridge.ToFacadeLevel(coreLevel)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			var target facade.Logger
			switch format := cmd.String("format"); format {
			case "text":
				target = facade.NewTextLogger(out, minimum)
			case "logr":
				target = &minimumLevel{
					Logger:  mtlogr.NewFacade(funcr.NewJSON(func(obj string) { fmt.Fprintln(out, obj) }, funcr.Options{Verbosity: 1})),
					minimum: minimum,
				}
			default:
				return fmt.Errorf("unknown output format: %q", format)
			}

			in := cmd.Root().Reader
			if path := cmd.Args().First(); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				defer f.Close()
				in = f
			}

			replayed, skipped, err := replay(in, bridge.NewReverseSink(target), cmd.Bool("strict"))
			fmt.Fprintf(cmd.Root().ErrWriter, "replayed %d events, skipped %d lines\n", replayed, skipped)
			return err
		},
	}
}

// replay forwards every CLEF line of r to sink. Blank lines are ignored.
func replay(r io.Reader, sink *bridge.ReverseSink, strict bool) (replayed, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for line := 1; scanner.Scan(); line++ {
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		event, err := formatters.ParseCLEF(text)
		if err != nil {
			if strict {
				return replayed, skipped, fmt.Errorf("line %d: %w", line, err)
			}
			skipped++
			continue
		}
		sink.Emit(event)
		replayed++
	}
	if err := scanner.Err(); err != nil {
		return replayed, skipped, fmt.Errorf("failed to read events: %w", err)
	}
	return replayed, skipped, nil
}

// minimumLevel drops events below minimum before they reach Logger.
type minimumLevel struct {
	facade.Logger
	minimum facade.Level
}

func (m *minimumLevel) IsEnabledFor(level facade.Level) bool {
	return level >= m.minimum && m.Logger.IsEnabledFor(level)
}

func (m *minimumLevel) Log(event *facade.LogEvent) {
	if event != nil && m.IsEnabledFor(event.Level()) {
		m.Logger.Log(event)
	}
}

func (m *minimumLevel) ForContext(name string) facade.Logger {
	return &minimumLevel{Logger: m.Logger.ForContext(name), minimum: m.minimum}
}
