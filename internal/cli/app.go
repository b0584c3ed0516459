package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/render"
)

// App is the explicitly constructed state of one epsp invocation.
type App struct {
	opts Options
	in   io.Reader
	out  io.Writer
}

func New(opts Options, in io.Reader, out io.Writer) *App {
	return &App{opts: opts, in: in, out: out}
}

// Run renders the configured waveform, or starts the interactive loop.
func (a *App) Run(ctx context.Context) error {
	if a.opts.Interactive {
		return a.interactive(ctx)
	}

	wf, err := epsp.Synthesize(a.opts.Params)
	if err != nil {
		return err
	}
	if a.opts.Output == "-" {
		return render.Render(a.out, a.opts.Format, wf)
	}

	f, err := os.Create(a.opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := render.Render(f, a.opts.Format, wf); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().
		Str("path", a.opts.Output).
		Stringer("format", a.opts.Format).
		Float64("amplitude", wf.Params.Amplitude).
		Float64("frequency", wf.Params.Frequency).
		Msg("Wrote waveform")
	return nil
}

const help = `commands:
  amp <mV>        set amplitude, (0, 2]
  slider <1-100>  set amplitude from slider position (value/50 mV)
  freq <Hz>       set frequency, [1, 20]
  show            re-plot the current waveform
  quit            exit`

var errQuit = errors.New("quit")

func (a *App) interactive(ctx context.Context) error {
	explorer, err := epsp.NewExplorer(a.opts.Params)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, help)
	wf, err := explorer.Current()
	if err != nil {
		return err
	}
	if err := render.WriteText(a.out, wf); err != nil {
		return err
	}

	in := bufio.NewScanner(a.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, "> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		wf, err := a.execute(explorer, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		if wf != nil {
			if err := render.WriteText(a.out, wf); err != nil {
				return err
			}
		}
	}
	return in.Err()
}

// execute applies one command line to the explorer. A nil waveform and nil
// error means there is nothing to plot.
func (a *App) execute(explorer *epsp.Explorer, line string) (*epsp.Waveform, error) {
	fields := strings.Fields(strings.ToLower(line))
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return nil, errQuit
	case "help", "?":
		fmt.Fprintln(a.out, help)
		return nil, nil
	case "show":
		return explorer.Current()
	case "amp", "amplitude":
		v, err := floatArg(cmd, args)
		if err != nil {
			return nil, err
		}
		return explorer.SetAmplitude(v)
	case "slider":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: slider <1-100>")
		}
		raw, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("slider: %q is not an integer", args[0])
		}
		v, err := epsp.AmplitudeFromSlider(raw)
		if err != nil {
			return nil, err
		}
		return explorer.SetAmplitude(v)
	case "freq", "frequency":
		v, err := floatArg(cmd, args)
		if err != nil {
			return nil, err
		}
		return explorer.SetFrequency(v)
	default:
		return nil, fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func floatArg(cmd string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <value>", cmd)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", cmd, args[0])
	}
	return v, nil
}
