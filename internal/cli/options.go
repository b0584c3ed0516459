// Package cli implements the epsp command: one-shot rendering of a waveform
// and an interactive mode that re-plots it as parameters change.
package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/render"
)

// EnvPrefix is prepended to flag names when read from the environment,
// e.g. EPSP_AMPLITUDE.
const EnvPrefix = "EPSP"

// Options is the resolved command line.
type Options struct {
	Params      epsp.Parameters
	Format      render.Format
	Output      string
	Interactive bool
}

// NewFlagSet defines the command's flags and binds them into v.
func NewFlagSet(name string, v *viper.Viper) *pflag.FlagSet {
	defaults := epsp.DefaultParameters()

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Float64P("amplitude", "a", defaults.Amplitude, "EPSP amplitude in mV, (0, 2]")
	fs.Float64P("frequency", "f", defaults.Frequency, "presynaptic firing rate in Hz, [1, 20]")
	fs.String("format", render.HTML.String(), "output format: html, csv or text")
	fs.StringP("output", "o", "-", "output file, - for stdout")
	fs.BoolP("interactive", "i", false, "adjust parameters from stdin and preview in the terminal")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindPFlags(fs)
	return fs
}

// LoadOptions resolves flags, environment and defaults held by v.
func LoadOptions(v *viper.Viper) (Options, error) {
	format, err := render.ParseFormat(v.GetString("format"))
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Params: epsp.Parameters{
			Amplitude: v.GetFloat64("amplitude"),
			Frequency: v.GetFloat64("frequency"),
		},
		Format:      format,
		Output:      v.GetString("output"),
		Interactive: v.GetBool("interactive"),
	}
	if err := opts.Params.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid parameters: %w", err)
	}
	if opts.Output == "" {
		opts.Output = "-"
	}
	return opts, nil
}
