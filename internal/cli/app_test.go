package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/render"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	v := viper.New()
	fs := NewFlagSet("epsp", v)
	require.NoError(t, fs.Parse(args))
	return LoadOptions(v)
}

func TestLoadOptions(t *testing.T) {
	opts, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, epsp.DefaultParameters(), opts.Params)
	assert.Equal(t, render.HTML, opts.Format)
	assert.Equal(t, "-", opts.Output)
	assert.False(t, opts.Interactive)

	opts, err = parse(t, "-a", "0.4", "--frequency=12", "--format", "csv", "-o", "out.csv", "-i")
	require.NoError(t, err)
	assert.Equal(t, epsp.Parameters{Amplitude: 0.4, Frequency: 12}, opts.Params)
	assert.Equal(t, render.CSV, opts.Format)
	assert.Equal(t, "out.csv", opts.Output)
	assert.True(t, opts.Interactive)
}

func TestLoadOptions_Environment(t *testing.T) {
	t.Setenv("EPSP_FREQUENCY", "3")
	t.Setenv("EPSP_FORMAT", "text")

	opts, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 3.0, opts.Params.Frequency)
	assert.Equal(t, render.Text, opts.Format)

	// flags win over the environment
	opts, err = parse(t, "--frequency", "4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, opts.Params.Frequency)
}

func TestLoadOptions_Invalid(t *testing.T) {
	_, err := parse(t, "--amplitude", "0")
	assert.ErrorIs(t, err, epsp.ErrInvalidParameter)

	_, err = parse(t, "--frequency", "30")
	assert.ErrorIs(t, err, epsp.ErrInvalidParameter)

	_, err = parse(t, "--format", "png")
	assert.ErrorContains(t, err, "invalid format")
}

func TestRun_Stdout(t *testing.T) {
	var out bytes.Buffer
	app := New(Options{Params: epsp.Parameters{Amplitude: 1, Frequency: 1}, Format: render.CSV, Output: "-"}, nil, &out)

	require.NoError(t, app.Run(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "time_ms,potential_mv", lines[0])
	assert.Len(t, lines, epsp.SampleCount+1)
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epsp.html")
	app := New(Options{Params: epsp.DefaultParameters(), Format: render.HTML, Output: path}, nil, &bytes.Buffer{})

	require.NoError(t, app.Run(context.Background()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Membrane Potential (mV)")
}

func TestRun_Interactive(t *testing.T) {
	input := strings.Join([]string{
		"amp 1.5",
		"freq 25",
		"slider 25",
		"bogus",
		"",
		"show",
		"quit",
		"freq 3",
	}, "\n")
	var out bytes.Buffer
	app := New(Options{Params: epsp.DefaultParameters(), Interactive: true}, strings.NewReader(input), &out)

	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "EPSP  1.00 mV @ 7.00 Hz")
	assert.Contains(t, text, "EPSP  1.50 mV @ 7.00 Hz")
	assert.Contains(t, text, "error: epsp: invalid frequency 25")
	assert.Contains(t, text, "EPSP  0.50 mV @ 7.00 Hz")
	assert.Contains(t, text, `unknown command "bogus"`)
	// quit stops before the last line is read
	assert.NotContains(t, text, "@ 3.00 Hz")
}

func TestRun_InteractiveEndsAtEOF(t *testing.T) {
	var out bytes.Buffer
	app := New(Options{Params: epsp.DefaultParameters(), Interactive: true}, strings.NewReader("freq 2\n"), &out)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "@ 2.00 Hz")
}

func TestRun_InteractiveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := New(Options{Params: epsp.DefaultParameters(), Interactive: true}, strings.NewReader("show\n"), &bytes.Buffer{})
	assert.ErrorIs(t, app.Run(ctx), context.Canceled)
}
