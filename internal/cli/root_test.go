package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/uf46yr/htop/internal/errors"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  stderrors.New(`unknown command "foo" for "htop"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  stderrors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "unknown shorthand",
			err:  stderrors.New(`unknown shorthand flag: 'x' in -x`),
			want: true,
		},
		{
			name: "other error",
			err:  stderrors.New("cannot write to standard output"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  stderrors.New(`unknown command "foo" for "htop"`),
			want: "foo",
		},
		{
			name: "subcommand argument",
			err:  stderrors.New(`unknown command "extra" for "htop config"`),
			want: "extra",
		},
		{
			name: "no quotes returns empty",
			err:  stderrors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  stderrors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config error", errors.New(errors.ErrConfig, "interval too short", ""), ExitUsage},
		{"wrapped config error", fmt.Errorf("load: %w", errors.New(errors.ErrConfig, "bad sort", "")), ExitUsage},
		{"unknown command", stderrors.New(`unknown command "foo" for "htop"`), ExitUsage},
		{"fatal io", errors.New(errors.ErrIO, "Cannot write to standard output", ""), ExitError},
		{"plain error", stderrors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	t.Run("structured error", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, errors.New(errors.ErrConfig, "Interval too short", "Use at least 500ms"))

		assert.Equal(t, "✗ Interval too short\n\n  Use at least 500ms\n", buf.String())
	})

	t.Run("unknown command", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, stderrors.New(`unknown command "fo" for "htop"`))

		assert.Contains(t, buf.String(), `✗ Unknown command "fo"`)
		assert.Contains(t, buf.String(), "htop --help")
		assert.NotContains(t, buf.String(), "Did you mean")
	})

	t.Run("unknown command with a close match", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, stderrors.New(`unknown command "confg" for "htop"`))

		assert.Contains(t, buf.String(), "Did you mean config?")
	})
}

func TestRootCmd_Commands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"config", "version", "completion"} {
		assert.True(t, names[want], "missing %s command", want)
	}

	for _, name := range []string{"config", "interval", "sample-timeout", "detailed", "sort", "plain", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}
