package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/util"
)

// Exit codes returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// rootCmd runs the monitor when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "htop",
	Short: "Interactive process and resource monitor",
	Long: `Show live CPU, memory, disk, battery and temperature readings above a
process table that refreshes on a fixed interval.

When stdout is not an interactive terminal the same frames are printed as
plain text on every refresh.

Keyboard shortcuts:
  d / D        Toggle basic and detailed columns
  s            Cycle sort key (CPU, MEM, PID)
  q / Ctrl+C   Quit

Examples:
  htop
  htop --interval 5s --detailed
  htop --plain --interval 1s | tee htop.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig(cmd, &flags)
		if err != nil {
			return err
		}
		return monitorCommand(cmd.Context(), cfg, path)
	},
}

func init() {
	AddMonitorFlags(rootCmd, &flags)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.ErrConfig, "Invalid command line",
			"Run 'htop --help' to see the available flags")
	})
}

// Execute runs the root command and returns the process exit code.
// SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.CodeOf(err) == errors.ErrConfig || isUnknownCommandError(err) {
		return ExitUsage
	}
	return ExitError
}

// printError writes err to w in red. Cobra usage errors get a hint.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	if strings.Contains(err.Error(), "unknown command") {
		if name := extractUnknownCommand(err); name != "" {
			red.Fprintf(w, "✗ Unknown command %q\n", name)
			if similar := util.SuggestSimilar(name, commandNames(), 3); len(similar) > 0 {
				fmt.Fprintf(w, "  Did you mean %s?\n", strings.Join(similar, " or "))
			}
			fmt.Fprintln(w, "  Run 'htop --help' to see the available commands")
			return
		}
	}
	red.Fprint(w, strings.TrimRight(err.Error(), "\n")+"\n")
}

// commandNames lists the visible subcommands.
func commandNames() []string {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		if cmd.IsAvailableCommand() {
			names = append(names, cmd.Name())
		}
	}
	return names
}

// isUnknownCommandError reports whether err is cobra's complaint about an
// unknown subcommand, flag or stray argument.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted name out of cobra's
// `unknown command "foo" for "htop"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
