package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// rootCmd represents the base command
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simreport",
		Short: "Tabulate page replacement simulator benchmark logs",
		Long: `simreport reads the log of a page replacement simulator benchmark run
and prints it as aligned tables: the hit rate of every algorithm per trace
and memory size, or the full eviction statistics of every run.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.StringP("config", "c", "", "Config file (default: ~/.config/simreport/config.toml)")
	flags.StringP("format", "f", "", "Output format: text, markdown, html, json or yaml (overrides config)")
	flags.Bool("strict", false, "Reject logs that do not match the benchmark layout (overrides config)")
	flags.StringP("output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func main() {
	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Execute root command with context
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(reportFailure(os.Stdout, os.Stderr, err))
	}
}

// reportFailure prints a command error and returns the process exit code.
// A missing log argument prints the bare usage message.
func reportFailure(stdout, stderr io.Writer, err error) int {
	if errors.Is(err, entities.ErrMissingArgument) {
		fmt.Fprintln(stdout, err)
		return 1
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
