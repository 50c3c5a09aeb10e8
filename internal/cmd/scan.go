package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/atikulmunna/matchlog/internal/output"
	"github.com/atikulmunna/matchlog/internal/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runScan(cmd *cobra.Command, args []string) error {
	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nmatchlog interrupted, stopping after the current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// --- Resolve paths ---
	base := installDir()
	defaultReport := filepath.Join(base, DefaultReportName)

	cfg := scan.Config{
		InputDir:   base,
		OutputFile: defaultReport,
		Marker:     viper.GetString("marker"),
		Extensions: splitList(viper.GetStringSlice("extensions")),
	}
	if len(args) > 0 {
		cfg.InputDir = args[0]
	}
	if len(args) > 1 {
		cfg.OutputFile = args[1]
	}

	format := strings.ToLower(viper.GetString("output"))
	out := cmd.OutOrStdout()
	if format != "json" {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [log-dir] [output-file]\n", cmd.Root().Name())
		fmt.Fprintf(out, "  default log dir:     %s\n", base)
		fmt.Fprintf(out, "  default output file: %s\n", defaultReport)
		fmt.Fprintln(out)
	}

	// --- Run ---
	log := newLogger(cmd.ErrOrStderr())
	runner := scan.New(cfg, output.New(format, out), log)
	_, err := runner.Run(ctx)
	return err
}

// splitList flattens comma-separated entries. Config files and MATCHLOG_*
// variables reach viper as one whitespace-split string, so ".log,.txt" arrives whole.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
