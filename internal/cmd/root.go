package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atikulmunna/matchlog/internal/extract"
	"github.com/atikulmunna/matchlog/internal/finder"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultReportName is the report file created next to the binary when no output path is given.
const DefaultReportName = "matched_urls.txt"

var cfgFile string

// rootCmd scans log files when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "matchlog [log-dir] [output-file]",
	Short: "matchlog — Clash Match-rule log scanner",
	Long: `matchlog scans a directory tree of log files for lines containing the
"match Match" marker, extracts the URLs those lines mention and writes a
sorted, deduplicated list to a report file.

Examples:
  matchlog
  matchlog /var/log/clash
  matchlog /var/log/clash ./reports/matched_urls.txt --output json`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.matchlog.yaml)")
	flags.StringP("output", "o", "text", "progress format: text, json")
	flags.StringP("marker", "m", extract.DefaultMarker, "phrase that qualifies a line for URL extraction")
	flags.StringSlice("ext", finder.DefaultExtensions, "log file extensions to scan")
	flags.BoolP("verbose", "v", false, "log per-line decisions")
	flags.BoolP("quiet", "q", false, "only log errors")

	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("marker", flags.Lookup("marker"))
	_ = viper.BindPFlag("extensions", flags.Lookup("ext"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".matchlog")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("matchlog")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newLogger builds the diagnostics logger. Every line carries the run id.
func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case viper.GetBool("quiet"):
		level = zerolog.ErrorLevel
	case viper.GetBool("verbose"):
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: !isTerminal(w)}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// installDir returns the directory holding the running binary, or "." when it cannot be resolved.
func installDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
