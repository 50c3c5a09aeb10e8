package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/atikulmunna/matchlog/internal/compdb"
	"github.com/atikulmunna/matchlog/internal/model"
	"github.com/atikulmunna/matchlog/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var compdbCmd = &cobra.Command{
	Use:   "compdb [workspace]",
	Short: "Merge compile_commands.json fragments from a build tree",
	Long: `Collect every compile_commands.json below <workspace>/build (except the
one at the build root), concatenate their entries and write the result to
<workspace>/build/compile_commands.json.

Without an argument the workspace is the current directory when it contains
a src directory, otherwise its parent.

Examples:
  matchlog compdb
  matchlog compdb ~/src/project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompdb,
}

func init() {
	rootCmd.AddCommand(compdbCmd)
}

func runCompdb(cmd *cobra.Command, args []string) error {
	var workspace string
	if len(args) > 0 {
		workspace = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		workspace = compdb.Workspace(cwd)
	}

	log := newLogger(cmd.ErrOrStderr())
	res, err := compdb.New(compdb.BuildDir(workspace), log).Merge()
	if err != nil {
		return fmt.Errorf("failed to merge compile commands: %w", err)
	}

	renderer := output.New(viper.GetString("output"), cmd.OutOrStdout())
	return renderer.Render(model.Event{
		Time:   time.Now(),
		Kind:   model.EventMerged,
		Output: res.Output,
		Count:  res.Entries,
		Files:  res.Fragments,
	})
}
