package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// tuiLogFileName receives log output while the terminal UI owns the screen
// and no log.file is configured.
const tuiLogFileName = "taskboard.log"

var (
	boardVariant string
	boardNoSeed  bool
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive to-do board",
	Long: `Open the to-do board in the terminal.

Type a task and press Enter to add it. Tab moves focus between the input,
the Add button and the task lists. In a list, space picks a task up; move
it onto another task to swap the two, or onto the drop zone at the top of
a list to move it there, and press space again to drop. Esc cancels a drag.

The board lives only as long as the program: nothing is saved on exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, seed, err := resolveBoardOptions(cmd)
		if err != nil {
			return err
		}

		restore, err := redirectLogForTUI()
		if err != nil {
			return err
		}
		defer restore()

		board := newBoard(variant, core.NewTaskIDGenerator())
		if seed {
			board.SeedDemo()
		}

		p := tea.NewProgram(newBoardModel(board), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// resolveBoardOptions merges the --variant and --no-seed flags over the
// loaded configuration.
func resolveBoardOptions(cmd *cobra.Command) (models.Variant, bool, error) {
	cfg := currentConfig()
	variant := cfg.Board.Variant
	if cmd.Flags().Changed("variant") {
		variant = models.Variant(strings.ToLower(strings.TrimSpace(boardVariant)))
	}
	if !variant.Valid() {
		return "", false, fmt.Errorf("invalid variant %q (must be one of: %s, %s)",
			variant, models.VariantSingle, models.VariantTwoZone)
	}
	return variant, cfg.Board.SeedDemo && !boardNoSeed, nil
}

// redirectLogForTUI points the logger at a file under the base path when it
// would otherwise write to stderr underneath the alternate screen. The
// returned func restores stderr and closes the file.
func redirectLogForTUI() (func(), error) {
	if Logger == nil || currentConfig().Log.File != "" {
		return func() {}, nil
	}
	path := filepath.Join(BasePath, tuiLogFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening TUI log file: %w", err)
	}
	Logger.SetOutput(f)
	Logger.SetReportTimestamp(true)
	return func() {
		Logger.SetOutput(os.Stderr)
		Logger.SetReportTimestamp(false)
		_ = f.Close()
	}, nil
}

func init() {
	boardCmd.Flags().StringVar(&boardVariant, "variant", string(models.VariantTwoZone), "Board layout: single or two-zone")
	boardCmd.Flags().BoolVar(&boardNoSeed, "no-seed", false, "Start with an empty board instead of the demo tasks")
	rootCmd.AddCommand(boardCmd)
}
