package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
	"gopkg.in/yaml.v3"
)

var (
	replayOutput  string
	replayVerbose bool
)

// replayResult is the YAML document printed by replay.
type replayResult struct {
	Board models.BoardSnapshot `yaml:"board"`
	Steps []core.ReplayStep    `yaml:"steps,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Apply a recorded script of board events and print the result",
	Long: `Read a YAML script of raw board events (typing, Enter, the Add button,
delete, drag start/enter/leave/end, drop, reload), apply it to a fresh board
and print the board it leaves behind.

Use "-" to read the script from stdin. Task ids are assigned sequentially
(T-1, T-2, ...) so output is stable between runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readScript(cmd, args[0])
		if err != nil {
			return err
		}

		script, err := core.ParseReplayScript(data)
		if err != nil {
			return err
		}

		variant := script.Variant
		if variant == "" {
			variant = currentConfig().Board.Variant
		}
		board := newBoard(variant, core.NewSequentialTaskIDGenerator("T"))
		replayer := core.NewReplayer(board)
		replayer.Seed(script.Seed)
		steps := replayer.Run(script.Events)

		if Logger != nil {
			Logger.Info("replay finished", "events", len(steps), "tasks", board.Store().Total())
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(replayOutput) {
		case "yaml", "":
			result := replayResult{Board: board.Snapshot()}
			if replayVerbose {
				result.Steps = steps
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			return enc.Close()
		case "text":
			if replayVerbose {
				for _, s := range steps {
					mark := "-"
					if s.Applied {
						mark = "+"
					}
					fmt.Fprintf(out, "%s %3d %s\n", mark, s.Index, s.Type)
				}
				fmt.Fprintln(out)
			}
			printBoardText(out, board.Snapshot())
			return nil
		default:
			return fmt.Errorf("unsupported output format %q (use yaml or text)", replayOutput)
		}
	},
}

func readScript(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading script from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return data, nil
}

func printBoardText(w io.Writer, snap models.BoardSnapshot) {
	printList := func(title string, tasks []models.Task) {
		fmt.Fprintf(w, "%s (%d)\n", title, len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(w, "  (empty)")
		}
		for _, t := range tasks {
			fmt.Fprintf(w, "  %-8s %s\n", t.ID, t.Text)
		}
	}
	printList("Available", snap.Available)
	if snap.Variant == models.VariantTwoZone {
		printList("Completed", snap.Completed)
	}
	if snap.Input != "" {
		fmt.Fprintf(w, "Input: %q\n", snap.Input)
	}
}

func init() {
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "yaml", "Output format: yaml or text")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "Include the outcome of every event")
	rootCmd.AddCommand(replayCmd)
}
