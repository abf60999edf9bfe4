package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

func resetBoardFlags(t *testing.T) {
	t.Helper()
	origVariant, origNoSeed, origConfig := boardVariant, boardNoSeed, Config
	t.Cleanup(func() {
		boardVariant, boardNoSeed, Config = origVariant, origNoSeed, origConfig
		_ = boardCmd.Flags().Set("variant", string(models.VariantTwoZone))
		boardCmd.Flags().Lookup("variant").Changed = false
	})
}

func TestResolveBoardOptions_Defaults(t *testing.T) {
	resetBoardFlags(t)
	Config = core.DefaultConfig()

	variant, seed, err := resolveBoardOptions(boardCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != models.VariantTwoZone {
		t.Errorf("variant = %q, want two-zone", variant)
	}
	if !seed {
		t.Error("seed = false, want true")
	}
}

func TestResolveBoardOptions_FlagsOverrideConfig(t *testing.T) {
	resetBoardFlags(t)
	Config = core.DefaultConfig()

	if err := boardCmd.Flags().Set("variant", "SINGLE"); err != nil {
		t.Fatal(err)
	}
	boardNoSeed = true

	variant, seed, err := resolveBoardOptions(boardCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != models.VariantSingle {
		t.Errorf("variant = %q, want single", variant)
	}
	if seed {
		t.Error("--no-seed must disable the demo tasks")
	}
}

func TestResolveBoardOptions_InvalidVariant(t *testing.T) {
	resetBoardFlags(t)
	Config = core.DefaultConfig()

	if err := boardCmd.Flags().Set("variant", "kanban"); err != nil {
		t.Fatal(err)
	}
	_, _, err := resolveBoardOptions(boardCmd)
	if err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if !strings.Contains(err.Error(), "invalid variant") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRedirectLogForTUI(t *testing.T) {
	origLogger, origBase, origConfig := Logger, BasePath, Config
	defer func() { Logger, BasePath, Config = origLogger, origBase, origConfig }()

	dir := t.TempDir()
	BasePath = dir
	Config = core.DefaultConfig()
	var stderr bytes.Buffer
	Logger = log.New(&stderr)

	restore, err := redirectLogForTUI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Logger.Warn("while the board is open")
	restore()

	if stderr.Len() != 0 {
		t.Errorf("log leaked to the terminal: %q", stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, tuiLogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "while the board is open") {
		t.Errorf("log file = %q", string(data))
	}
}

func TestRedirectLogForTUI_ConfiguredFileKeepsLogger(t *testing.T) {
	origLogger, origBase, origConfig := Logger, BasePath, Config
	defer func() { Logger, BasePath, Config = origLogger, origBase, origConfig }()

	dir := t.TempDir()
	BasePath = dir
	Config = core.DefaultConfig()
	Config.Log.File = filepath.Join(dir, "custom.log")
	Logger = log.New(&bytes.Buffer{})

	restore, err := redirectLogForTUI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restore()

	if _, err := os.Stat(filepath.Join(dir, tuiLogFileName)); !os.IsNotExist(err) {
		t.Error("no TUI log file should be created when log.file is set")
	}
}

func TestNewBoard_FallsBackWithoutFactory(t *testing.T) {
	orig := NewBoard
	defer func() { NewBoard = orig }()
	NewBoard = nil

	b := newBoard(models.VariantSingle, core.NewSequentialTaskIDGenerator("T"))
	if b.Store().Variant() != models.VariantSingle {
		t.Errorf("variant = %q, want single", b.Store().Variant())
	}
}
