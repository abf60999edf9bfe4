package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"gopkg.in/yaml.v3"
)

const cliReplayScript = `
seed:
  available: [A, B, C]
events:
  - {type: drag_start, task: A}
  - {type: drag_enter, zone: completed-zone}
  - {type: drop, zone: completed-zone}
  - {type: drag_end}
  - {type: delete, task: Missing}
`

func runReplayCmd(t *testing.T, script, output string, verbose bool) (string, error) {
	t.Helper()
	origOutput, origVerbose := replayOutput, replayVerbose
	t.Cleanup(func() {
		replayOutput, replayVerbose = origOutput, origVerbose
		replayCmd.SetOut(nil)
	})
	replayOutput = output
	replayVerbose = verbose

	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	replayCmd.SetOut(&out)
	err := replayCmd.RunE(replayCmd, []string{path})
	return out.String(), err
}

func TestReplayCmd_YAMLOutput(t *testing.T) {
	out, err := runReplayCmd(t, cliReplayScript, "yaml", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result struct {
		Board models.BoardSnapshot `yaml:"board"`
		Steps []struct {
			Type    string `yaml:"type"`
			Applied bool   `yaml:"applied"`
		} `yaml:"steps"`
	}
	if err := yaml.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(result.Board.Completed) != 1 || result.Board.Completed[0].Text != "A" {
		t.Errorf("completed = %+v", result.Board.Completed)
	}
	if result.Board.Completed[0].ID != "T-1" {
		t.Errorf("ids should be sequential, got %q", result.Board.Completed[0].ID)
	}
	if len(result.Steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(result.Steps))
	}
	if result.Steps[4].Applied {
		t.Error("delete of an unknown task should not apply")
	}
}

func TestReplayCmd_TextOutput(t *testing.T) {
	out, err := runReplayCmd(t, cliReplayScript, "text", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Available (2)", "Completed (1)", "T-1", "B", "C"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplayCmd_UnknownFormat(t *testing.T) {
	_, err := runReplayCmd(t, cliReplayScript, "xml", false)
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReplayCmd_InvalidScript(t *testing.T) {
	_, err := runReplayCmd(t, "events:\n  - {type: teleport}\n", "yaml", false)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReplayCmd_MissingFile(t *testing.T) {
	err := replayCmd.RunE(replayCmd, []string{filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil || !strings.Contains(err.Error(), "reading script") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReplayCmd_Stdin(t *testing.T) {
	origOutput := replayOutput
	defer func() {
		replayOutput = origOutput
		replayCmd.SetIn(nil)
		replayCmd.SetOut(nil)
	}()
	replayOutput = "text"

	var out bytes.Buffer
	replayCmd.SetIn(strings.NewReader("variant: single\nseed: {available: [Solo]}\nevents: []\n"))
	replayCmd.SetOut(&out)

	if err := replayCmd.RunE(replayCmd, []string{"-"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Solo") || strings.Contains(out.String(), "Completed") {
		t.Errorf("output = %q", out.String())
	}
}
