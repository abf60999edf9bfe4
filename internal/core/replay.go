package core

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/valter-silva-au/taskboard/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed schema/replay.schema.json
var replaySchemaJSON []byte

const replaySchemaURL = "https://taskboard.local/schema/replay.schema.json"

// missingTaskPrefix marks ids resolved from texts that match no task. No
// generator issues ids with this prefix, so events carrying one are no-ops.
const missingTaskPrefix = "missing:"

// ReplayScript is a recorded sequence of raw UI events.
type ReplayScript struct {
	Variant models.Variant `yaml:"variant,omitempty"`
	Seed    ReplaySeed     `yaml:"seed,omitempty"`
	Events  []ReplayEvent  `yaml:"events"`
}

// ReplaySeed lists the tasks a replay starts with, front first.
type ReplaySeed struct {
	Available []string `yaml:"available,omitempty"`
	Completed []string `yaml:"completed,omitempty"`
}

// ReplayEvent is one UI event. Which fields apply depends on Type.
type ReplayEvent struct {
	Type    string         `yaml:"type"`
	Value   string         `yaml:"value,omitempty"`
	Key     string         `yaml:"key,omitempty"`
	Task    string         `yaml:"task,omitempty"`
	TaskID  string         `yaml:"task_id,omitempty"`
	List    models.ListID  `yaml:"list,omitempty"`
	Zone    models.ZoneID  `yaml:"zone,omitempty"`
	Row     string         `yaml:"row,omitempty"`
	RowID   string         `yaml:"row_id,omitempty"`
	Payload *ReplayPayload `yaml:"payload,omitempty"`
}

// ReplayPayload is an explicit drag payload. Task is resolved by text,
// TaskID is used as is.
type ReplayPayload struct {
	Task   string        `yaml:"task,omitempty"`
	TaskID string        `yaml:"task_id,omitempty"`
	Source models.ListID `yaml:"source,omitempty"`
}

// ReplayStep reports the outcome of one applied event.
type ReplayStep struct {
	Index   int    `yaml:"index"`
	Type    string `yaml:"type"`
	Applied bool   `yaml:"applied"`
}

// ParseReplayScript decodes a YAML replay script and validates it against
// the embedded JSON Schema.
func ParseReplayScript(data []byte) (*ReplayScript, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing replay script: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parsing replay script: empty document")
	}
	if err := validateReplayDocument(raw); err != nil {
		return nil, err
	}

	var script ReplayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("decoding replay script: %w", err)
	}
	return &script, nil
}

func validateReplayDocument(raw any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(replaySchemaURL, bytes.NewReader(replaySchemaJSON)); err != nil {
		return fmt.Errorf("loading replay schema: %w", err)
	}
	schema, err := compiler.Compile(replaySchemaURL)
	if err != nil {
		return fmt.Errorf("compiling replay schema: %w", err)
	}

	// The validator expects JSON-decoded values.
	doc, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting replay script: %w", err)
	}
	var instance any
	if err := json.Unmarshal(doc, &instance); err != nil {
		return fmt.Errorf("converting replay script: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validating replay script: %w", err)
		}
		var msgs []string
		collectSchemaErrors(ve, &msgs)
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
	}
	return nil
}

// collectSchemaErrors gathers the leaf causes of a validation error.
func collectSchemaErrors(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, msgs)
	}
}

// Replayer feeds a script's events into a TaskBoard the way a front-end
// would, including a platform payload that survives Reload.
type Replayer struct {
	board   *TaskBoard
	payload models.TransferToken
}

// NewReplayer creates a Replayer driving board.
func NewReplayer(board *TaskBoard) *Replayer {
	return &Replayer{board: board}
}

// Seed loads the script's initial lists onto the board.
func (r *Replayer) Seed(seed ReplaySeed) {
	r.board.Store().Seed(models.ListAvailable, seed.Available...)
	r.board.Store().Seed(models.ListCompleted, seed.Completed...)
}

// Run applies every event in order and reports what each one did.
func (r *Replayer) Run(events []ReplayEvent) []ReplayStep {
	steps := make([]ReplayStep, 0, len(events))
	for i, ev := range events {
		steps = append(steps, ReplayStep{Index: i, Type: ev.Type, Applied: r.Apply(ev)})
	}
	return steps
}

// Apply applies a single event and reports whether it changed anything.
// Hover and input events always count as applied.
func (r *Replayer) Apply(ev ReplayEvent) bool {
	b := r.board
	switch ev.Type {
	case "input":
		b.SetInput(ev.Value)
		return true
	case "key":
		if ev.Key != "enter" {
			return false
		}
		_, ok := b.SubmitInput()
		return ok
	case "click_add":
		if !b.CanAdd() {
			return false
		}
		_, ok := b.SubmitInput()
		return ok
	case "delete":
		return b.DeleteTask(r.resolve(ev.Task, ev.TaskID), listOrAvailable(ev.List))
	case "drag_start":
		payload, ok := b.DragStart(r.resolve(ev.Task, ev.TaskID))
		if ok {
			r.payload = payload
		}
		return ok
	case "drag_enter":
		b.DragEnter(ev.Zone)
		return true
	case "drag_leave":
		b.DragLeave(ev.Zone)
		return true
	case "reload":
		b.Reload()
		return true
	case "drop":
		return b.Drop(r.target(ev), r.dropPayload(ev))
	case "drag_end":
		b.DragEnd()
		r.payload = models.TransferToken{}
		return true
	default:
		return false
	}
}

// resolve maps a task text to the id of the first task with that text, or
// returns id when given.
func (r *Replayer) resolve(text, id string) string {
	if id != "" {
		return id
	}
	if task, _, ok := r.board.Store().FindByText(text); ok {
		return task.ID
	}
	return missingTaskPrefix + text
}

func (r *Replayer) target(ev ReplayEvent) DropTarget {
	if ev.Zone != "" {
		return ZoneTarget(ev.Zone)
	}
	return RowTarget(r.resolve(ev.Row, ev.RowID), listOrAvailable(ev.List))
}

func (r *Replayer) dropPayload(ev ReplayEvent) models.TransferToken {
	if ev.Payload == nil {
		return r.payload
	}
	token := models.TransferToken{Source: ev.Payload.Source}
	if ev.Payload.Task != "" || ev.Payload.TaskID != "" {
		token.TaskID = r.resolve(ev.Payload.Task, ev.Payload.TaskID)
	}
	return token
}

func listOrAvailable(list models.ListID) models.ListID {
	if list == "" {
		return models.ListAvailable
	}
	return list
}
