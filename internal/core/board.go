package core

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// DropTarget is where a dragged task is released: either a zone or another
// task row.
type DropTarget struct {
	Zone models.ZoneID
	Row  string
	List models.ListID
}

// ZoneTarget returns a target for a drop zone.
func ZoneTarget(zone models.ZoneID) DropTarget {
	return DropTarget{Zone: zone}
}

// RowTarget returns a target for the row showing taskID in list.
func RowTarget(taskID string, list models.ListID) DropTarget {
	return DropTarget{Row: taskID, List: list}
}

// BoardOptions configures a TaskBoard.
type BoardOptions struct {
	Variant models.Variant
	IDGen   TaskIDGenerator
	Events  EventLogger
	Logger  *log.Logger
}

// TaskBoard is the single controller that owns the task store and the drag
// tracker. Its methods are the only write path to board state and map one
// to one onto events forwarded by a front-end.
//
// TaskBoard is not safe for concurrent use; all calls are expected to come
// from one event loop.
type TaskBoard struct {
	store  *TaskStore
	drag   DragTracker
	events EventLogger
	logger *log.Logger
}

// NewTaskBoard creates an empty board.
func NewTaskBoard(opts BoardOptions) *TaskBoard {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskBoard{
		store:  NewTaskStore(opts.Variant, opts.IDGen),
		events: opts.Events,
		logger: logger,
	}
}

// Store exposes the store for read access.
func (b *TaskBoard) Store() *TaskStore {
	return b.store
}

// SeedDemo fills the board with the demo tasks.
func (b *TaskBoard) SeedDemo() {
	b.store.Seed(models.ListAvailable, DemoAvailable...)
	b.store.Seed(models.ListCompleted, DemoCompleted...)
}

// Snapshot returns a copy of the board.
func (b *TaskBoard) Snapshot() models.BoardSnapshot {
	return b.store.Snapshot()
}

// SetInput forwards an input-change event.
func (b *TaskBoard) SetInput(value string) {
	b.store.SetInput(value)
}

// CanAdd reports whether submitting the input would add a task.
func (b *TaskBoard) CanAdd() bool {
	return b.store.CanAdd()
}

// AddTask adds a task from text.
func (b *TaskBoard) AddTask(text string) (models.Task, bool) {
	t, ok := b.store.AddTask(text)
	if ok {
		b.emit("task.added", map[string]any{"task_id": t.ID, "text": t.Text, "list": string(models.ListAvailable)})
	}
	return t, ok
}

// SubmitInput adds a task from the current input. On success the input is
// cleared and refocus is true: the caller must return focus to the text
// field once the updated lists are on screen.
func (b *TaskBoard) SubmitInput() (task models.Task, refocus bool) {
	t, ok := b.AddTask(b.store.Input())
	if !ok {
		return models.Task{}, false
	}
	b.store.SetInput("")
	return t, true
}

// DeleteTask removes the task with id from list.
func (b *TaskBoard) DeleteTask(id string, list models.ListID) bool {
	t, ok := b.store.DeleteTask(id, list)
	if ok {
		b.emit("task.deleted", map[string]any{"task_id": t.ID, "list": string(list)})
	}
	return ok
}

// MoveTask relocates the task with id from one list to the front of another.
func (b *TaskBoard) MoveTask(id string, from, to models.ListID) bool {
	t, ok := b.store.MoveTask(id, from, to)
	if ok {
		b.emit("task.moved", map[string]any{"task_id": t.ID, "from": string(from), "to": string(to)})
	}
	return ok
}

// SwapTasks exchanges two tasks within list.
func (b *TaskBoard) SwapTasks(idA, idB string, list models.ListID) bool {
	ok := b.store.SwapTasks(idA, idB, list)
	if ok {
		b.emit("task.swapped", map[string]any{"source": idA, "target": idB, "list": string(list)})
	}
	return ok
}

// DragStart begins dragging the task with id and returns the payload to
// attach to the drag. Ids not on the board start nothing.
func (b *TaskBoard) DragStart(id string) (models.TransferToken, bool) {
	_, list, ok := b.store.Find(id)
	if !ok {
		b.logger.Debug("drag start ignored", "task_id", id)
		return models.TransferToken{}, false
	}
	token := b.drag.Start(models.TransferToken{TaskID: id, Source: list})
	b.emit("drag.started", map[string]any{"task_id": id, "source": string(list)})
	return token, true
}

// Dragging returns the in-memory drag reference.
func (b *TaskBoard) Dragging() (models.TransferToken, bool) {
	return b.drag.Dragging()
}

// DragEnter highlights zone.
func (b *TaskBoard) DragEnter(zone models.ZoneID) {
	b.drag.Enter(zone)
}

// DragLeave clears the highlight of zone.
func (b *TaskBoard) DragLeave(zone models.ZoneID) {
	b.drag.Leave(zone)
}

// HoveredZone returns the highlighted zone.
func (b *TaskBoard) HoveredZone() models.ZoneID {
	return b.drag.Hovered()
}

// Reload discards the in-memory drag reference while the platform payload
// survives.
func (b *TaskBoard) Reload() {
	b.drag.Forget()
}

// Drop releases the dragged task on target. The source is the in-memory
// reference, else payload. The drag reference and highlight are reset
// whether or not anything changed.
func (b *TaskBoard) Drop(target DropTarget, payload models.TransferToken) bool {
	defer b.drag.End()

	source, ok := b.drag.ResolveSource(payload)
	if !ok {
		b.ignored(target, "", "no drag source")
		return false
	}

	var applied bool
	switch {
	case target.Zone == models.ZoneCompleted:
		applied = b.MoveTask(source.TaskID, models.ListAvailable, models.ListCompleted)
	case target.Zone == models.ZoneAvailable:
		applied = b.MoveTask(source.TaskID, models.ListCompleted, models.ListAvailable)
	case target.Row != "":
		applied = b.SwapTasks(source.TaskID, target.Row, target.List)
	default:
		b.ignored(target, source.TaskID, "unknown target")
		return false
	}
	if !applied {
		b.ignored(target, source.TaskID, "stale or foreign task")
	}
	return applied
}

// DragEnd finishes a drag, successful or not. A drag still active at this
// point was never dropped and is recorded as cancelled.
func (b *TaskBoard) DragEnd() {
	token, wasDragging := b.drag.Dragging()
	b.drag.End()
	if wasDragging {
		b.emit("drag.cancelled", map[string]any{"task_id": token.TaskID})
	}
}

func (b *TaskBoard) ignored(target DropTarget, source, reason string) {
	data := map[string]any{"source": source, "reason": reason}
	if target.Zone != "" {
		data["zone"] = string(target.Zone)
	} else {
		data["row"] = target.Row
		data["list"] = string(target.List)
	}
	b.emit("drop.ignored", data)
}

func (b *TaskBoard) emit(eventType string, data map[string]any) {
	b.logger.Debug(eventType, "data", data)
	if b.events == nil {
		return
	}
	if err := b.events.LogEvent(eventType, data); err != nil {
		b.logger.Warn("event log write failed", "type", eventType, "err", err)
	}
}
