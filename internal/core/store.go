package core

import (
	"strings"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// DemoAvailable and DemoCompleted are the tasks a demo board starts with.
var (
	DemoAvailable = []string{
		"Prepare slides",
		"Write demo tasks",
		"Practice drag & drop",
		"Review code",
		"Update documentation",
	}
	DemoCompleted = []string{"Setup project"}
)

// TaskStore holds the board's ordered task lists and the current input value.
// Every mutation is total: unknown ids, unknown lists and empty input all
// degrade to a no-op, reported through the boolean result.
//
// TaskStore is not safe for concurrent use.
type TaskStore struct {
	variant models.Variant
	idGen   TaskIDGenerator
	lists   map[models.ListID][]models.Task
	input   string
}

// NewTaskStore creates an empty store for the given variant. A nil idGen
// falls back to random UUIDs.
func NewTaskStore(variant models.Variant, idGen TaskIDGenerator) *TaskStore {
	if variant != models.VariantSingle {
		variant = models.VariantTwoZone
	}
	if idGen == nil {
		idGen = NewTaskIDGenerator()
	}
	s := &TaskStore{
		variant: variant,
		idGen:   idGen,
		lists:   make(map[models.ListID][]models.Task, 2),
	}
	for _, l := range variant.Lists() {
		s.lists[l] = nil
	}
	return s
}

// Variant returns the board layout the store was created with.
func (s *TaskStore) Variant() models.Variant {
	return s.variant
}

// HasList reports whether list exists in this variant.
func (s *TaskStore) HasList(list models.ListID) bool {
	_, ok := s.lists[list]
	return ok
}

// Seed appends tasks to the back of list, in order. Blank texts are skipped.
func (s *TaskStore) Seed(list models.ListID, texts ...string) []models.Task {
	if !s.HasList(list) {
		return nil
	}
	var added []models.Task
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		t := models.Task{ID: s.idGen.GenerateTaskID(), Text: text}
		s.lists[list] = append(s.lists[list], t)
		added = append(added, t)
	}
	return added
}

// AddTask creates a task from the trimmed text and prepends it to the
// available list. Whitespace-only text adds nothing.
func (s *TaskStore) AddTask(text string) (models.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, false
	}
	t := models.Task{ID: s.idGen.GenerateTaskID(), Text: text}
	s.lists[models.ListAvailable] = prepend(s.lists[models.ListAvailable], t)
	return t, true
}

// DeleteTask removes the task with id from list.
func (s *TaskStore) DeleteTask(id string, list models.ListID) (models.Task, bool) {
	tasks, ok := s.lists[list]
	if !ok {
		return models.Task{}, false
	}
	idx := indexOf(tasks, id)
	if idx < 0 {
		return models.Task{}, false
	}
	t := tasks[idx]
	s.lists[list] = remove(tasks, idx)
	return t, true
}

// MoveTask removes the task with id from one list and prepends it to
// another. A task that is not in from (already moved, duplicate drop) is
// left where it is.
func (s *TaskStore) MoveTask(id string, from, to models.ListID) (models.Task, bool) {
	if from == to || !s.HasList(from) || !s.HasList(to) {
		return models.Task{}, false
	}
	src := s.lists[from]
	idx := indexOf(src, id)
	if idx < 0 {
		return models.Task{}, false
	}
	t := src[idx]
	s.lists[from] = remove(src, idx)
	s.lists[to] = prepend(s.lists[to], t)
	return t, true
}

// SwapTasks exchanges the positions of two tasks within list. Both ids must
// be present in list and must differ.
func (s *TaskStore) SwapTasks(idA, idB string, list models.ListID) bool {
	if idA == idB {
		return false
	}
	tasks, ok := s.lists[list]
	if !ok {
		return false
	}
	i, j := indexOf(tasks, idA), indexOf(tasks, idB)
	if i < 0 || j < 0 {
		return false
	}
	next := make([]models.Task, len(tasks))
	copy(next, tasks)
	next[i], next[j] = next[j], next[i]
	s.lists[list] = next
	return true
}

// List returns a copy of the tasks in list, front first.
func (s *TaskStore) List(list models.ListID) []models.Task {
	tasks := s.lists[list]
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

// Len returns the number of tasks in list.
func (s *TaskStore) Len(list models.ListID) int {
	return len(s.lists[list])
}

// Total returns the number of tasks on the board.
func (s *TaskStore) Total() int {
	n := 0
	for _, tasks := range s.lists {
		n += len(tasks)
	}
	return n
}

// Find returns the task with id and the list that holds it.
func (s *TaskStore) Find(id string) (models.Task, models.ListID, bool) {
	for _, l := range s.variant.Lists() {
		if idx := indexOf(s.lists[l], id); idx >= 0 {
			return s.lists[l][idx], l, true
		}
	}
	return models.Task{}, "", false
}

// FindByText returns the first task, in display order, whose text is text.
func (s *TaskStore) FindByText(text string) (models.Task, models.ListID, bool) {
	for _, l := range s.variant.Lists() {
		for _, t := range s.lists[l] {
			if t.Text == text {
				return t, l, true
			}
		}
	}
	return models.Task{}, "", false
}

// SetInput records the raw value of the text field.
func (s *TaskStore) SetInput(value string) {
	s.input = value
}

// Input returns the raw value of the text field.
func (s *TaskStore) Input() string {
	return s.input
}

// CanAdd reports whether the current input would produce a task.
func (s *TaskStore) CanAdd() bool {
	return strings.TrimSpace(s.input) != ""
}

// Snapshot returns a copy of the whole board.
func (s *TaskStore) Snapshot() models.BoardSnapshot {
	snap := models.BoardSnapshot{
		Variant:   s.variant,
		Available: s.List(models.ListAvailable),
		Input:     s.input,
	}
	if s.HasList(models.ListCompleted) {
		snap.Completed = s.List(models.ListCompleted)
	}
	return snap
}

func indexOf(tasks []models.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func prepend(tasks []models.Task, t models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

func remove(tasks []models.Task, idx int) []models.Task {
	out := make([]models.Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	return append(out, tasks[idx+1:]...)
}
