package core

import (
	"strings"
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"pgregory.net/rapid"
)

func genTaskText(t *rapid.T, label string) string {
	return rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,20}[A-Za-z0-9]`).Draw(t, label)
}

func genPadding(t *rapid.T, label string) string {
	return rapid.StringMatching(`[ \t]{0,4}`).Draw(t, label)
}

func genList(t *rapid.T) models.ListID {
	return rapid.SampledFrom([]models.ListID{models.ListAvailable, models.ListCompleted}).Draw(t, "list")
}

// newRapidStore builds a two-zone store with a random number of tasks on
// each list.
func newRapidStore(t *rapid.T) *TaskStore {
	s := NewTaskStore(models.VariantTwoZone, NewSequentialTaskIDGenerator("T"))
	nAvail := rapid.IntRange(0, 8).Draw(t, "nAvailable")
	nDone := rapid.IntRange(0, 8).Draw(t, "nCompleted")
	for i := 0; i < nAvail; i++ {
		s.Seed(models.ListAvailable, genTaskText(t, "availableText"))
	}
	for i := 0; i < nDone; i++ {
		s.Seed(models.ListCompleted, genTaskText(t, "completedText"))
	}
	return s
}

// pickID returns an id from list, or a fresh id not on the board when list
// is empty or the draw says so.
func pickID(t *rapid.T, s *TaskStore, list models.ListID, label string) string {
	tasks := s.List(list)
	if len(tasks) == 0 || rapid.IntRange(0, 9).Draw(t, label+"Stale") == 0 {
		return "stale-" + label
	}
	return tasks[rapid.IntRange(0, len(tasks)-1).Draw(t, label)].ID
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func assertPartition(t *rapid.T, s *TaskStore, want int) {
	seen := make(map[string]models.ListID)
	for _, l := range s.Variant().Lists() {
		for _, task := range s.List(l) {
			if prev, dup := seen[task.ID]; dup {
				t.Fatalf("task %s is in both %s and %s", task.ID, prev, l)
			}
			seen[task.ID] = l
		}
	}
	if len(seen) != want {
		t.Fatalf("board holds %d tasks, want %d", len(seen), want)
	}
}

// Property: adding any non-empty trimmed string grows the available list by
// exactly one and stores the trimmed text at the front.
func TestProperty_AddTaskTrimsAndPrepends(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		text := genTaskText(rt, "text")
		raw := genPadding(rt, "lead") + text + genPadding(rt, "trail")
		before := s.Len(models.ListAvailable)

		task, ok := s.AddTask(raw)
		if !ok {
			rt.Fatalf("AddTask(%q) was rejected", raw)
		}
		if s.Len(models.ListAvailable) != before+1 {
			rt.Fatalf("length %d, want %d", s.Len(models.ListAvailable), before+1)
		}
		if task.Text != strings.TrimSpace(raw) {
			rt.Fatalf("Text = %q, want %q", task.Text, strings.TrimSpace(raw))
		}
		if front := s.List(models.ListAvailable)[0]; front.ID != task.ID {
			rt.Fatalf("front task %s, want %s", front.ID, task.ID)
		}
	})
}

// Property: whitespace-only input never changes the board.
func TestProperty_BlankAddIsNoop(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		before := s.Snapshot()

		if _, ok := s.AddTask(genPadding(rt, "blank")); ok {
			rt.Fatal("blank input added a task")
		}

		after := s.Snapshot()
		if strings.Join(ids(before.Available), ",") != strings.Join(ids(after.Available), ",") ||
			strings.Join(ids(before.Completed), ",") != strings.Join(ids(after.Completed), ",") {
			rt.Fatal("board changed")
		}
	})
}

// Property: deleting a task shrinks its list by one and the id is gone from
// the whole board.
func TestProperty_DeleteRemovesExactlyOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		list := genList(rt)
		if s.Len(list) == 0 {
			s.Seed(list, "filler")
		}
		tasks := s.List(list)
		victim := tasks[rapid.IntRange(0, len(tasks)-1).Draw(rt, "victim")]
		before := s.Len(list)

		if _, ok := s.DeleteTask(victim.ID, list); !ok {
			rt.Fatal("delete failed")
		}
		if s.Len(list) != before-1 {
			rt.Fatalf("length %d, want %d", s.Len(list), before-1)
		}
		if _, _, found := s.Find(victim.ID); found {
			rt.Fatalf("task %s still on the board", victim.ID)
		}
	})
}

// Property: swapping an id with itself is a no-op.
func TestProperty_SwapSelfIsNoop(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		list := genList(rt)
		id := pickID(rt, s, list, "id")
		before := ids(s.List(list))

		if s.SwapTasks(id, id, list) {
			rt.Fatal("self swap reported a change")
		}
		if strings.Join(before, ",") != strings.Join(ids(s.List(list)), ",") {
			rt.Fatal("self swap changed the order")
		}
	})
}

// Property: swap is an involution.
func TestProperty_SwapInvolution(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		list := genList(rt)
		a := pickID(rt, s, list, "a")
		b := pickID(rt, s, list, "b")
		before := ids(s.List(list))

		s.SwapTasks(a, b, list)
		s.SwapTasks(a, b, list)

		if strings.Join(before, ",") != strings.Join(ids(s.List(list)), ",") {
			rt.Fatalf("order %v, want %v", ids(s.List(list)), before)
		}
	})
}

// Property: moving a task to completed and back returns it to available.
func TestProperty_MoveRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newRapidStore(rt)
		if s.Len(models.ListAvailable) == 0 {
			s.Seed(models.ListAvailable, "filler")
		}
		tasks := s.List(models.ListAvailable)
		task := tasks[rapid.IntRange(0, len(tasks)-1).Draw(rt, "task")]
		total := s.Total()

		if _, ok := s.MoveTask(task.ID, models.ListAvailable, models.ListCompleted); !ok {
			rt.Fatal("first move failed")
		}
		if _, ok := s.MoveTask(task.ID, models.ListCompleted, models.ListAvailable); !ok {
			rt.Fatal("return move failed")
		}

		_, list, found := s.Find(task.ID)
		if !found || list != models.ListAvailable {
			rt.Fatalf("task ended in %q (found=%v)", list, found)
		}
		if front := s.List(models.ListAvailable)[0]; front.ID != task.ID {
			rt.Fatal("returned task must be at the front")
		}
		assertPartition(rt, s, total)
	})
}

// Property: under any sequence of moves, swaps and drops, no task is
// duplicated or lost and every id stays unique.
func TestProperty_OperationsPreservePartition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := NewTaskBoard(BoardOptions{Variant: models.VariantTwoZone, IDGen: NewSequentialTaskIDGenerator("T")})
		s := b.Store()
		for i := rapid.IntRange(1, 6).Draw(rt, "seed"); i > 0; i-- {
			s.Seed(models.ListAvailable, genTaskText(rt, "seedText"))
		}
		total := s.Total()

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			from := genList(rt)
			id := pickID(rt, s, from, "src")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				b.MoveTask(id, from, models.ListCompleted)
			case 1:
				b.MoveTask(id, from, models.ListAvailable)
			case 2:
				b.SwapTasks(id, pickID(rt, s, from, "dst"), from)
			case 3:
				payload, _ := b.DragStart(id)
				zone := rapid.SampledFrom([]models.ZoneID{models.ZoneCompleted, models.ZoneAvailable}).Draw(rt, "zone")
				b.DragEnter(zone)
				b.Drop(ZoneTarget(zone), payload)
				b.DragEnd()
			case 4:
				payload, _ := b.DragStart(id)
				target := genList(rt)
				b.Drop(RowTarget(pickID(rt, s, target, "row"), target), payload)
				b.DragEnd()
			}
			assertPartition(rt, s, total)
			if _, dragging := b.Dragging(); dragging {
				rt.Fatal("drag state leaked past DragEnd")
			}
		}
	})
}
