package routine

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/five82/autiplay/internal/storage"
)

type failingStore struct{ *storage.Memory }

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestLoad_FreshStoreSeedsDefaults(t *testing.T) {
	c := Load(storage.NewMemory())
	done, total := c.Progress()
	if done != 0 || total != 8 {
		t.Fatalf("Progress() = %d/%d, want 0/8", done, total)
	}
	if c.AllDone() {
		t.Fatalf("AllDone() = true on fresh list")
	}
}

func TestToggle_CompletesAndPersists(t *testing.T) {
	mem := storage.NewMemory()
	c := Load(mem)

	changed, err := c.Toggle("1")
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !changed {
		t.Fatalf("Toggle(1) = false, want true")
	}
	if done, total := c.Progress(); done != 1 || total != 8 {
		t.Fatalf("Progress() = %d/%d, want 1/8", done, total)
	}
	for _, task := range c.Tasks() {
		if want := task.ID == "1"; task.Completed != want {
			t.Fatalf("task %s Completed = %v, want %v", task.ID, task.Completed, want)
		}
	}

	raw, ok, _ := mem.Get(StorageKey)
	if !ok {
		t.Fatalf("routine not persisted")
	}
	var stored []Task
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored routine is not JSON: %v", err)
	}
	if len(stored) != 8 || !stored[0].Completed || stored[1].Completed {
		t.Fatalf("stored routine = %#v, want only task 1 completed", stored)
	}

	restored := Load(mem)
	if done, _ := restored.Progress(); done != 1 {
		t.Fatalf("restored Progress() done = %d, want 1", done)
	}
}

func TestToggle_CompletedAndUnknownAreNoops(t *testing.T) {
	mem := storage.NewMemory()
	c := Load(mem)
	if _, err := c.Toggle("2"); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	_ = mem.Delete(StorageKey)

	if changed, _ := c.Toggle("2"); changed {
		t.Fatalf("Toggle on completed task reported a change")
	}
	if changed, _ := c.Toggle("99"); changed {
		t.Fatalf("Toggle on unknown task reported a change")
	}
	if _, ok, _ := mem.Get(StorageKey); ok {
		t.Fatalf("no-op toggles should not persist")
	}
	if done, _ := c.Progress(); done != 1 {
		t.Fatalf("Progress() done = %d, want 1", done)
	}
}

func TestToggle_CompletionIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	c := Load(storage.NewMemory())
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := strconv.Itoa(1 + rng.IntN(9)) // includes an unknown id
		_, _ = c.Toggle(id)
		for _, task := range c.Tasks() {
			if seen[task.ID] && !task.Completed {
				t.Fatalf("task %s went back to incomplete", task.ID)
			}
			if task.Completed {
				seen[task.ID] = true
			}
		}
	}
}

func TestResetAll(t *testing.T) {
	mem := storage.NewMemory()
	c := Load(mem)
	for _, task := range c.Tasks() {
		_, _ = c.Toggle(task.ID)
	}
	if !c.AllDone() {
		t.Fatalf("AllDone() = false after completing every task")
	}
	if err := c.ResetAll(); err != nil {
		t.Fatalf("ResetAll returned error: %v", err)
	}
	if done, total := c.Progress(); done != 0 || total != 8 {
		t.Fatalf("Progress() = %d/%d, want 0/8", done, total)
	}
	if c.Remaining() != 8 || c.Fraction() != 0 {
		t.Fatalf("Remaining() = %d Fraction() = %v, want 8 and 0", c.Remaining(), c.Fraction())
	}
	if done, _ := Load(mem).Progress(); done != 0 {
		t.Fatalf("persisted reset not restored, done = %d", done)
	}
}

func TestLoad_MalformedFallsBackToDefaults(t *testing.T) {
	for _, raw := range []string{"{not json", "[]", `"tasks"`} {
		mem := storage.NewMemory()
		_ = mem.Set(StorageKey, raw)
		c := Load(mem)
		if _, total := c.Progress(); total != 8 {
			t.Fatalf("Load(%q) total = %d, want 8", raw, total)
		}
	}
}

func TestLoad_NilStoreKeepsMemoryOnly(t *testing.T) {
	c := Load(nil)
	if _, err := c.Toggle("3"); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if done, _ := c.Progress(); done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}
}

func TestToggle_SaveFailureKeepsMemoryState(t *testing.T) {
	c := Load(failingStore{storage.NewMemory()})
	changed, err := c.Toggle("4")
	if err == nil {
		t.Fatalf("Toggle returned nil error, want save failure")
	}
	if !changed {
		t.Fatalf("Toggle should still report the completion")
	}
	if done, _ := c.Progress(); done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}
}

func TestTasks_ReturnsCopy(t *testing.T) {
	c := Load(nil)
	tasks := c.Tasks()
	tasks[0].Completed = true
	if done, _ := c.Progress(); done != 0 {
		t.Fatalf("mutating Tasks() result changed the checklist")
	}
}
