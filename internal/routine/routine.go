// Package routine implements the daily-routine checklist.
package routine

import (
	"encoding/json"
	"fmt"
)

// StorageKey is where the task list is persisted.
const StorageKey = "autiplay-routine-tasks"

// Storage is the key-value space the checklist persists into.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Task is one checklist entry.
type Task struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// DefaultTasks returns the seed list used when nothing is stored.
func DefaultTasks() []Task {
	return []Task{
		{ID: "1", Emoji: "🪥", Title: "Brush Teeth", Description: "Clean your teeth for 2 minutes"},
		{ID: "2", Emoji: "🍳", Title: "Eat Breakfast", Description: "Start your day with a healthy meal"},
		{ID: "3", Emoji: "👕", Title: "Get Dressed", Description: "Put on your clothes for the day"},
		{ID: "4", Emoji: "🎒", Title: "Pack Bag", Description: "Get ready for school or activities"},
		{ID: "5", Emoji: "🧼", Title: "Wash Hands", Description: "Keep your hands clean and healthy"},
		{ID: "6", Emoji: "📚", Title: "Read a Book", Description: "Spend time reading something fun"},
		{ID: "7", Emoji: "🥛", Title: "Drink Water", Description: "Stay hydrated throughout the day"},
		{ID: "8", Emoji: "🛏️", Title: "Make Bed", Description: "Tidy up your sleeping space"},
	}
}

// Checklist is the routine view's state. Completion is monotonic per task;
// only ResetAll clears it.
type Checklist struct {
	tasks []Task
	store Storage
}

// Load restores the checklist from store, seeding defaults when the stored
// list is absent or unreadable. A nil store keeps everything in memory.
func Load(store Storage) *Checklist {
	return &Checklist{tasks: restore(store), store: store}
}

func restore(store Storage) []Task {
	if store == nil {
		return DefaultTasks()
	}
	raw, ok, err := store.Get(StorageKey)
	if err != nil || !ok {
		return DefaultTasks()
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil || len(tasks) == 0 {
		return DefaultTasks()
	}
	return tasks
}

// Tasks returns a copy of the task list in display order.
func (c *Checklist) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Toggle completes the task with the given id. It reports true when the task
// moved to completed, which is the caller's cue to celebrate. Completed or
// unknown tasks are left alone and nothing is written.
func (c *Checklist) Toggle(id string) (bool, error) {
	for i := range c.tasks {
		if c.tasks[i].ID != id {
			continue
		}
		if c.tasks[i].Completed {
			return false, nil
		}
		c.tasks[i].Completed = true
		return true, c.save()
	}
	return false, nil
}

// ResetAll marks every task incomplete.
func (c *Checklist) ResetAll() error {
	for i := range c.tasks {
		c.tasks[i].Completed = false
	}
	return c.save()
}

// Progress returns the completed and total task counts.
func (c *Checklist) Progress() (done, total int) {
	for _, t := range c.tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(c.tasks)
}

// Fraction returns progress in [0, 1].
func (c *Checklist) Fraction() float64 {
	done, total := c.Progress()
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// AllDone reports whether every task is completed.
func (c *Checklist) AllDone() bool {
	done, total := c.Progress()
	return total > 0 && done == total
}

// Remaining returns how many tasks are still open.
func (c *Checklist) Remaining() int {
	done, total := c.Progress()
	return total - done
}

func (c *Checklist) save() error {
	if c.store == nil {
		return nil
	}
	bytes, err := json.Marshal(c.tasks)
	if err != nil {
		return fmt.Errorf("marshal routine: %w", err)
	}
	if err := c.store.Set(StorageKey, string(bytes)); err != nil {
		return fmt.Errorf("save routine: %w", err)
	}
	return nil
}
