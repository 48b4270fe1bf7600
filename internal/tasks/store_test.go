package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/tally/internal/audit"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
)

func setupStore(t *testing.T, username string) (*Store, *audit.Recorder, *db.MemoryStore) {
	t.Helper()
	mem := db.NewMemoryStore()
	log := zaptest.NewLogger(t)
	gen := ids.New()
	recorder := audit.NewRecorder(mem, gen, log)
	return New(mem, recorder, gen, log, username), recorder, mem
}

func TestLoad_DefaultsEmpty(t *testing.T) {
	s, _, _ := setupStore(t, "bob")

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAddPrimaryTask(t *testing.T) {
	s, recorder, mem := setupStore(t, "bob")
	ctx := context.Background()

	task, err := s.AddPrimaryTask(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Empty(t, task.SubTasks)
	assert.NotNil(t, task.SubTasks)
	assert.Zero(t, Progress(task))

	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{task}, list)

	// Persisted per user with the browser-era field names
	raw, err := mem.Get(ctx, "tasks_bob")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subTasks":[]`)

	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionAddTask, entries[0].Action)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, "Added primary task: Buy milk", entries[0].Details)
}

func TestAddPrimaryTask_Blank(t *testing.T) {
	s, recorder, _ := setupStore(t, "bob")
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.AddPrimaryTask(ctx, title)
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.EqualError(t, err, "Primary task cannot be empty")
	}

	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddPrimaryTask_UniqueIDs(t *testing.T) {
	s, _, _ := setupStore(t, "bob")
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		task, err := s.AddPrimaryTask(ctx, "task")
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
}

func TestAddSubTask(t *testing.T) {
	s, recorder, _ := setupStore(t, "bob")
	ctx := context.Background()

	task, err := s.AddPrimaryTask(ctx, "Groceries")
	require.NoError(t, err)
	other, err := s.AddPrimaryTask(ctx, "Chores")
	require.NoError(t, err)

	eggs, err := s.AddSubTask(ctx, task.ID, "eggs")
	require.NoError(t, err)
	bread, err := s.AddSubTask(ctx, task.ID, "bread")
	require.NoError(t, err)
	assert.False(t, eggs.Completed)
	assert.NotEqual(t, eggs.ID, bread.ID)

	list, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []models.SubTask{eggs, bread}, list[0].SubTasks)
	assert.Empty(t, list[1].SubTasks, "other tasks untouched")
	assert.Equal(t, other.ID, list[1].ID)

	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, entries[0].Details, "Added subtask: bread to task ID")
}

func TestAddSubTask_Errors(t *testing.T) {
	s, _, _ := setupStore(t, "bob")
	ctx := context.Background()
	task, err := s.AddPrimaryTask(ctx, "Groceries")
	require.NoError(t, err)

	_, err = s.AddSubTask(ctx, task.ID, " ")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, "Subtask cannot be empty")

	_, err = s.AddSubTask(ctx, task.ID+1000, "eggs")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestToggleSubTask_TwiceRestores(t *testing.T) {
	s, recorder, _ := setupStore(t, "bob")
	ctx := context.Background()
	task, err := s.AddPrimaryTask(ctx, "Groceries")
	require.NoError(t, err)
	sub, err := s.AddSubTask(ctx, task.ID, "eggs")
	require.NoError(t, err)

	before, err := recorder.List(ctx)
	require.NoError(t, err)

	toggled, err := s.ToggleSubTask(ctx, task.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = s.ToggleSubTask(ctx, task.ID, sub.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sub, list[0].SubTasks[0])

	after, err := recorder.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+2)
	assert.Equal(t, models.ActionToggleSubTask, after[0].Action)
	assert.Equal(t, models.ActionToggleSubTask, after[1].Action)
}

func TestToggleSubTask_NotFound(t *testing.T) {
	s, recorder, _ := setupStore(t, "bob")
	ctx := context.Background()
	task, err := s.AddPrimaryTask(ctx, "Groceries")
	require.NoError(t, err)

	_, err = s.ToggleSubTask(ctx, task.ID, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.ToggleSubTask(ctx, 1, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the add_task entry")
}

func TestStore_ScopedPerUser(t *testing.T) {
	mem := db.NewMemoryStore()
	log := zaptest.NewLogger(t)
	gen := ids.New()
	recorder := audit.NewRecorder(mem, gen, log)
	ctx := context.Background()

	bob := New(mem, recorder, gen, log, "bob")
	amy := New(mem, recorder, gen, log, "amy")

	_, err := bob.AddPrimaryTask(ctx, "bob's task")
	require.NoError(t, err)

	list, err := amy.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// A fresh store for the same user sees the persisted list
	again := New(mem, recorder, gen, log, "bob")
	list, err = again.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob's task", list[0].Title)
}
