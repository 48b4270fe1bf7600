// Package tasks owns one user's task/subtask tree and its derived progress.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/audit"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
)

// Store reads and rewrites the whole task list of one user on every call.
// There is no locking: concurrent writers for the same user race and the last
// write wins.
type Store struct {
	store    db.Store
	audit    *audit.Recorder
	ids      *ids.Generator
	log      *zap.Logger
	username string
}

// New creates a Store scoped to username
func New(store db.Store, recorder *audit.Recorder, gen *ids.Generator, log *zap.Logger, username string) *Store {
	return &Store{
		store:    store,
		audit:    recorder,
		ids:      gen,
		log:      log.With(zap.String("username", username)),
		username: username,
	}
}

// Username returns the owner of the list
func (s *Store) Username() string {
	return s.username
}

// Load returns the persisted list, empty when nothing is stored yet
func (s *Store) Load(ctx context.Context) ([]models.Task, error) {
	list := []models.Task{}
	if err := db.GetJSON(ctx, s.store, db.TasksKey(s.username), &list); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	for i := range list {
		if list[i].SubTasks == nil {
			list[i].SubTasks = []models.SubTask{}
		}
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []models.Task) error {
	if err := db.SetJSON(ctx, s.store, db.TasksKey(s.username), list, 0); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

func findTask(list []models.Task, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// AddPrimaryTask appends a new task with no subtasks
func (s *Store) AddPrimaryTask(ctx context.Context, title string) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, models.Validation("Primary task cannot be empty")
	}

	list, err := s.Load(ctx)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:       s.ids.Next(models.MaxID(list)),
		Title:    title,
		SubTasks: []models.SubTask{},
	}
	list = append(list, task)
	if err := s.save(ctx, list); err != nil {
		return models.Task{}, err
	}

	if _, err := s.audit.Record(ctx, s.username, models.ActionAddTask, audit.AddTaskDetails(title)); err != nil {
		return models.Task{}, err
	}
	s.log.Debug("task added", zap.Int64("task_id", task.ID))
	return task, nil
}

// AddSubTask appends an open subtask to the task with taskID
func (s *Store) AddSubTask(ctx context.Context, taskID int64, title string) (models.SubTask, error) {
	if strings.TrimSpace(title) == "" {
		return models.SubTask{}, models.Validation("Subtask cannot be empty")
	}

	list, err := s.Load(ctx)
	if err != nil {
		return models.SubTask{}, err
	}
	i := findTask(list, taskID)
	if i < 0 {
		return models.SubTask{}, models.NotFound(fmt.Sprintf("Task %d not found", taskID))
	}

	sub := models.SubTask{
		ID:    s.ids.Next(models.MaxID(list)),
		Title: title,
	}
	list[i].SubTasks = append(list[i].SubTasks, sub)
	if err := s.save(ctx, list); err != nil {
		return models.SubTask{}, err
	}

	if _, err := s.audit.Record(ctx, s.username, models.ActionAddSubTask, audit.AddSubTaskDetails(title, taskID)); err != nil {
		return models.SubTask{}, err
	}
	s.log.Debug("subtask added", zap.Int64("task_id", taskID), zap.Int64("subtask_id", sub.ID))
	return sub, nil
}

// ToggleSubTask flips the completed flag of one subtask and returns its new state
func (s *Store) ToggleSubTask(ctx context.Context, taskID, subTaskID int64) (models.SubTask, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return models.SubTask{}, err
	}
	i := findTask(list, taskID)
	if i < 0 {
		return models.SubTask{}, models.NotFound(fmt.Sprintf("Task %d not found", taskID))
	}
	j := list[i].FindSubTask(subTaskID)
	if j < 0 {
		return models.SubTask{}, models.NotFound(fmt.Sprintf("Subtask %d not found in task %d", subTaskID, taskID))
	}

	list[i].SubTasks[j].Completed = !list[i].SubTasks[j].Completed
	if err := s.save(ctx, list); err != nil {
		return models.SubTask{}, err
	}

	if _, err := s.audit.Record(ctx, s.username, models.ActionToggleSubTask, audit.ToggleSubTaskDetails(subTaskID, taskID)); err != nil {
		return models.SubTask{}, err
	}
	sub := list[i].SubTasks[j]
	s.log.Debug("subtask toggled",
		zap.Int64("task_id", taskID),
		zap.Int64("subtask_id", subTaskID),
		zap.Bool("completed", sub.Completed),
	)
	return sub, nil
}
