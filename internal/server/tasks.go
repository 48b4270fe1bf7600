package server

import (
	"net/http"

	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tasks"
)

// TaskView is a task as returned by the API, with its derived progress
type TaskView struct {
	models.Task
	Progress float64     `json:"progress"`
	Percent  int         `json:"percent"`
	Color    tasks.Color `json:"color"`
}

func newTaskView(t models.Task) TaskView {
	p := tasks.Progress(t)
	return TaskView{Task: t, Progress: p, Percent: tasks.Percent(p), Color: tasks.ProgressColor(p)}
}

// TitleRequest is the body of the add task and add subtask endpoints
type TitleRequest struct {
	Title string `json:"title"`
}

func (s *Server) taskStore(r *http.Request) *tasks.Store {
	return s.app.Tasks(SessionFromContext(r.Context()).Username)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := s.taskStore(r).Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list = tasks.Filter(list, r.URL.Query().Get("q"))

	views := make([]TaskView, 0, len(list))
	for _, t := range list {
		views = append(views, newTaskView(t))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := parseJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	task, err := s.taskStore(r).AddPrimaryTask(r.Context(), req.Title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskView(task))
}

func (s *Server) handleAddSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r, "taskID")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req TitleRequest
	if err := parseJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	sub, err := s.taskStore(r).AddSubTask(r.Context(), taskID, req.Title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleToggleSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r, "taskID")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	subTaskID, err := idParam(r, "subTaskID")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sub, err := s.taskStore(r).ToggleSubTask(r.Context(), taskID, subTaskID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
