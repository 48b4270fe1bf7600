package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/app"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tasks"
)

// Focus represents what board element receives keys
type Focus int

const (
	FocusList Focus = iota
	FocusTaskInput
	FocusSubInput
	FocusSearch
)

// row is one selectable line: a task, or one of its subtasks when sub >= 0
type row struct {
	task int
	sub  int
}

type board struct {
	store *tasks.Store
	tasks []models.Task
	query string

	focus     Focus
	cursor    int
	subTarget int64 // task receiving the subtask being typed

	taskInput   textinput.Model
	subInput    textinput.Model
	searchInput textinput.Model
}

func newBoard() board {
	return board{
		taskInput:   newInput("New task title", 200),
		subInput:    newInput("New subtask title", 200),
		searchInput: newInput("Filter tasks", 100),
	}
}

// visible is the task list after the filter query
func (b board) visible() []models.Task {
	return tasks.Filter(b.tasks, b.query)
}

func (b board) rows() []row {
	var out []row
	for i, t := range b.visible() {
		out = append(out, row{task: i, sub: -1})
		for j := range t.SubTasks {
			out = append(out, row{task: i, sub: j})
		}
	}
	return out
}

// selected returns the row under the cursor
func (b board) selected() (row, bool) {
	rows := b.rows()
	if b.cursor < 0 || b.cursor >= len(rows) {
		return row{}, false
	}
	return rows[b.cursor], true
}

func (b board) clampCursor() board {
	n := len(b.rows())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	return b
}

// moveTo puts the cursor on the task with taskID, or its subtask subID when not zero
func (b board) moveTo(taskID, subID int64) board {
	list := b.visible()
	for i, r := range b.rows() {
		t := list[r.task]
		if t.ID != taskID {
			continue
		}
		if (subID == 0 && r.sub < 0) || (r.sub >= 0 && t.SubTasks[r.sub].ID == subID) {
			b.cursor = i
			return b
		}
	}
	return b
}

func (b board) setFocus(f Focus) (board, tea.Cmd) {
	b.focus = f
	b.taskInput.Blur()
	b.subInput.Blur()
	b.searchInput.Blur()

	switch f {
	case FocusTaskInput:
		return b, b.taskInput.Focus()
	case FocusSubInput:
		return b, b.subInput.Focus()
	case FocusSearch:
		return b, b.searchInput.Focus()
	}
	return b, nil
}

func (m Model) reloadTasks() Model {
	list, err := m.board.store.Load(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	m.board.tasks = list
	m.board = m.board.clampCursor()
	return m
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.board.focus != FocusList {
		return m.updateBoardInput(msg)
	}

	var cmd tea.Cmd
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.board.query != "" {
			m.board.query = ""
			m.board.searchInput.Reset()
			m.board = m.board.clampCursor()
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.board.cursor > 0 {
			m.board.cursor--
		}
		return m, nil

	case "down", "j":
		if m.board.cursor < len(m.board.rows())-1 {
			m.board.cursor++
		}
		return m, nil

	case "a":
		m.board, cmd = m.board.setFocus(FocusTaskInput)
		return m, cmd

	case "s":
		return m.startSubTask()

	case "/":
		m.board, cmd = m.board.setFocus(FocusSearch)
		return m, cmd

	case "enter", " ":
		r, ok := m.board.selected()
		if !ok {
			return m, nil
		}
		if r.sub < 0 {
			return m.startSubTask()
		}
		return m.toggleSelected()

	case "A":
		if err := app.RequireAdmin(m.session); err != nil {
			return m.fail(err), nil
		}
		return m.openAdmin()

	case "L":
		return m.logout()
	}

	return m, nil
}

func (m Model) updateBoardInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		if m.board.focus == FocusSearch {
			m.board.query = ""
			m.board.searchInput.Reset()
		}
		m.board, cmd = m.board.setFocus(FocusList)
		m.board = m.board.clampCursor()
		return m, cmd

	case "enter":
		switch m.board.focus {
		case FocusTaskInput:
			return m.submitTask()
		case FocusSubInput:
			return m.submitSubTask()
		case FocusSearch:
			m.board, cmd = m.board.setFocus(FocusList)
			m.board.cursor = 0
			return m, cmd
		}
	}

	switch m.board.focus {
	case FocusTaskInput:
		m.board.taskInput, cmd = m.board.taskInput.Update(msg)
	case FocusSubInput:
		m.board.subInput, cmd = m.board.subInput.Update(msg)
	case FocusSearch:
		m.board.searchInput, cmd = m.board.searchInput.Update(msg)
		m.board.query = m.board.searchInput.Value()
		m.board = m.board.clampCursor()
	}
	return m, cmd
}

func (m Model) startSubTask() (tea.Model, tea.Cmd) {
	r, ok := m.board.selected()
	if !ok {
		return m, nil
	}
	m.board.subTarget = m.board.visible()[r.task].ID

	var cmd tea.Cmd
	m.board, cmd = m.board.setFocus(FocusSubInput)
	return m, cmd
}

func (m Model) submitTask() (tea.Model, tea.Cmd) {
	task, err := m.board.store.AddPrimaryTask(m.ctx, m.board.taskInput.Value())
	if err != nil {
		return m.fail(err), nil
	}

	m.board.taskInput.Reset()
	m.board, _ = m.board.setFocus(FocusList)
	m = m.reloadTasks()
	m.board = m.board.moveTo(task.ID, 0)
	return m.ok(fmt.Sprintf("Added task %q", task.Title)), nil
}

func (m Model) submitSubTask() (tea.Model, tea.Cmd) {
	sub, err := m.board.store.AddSubTask(m.ctx, m.board.subTarget, m.board.subInput.Value())
	if err != nil {
		return m.fail(err), nil
	}

	m.board.subInput.Reset()
	m.board, _ = m.board.setFocus(FocusList)
	m = m.reloadTasks()
	m.board = m.board.moveTo(m.board.subTarget, sub.ID)
	return m.ok(fmt.Sprintf("Added subtask %q", sub.Title)), nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	r, _ := m.board.selected()
	task := m.board.visible()[r.task]
	sub := task.SubTasks[r.sub]

	toggled, err := m.board.store.ToggleSubTask(m.ctx, task.ID, sub.ID)
	if err != nil {
		return m.fail(err), nil
	}
	m = m.reloadTasks()
	m.board = m.board.moveTo(task.ID, sub.ID)

	state := "open"
	if toggled.Completed {
		state = "done"
	}
	return m.ok(fmt.Sprintf("%q marked %s", toggled.Title, state)), nil
}

func (b board) view(width int) string {
	var s strings.Builder

	switch b.focus {
	case FocusTaskInput:
		s.WriteString(fieldLabel("New task", true) + b.taskInput.View() + "\n\n")
	case FocusSubInput:
		s.WriteString(fieldLabel("Subtask", true) + b.subInput.View() + "\n\n")
	case FocusSearch:
		s.WriteString(fieldLabel("Filter", true) + b.searchInput.View() + "\n\n")
	default:
		if b.query != "" {
			s.WriteString(labelStyle.Render(fmt.Sprintf("Filter: %q", b.query)) + "\n\n")
		}
	}

	list := b.visible()
	if len(list) == 0 {
		empty := "No tasks yet. Press a to add one."
		if b.query != "" {
			empty = "No tasks match the filter."
		}
		s.WriteString(labelStyle.Italic(true).Render(empty))
		return s.String()
	}

	cardWidth := min(width-4, 80)
	cardWidth = max(cardWidth, 30)
	sel, hasSel := b.selected()
	cards := make([]string, 0, len(list))
	for i, t := range list {
		cursor := -2
		if hasSel && sel.task == i {
			cursor = sel.sub
		}
		cards = append(cards, renderCard(t, cursor, cardWidth))
	}
	s.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	return s.String()
}

// renderCard draws a task with its progress bar and subtasks. cursor is -1 when
// the task row is selected, a subtask index when one of its subtasks is, and
// anything lower otherwise.
func renderCard(t models.Task, cursor, width int) string {
	var b strings.Builder

	p := tasks.Progress(t)
	color := ProgressHex(p)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(t.Title)
	b.WriteString(pointer(cursor == -1) + title + "\n")

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(width-12),
		progress.WithColorProfile(lipgloss.ColorProfile()),
	)
	percent := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(fmt.Sprintf("%3d%%", tasks.Percent(p)))
	b.WriteString("  " + bar.ViewAs(p/100) + " " + percent)

	for i, sub := range t.SubTasks {
		box, text := "[ ]", sub.Title
		if sub.Completed {
			box, text = "[x]", doneStyle.Render(sub.Title)
		}
		b.WriteString("\n" + pointer(cursor == i) + "  " + box + " " + text)
	}

	return cardStyle(width, cursor >= -1).Render(b.String())
}

func pointer(active bool) string {
	if active {
		return activeLabelStyle.Render("▸ ")
	}
	return "  "
}

func (b board) help(session models.Session) string {
	if b.focus != FocusList {
		return "enter save · esc cancel"
	}
	help := "↑/↓ nav · a add task · s add subtask · space toggle · / filter · L logout · q quit"
	if session.IsAdmin() {
		help += " · A admin"
	}
	return help
}
