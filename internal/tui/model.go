package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/app"
	"github.com/balkashynov/tally/internal/auth"
	"github.com/balkashynov/tally/internal/models"
)

// Screen is the view currently shown
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenBoard
	ScreenAdmin
)

// Model is the root TUI model. It owns the session and routes keys to the active screen.
type Model struct {
	ctx     context.Context
	app     *app.App
	session models.Session
	screen  Screen

	login loginForm
	board board
	admin adminPanel

	// One status line: a new message replaces the previous one
	errLine string
	notice  string

	width  int
	height int
}

// NewModel creates the root model, restoring a persisted session when there is one
func NewModel(ctx context.Context, a *app.App) Model {
	m := Model{
		ctx:   ctx,
		app:   a,
		login: newLoginForm(),
		board: newBoard(),
		admin: newAdminPanel(),
	}

	session, err := a.Sessions.Current(ctx)
	switch {
	case err == nil:
		m = m.enter(session)
	case !errors.Is(err, auth.ErrNoSession):
		m = m.fail(err)
	}
	return m
}

// Screen reports the active screen
func (m Model) Screen() Screen {
	return m.screen
}

// Session reports the logged in identity, zero on the login screen
func (m Model) Session() models.Session {
	return m.session
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.admin = m.admin.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenLogin:
			return m.updateLogin(msg)
		case ScreenBoard:
			return m.updateBoard(msg)
		case ScreenAdmin:
			return m.updateAdmin(msg)
		}
	}

	return m, nil
}

// enter switches to the board for session
func (m Model) enter(session models.Session) Model {
	m.session = session
	m.screen = ScreenBoard
	m.board = newBoard()
	m.board.store = m.app.Tasks(session.Username)
	return m.reloadTasks()
}

// logout records the logout, clears the persisted session and shows the login form
func (m Model) logout() (Model, tea.Cmd) {
	session, err := m.app.Logout(m.ctx)
	if err != nil {
		return m.fail(err), nil
	}
	m.session = models.Session{}
	m.screen = ScreenLogin
	m.board = newBoard()
	m.admin = newAdminPanel().resize(m.width, m.height)
	m.login = newLoginForm()
	return m.ok(fmt.Sprintf("Logged out %s", session.Username)), textinput.Blink
}

func (m Model) fail(err error) Model {
	m.errLine = err.Error()
	m.notice = ""
	return m
}

func (m Model) ok(notice string) Model {
	m.errLine = ""
	m.notice = notice
	return m
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body, help string
	switch m.screen {
	case ScreenLogin:
		body, help = m.login.view(), loginHelp
	case ScreenBoard:
		body, help = m.board.view(m.width), m.board.help(m.session)
	case ScreenAdmin:
		body, help = m.admin.view(), adminHelp
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		"",
		body,
		"",
		m.statusLine(),
		helpStyle.Render(help),
	)
}

func (m Model) header() string {
	title := logoStyle.Render("tally")
	if m.session.Username == "" {
		return title
	}
	who := labelStyle.Render(fmt.Sprintf("  %s (%s)", m.session.Username, m.session.Role))
	return title + who
}

func (m Model) statusLine() string {
	switch {
	case m.errLine != "":
		return errorStyle.Render("✗ " + m.errLine)
	case m.notice != "":
		return noticeStyle.Render("✓ " + m.notice)
	}
	return ""
}

// fieldLabel renders a form label, highlighted when its field has focus
func fieldLabel(label string, active bool) string {
	if active {
		return activeLabelStyle.Render(fmt.Sprintf("▸ %-10s", label))
	}
	return labelStyle.Render(fmt.Sprintf("  %-10s", label))
}
