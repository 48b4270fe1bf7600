package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
)

const loginHelp = "tab switch field · enter log in · esc quit"

type loginForm struct {
	inputs []textinput.Model // username, password
	focus  int
}

func newLoginForm() loginForm {
	username := newInput("Username", 64)
	username.Focus()

	password := newInput("Password", 64)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{inputs: []textinput.Model{username, password}}
}

func (f loginForm) focusOn(i int) (loginForm, tea.Cmd) {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return f, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.login, cmd = m.login.focusOn(1 - m.login.focus)
		return m, cmd

	case "enter":
		if m.login.focus == 0 {
			m.login, cmd = m.login.focusOn(1)
			return m, cmd
		}
		return m.submitLogin()
	}

	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	username := m.login.inputs[0].Value()
	password := m.login.inputs[1].Value()

	session, err := m.app.Login(m.ctx, username, password)
	if err != nil {
		return m.fail(err), nil
	}

	m.login = newLoginForm()
	m = m.enter(session)
	if m.errLine != "" {
		return m, nil
	}
	return m.ok(fmt.Sprintf("Welcome, %s", session.Username)), nil
}

func (f loginForm) view() string {
	var b strings.Builder
	b.WriteString(activeLabelStyle.Render("Log in"))
	b.WriteString("\n\n")
	for i, label := range []string{"Username", "Password"} {
		b.WriteString(fieldLabel(label, f.focus == i))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return cardStyle(60, true).Render(b.String())
}
