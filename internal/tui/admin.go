package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/auth"
	"github.com/balkashynov/tally/internal/models"
)

const adminHelp = "tab next field · ←/→ role · enter create user · ↑/↓ scroll log · esc back"

// Admin panel focus order
const (
	adminUsername = iota
	adminPassword
	adminRole
	adminAudit
	adminFields
)

type adminPanel struct {
	inputs []textinput.Model // username, password
	role   models.Role
	focus  int

	users []auth.UserInfo
	audit table.Model
}

func auditColumns(width int) []table.Column {
	details := max(width-24-14-16-10, 20)
	return []table.Column{
		{Title: "Timestamp", Width: 24},
		{Title: "Username", Width: 14},
		{Title: "Action", Width: 16},
		{Title: "Details", Width: details},
	}
}

func newAdminPanel() adminPanel {
	username := newInput("Username", 64)
	username.Focus()
	password := newInput("Password", 64)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain))

	audit := table.New(
		table.WithColumns(auditColumns(100)),
		table.WithHeight(10),
		table.WithStyles(styles),
	)

	return adminPanel{
		inputs: []textinput.Model{username, password},
		role:   models.RoleUser,
		audit:  audit,
	}
}

func (p adminPanel) resize(width, height int) adminPanel {
	if width > 0 {
		p.audit.SetColumns(auditColumns(width))
	}
	if height > 0 {
		p.audit.SetHeight(max(height-22, 5))
	}
	return p
}

func (p adminPanel) focusOn(i int) (adminPanel, tea.Cmd) {
	p.focus = i
	for j := range p.inputs {
		p.inputs[j].Blur()
	}
	p.audit.Blur()

	switch i {
	case adminUsername, adminPassword:
		return p, p.inputs[i].Focus()
	case adminAudit:
		p.audit.Focus()
	}
	return p, nil
}

func (p adminPanel) toggleRole() adminPanel {
	if p.role == models.RoleUser {
		p.role = models.RoleAdmin
	} else {
		p.role = models.RoleUser
	}
	return p
}

// openAdmin loads the directory and the audit log and shows the admin panel
func (m Model) openAdmin() (tea.Model, tea.Cmd) {
	m = m.reloadAdmin()
	m.screen = ScreenAdmin
	var cmd tea.Cmd
	m.admin, cmd = m.admin.focusOn(adminUsername)
	return m, cmd
}

func (m Model) reloadAdmin() Model {
	users, err := m.app.Auth.Users(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	entries, err := m.app.Audit.List(m.ctx)
	if err != nil {
		return m.fail(err)
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{e.Timestamp, e.Username, string(e.Action), e.Details})
	}
	m.admin.users = users
	m.admin.audit.SetRows(rows)
	return m
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.screen = ScreenBoard
		m = m.reloadTasks()
		return m, nil

	case "tab":
		m.admin, cmd = m.admin.focusOn((m.admin.focus + 1) % adminFields)
		return m, cmd

	case "shift+tab":
		m.admin, cmd = m.admin.focusOn((m.admin.focus + adminFields - 1) % adminFields)
		return m, cmd
	}

	switch m.admin.focus {
	case adminAudit:
		m.admin.audit, cmd = m.admin.audit.Update(msg)
		return m, cmd

	case adminRole:
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			m.admin = m.admin.toggleRole()
		case "enter":
			return m.submitUser()
		}
		return m, nil
	}

	if msg.String() == "enter" {
		if m.admin.focus == adminUsername {
			m.admin, cmd = m.admin.focusOn(adminPassword)
			return m, cmd
		}
		return m.submitUser()
	}

	m.admin.inputs[m.admin.focus], cmd = m.admin.inputs[m.admin.focus].Update(msg)
	return m, cmd
}

func (m Model) submitUser() (tea.Model, tea.Cmd) {
	username := m.admin.inputs[adminUsername].Value()
	role := m.admin.role

	err := m.app.Auth.CreateUser(m.ctx, m.session, username, m.admin.inputs[adminPassword].Value(), role)
	if err != nil {
		return m.fail(err), nil
	}

	for i := range m.admin.inputs {
		m.admin.inputs[i].Reset()
	}
	m.admin.role = models.RoleUser
	m = m.reloadAdmin()

	var cmd tea.Cmd
	m.admin, cmd = m.admin.focusOn(adminUsername)
	return m.ok(fmt.Sprintf("Created user %s with role %s", username, role)), cmd
}

func (p adminPanel) view() string {
	var form strings.Builder
	form.WriteString(activeLabelStyle.Render("Create user"))
	form.WriteString("\n\n")
	for i, label := range []string{"Username", "Password"} {
		form.WriteString(fieldLabel(label, p.focus == i))
		form.WriteString(p.inputs[i].View())
		form.WriteString("\n")
	}

	roles := make([]string, 0, 2)
	for _, r := range []models.Role{models.RoleUser, models.RoleAdmin} {
		if r == p.role {
			roles = append(roles, activeLabelStyle.Render("● "+string(r)))
		} else {
			roles = append(roles, labelStyle.Render("○ "+string(r)))
		}
	}
	form.WriteString(fieldLabel("Role", p.focus == adminRole))
	form.WriteString(strings.Join(roles, "  "))

	var users strings.Builder
	users.WriteString(activeLabelStyle.Render("Users"))
	users.WriteString("\n\n")
	if len(p.users) == 0 {
		users.WriteString(labelStyle.Italic(true).Render("No users yet"))
	}
	for _, u := range p.users {
		users.WriteString(fmt.Sprintf("%-16s %s\n", u.Username, labelStyle.Render(string(u.Role))))
	}

	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		cardStyle(56, p.focus != adminAudit).Render(form.String()),
		" ",
		cardStyle(30, false).Render(strings.TrimRight(users.String(), "\n")),
	)

	log := activeLabelStyle.Render("Audit log") + "\n" + p.audit.View()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		top,
		"",
		cardStyle(0, p.focus == adminAudit).UnsetWidth().Render(log),
	)
}
