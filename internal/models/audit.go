package models

// Action names a state-changing operation recorded in the audit log
type Action string

const (
	ActionLogin         Action = "login"
	ActionLogout        Action = "logout"
	ActionCreateUser    Action = "create_user"
	ActionAddTask       Action = "add_task"
	ActionAddSubTask    Action = "add_subtask"
	ActionToggleSubTask Action = "toggle_subtask"
)

// AuditEntry is an immutable record of a state-changing action
type AuditEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"` // ISO-8601, UTC
	Username  string `json:"username"`
	Action    Action `json:"action"`
	Details   string `json:"details"`
}
