package audit

import (
	"fmt"

	"github.com/balkashynov/tally/internal/models"
)

// LoginDetails describes a successful login
func LoginDetails(username string) string {
	return fmt.Sprintf("User %s logged in", username)
}

// LogoutDetails describes a logout
func LogoutDetails(username string) string {
	return fmt.Sprintf("User %s logged out", username)
}

// CreateUserDetails describes a user created by an admin
func CreateUserDetails(username string, role models.Role) string {
	return fmt.Sprintf("Created user %s with role %s", username, role)
}

// AddTaskDetails describes a new primary task
func AddTaskDetails(title string) string {
	return fmt.Sprintf("Added primary task: %s", title)
}

// AddSubTaskDetails describes a subtask added to task taskID
func AddSubTaskDetails(title string, taskID int64) string {
	return fmt.Sprintf("Added subtask: %s to task ID %d", title, taskID)
}

// ToggleSubTaskDetails describes a subtask toggled within task taskID
func ToggleSubTaskDetails(subTaskID, taskID int64) string {
	return fmt.Sprintf("Toggled subtask ID %d in task ID %d", subTaskID, taskID)
}
