package tasks

import (
	"strings"

	"github.com/balkashynov/tally/internal/models"
)

// Filter keeps tasks whose title, or any subtask title, contains query.
// Matching is case insensitive; an empty query keeps everything.
func Filter(list []models.Task, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}

	var out []models.Task
	for _, task := range list {
		if strings.Contains(strings.ToLower(task.Title), query) {
			out = append(out, task)
			continue
		}
		for _, sub := range task.SubTasks {
			if strings.Contains(strings.ToLower(sub.Title), query) {
				out = append(out, task)
				break
			}
		}
	}
	return out
}
