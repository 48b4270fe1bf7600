package tasks

import (
	"math"

	"github.com/balkashynov/tally/internal/models"
)

// Color is the display token for a progress value
type Color string

const (
	ColorSuccess Color = "success"
	ColorDanger  Color = "danger"
	ColorInfo    Color = "info"
	ColorNeutral Color = "neutral"
)

// Progress returns the completed share of the subtasks in [0, 100], unrounded
func Progress(task models.Task) float64 {
	if len(task.SubTasks) == 0 {
		return 0
	}
	completed := 0
	for _, sub := range task.SubTasks {
		if sub.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(task.SubTasks)) * 100
}

// Percent rounds progress for display
func Percent(progress float64) int {
	return int(math.Round(progress))
}

// ProgressColor picks the bar color. The checks run in this order, so 100 is
// success and exactly 30 or 50 is neutral.
func ProgressColor(progress float64) Color {
	if progress == 100 {
		return ColorSuccess
	}
	if progress < 30 {
		return ColorDanger
	}
	if progress > 50 {
		return ColorInfo
	}
	return ColorNeutral
}
