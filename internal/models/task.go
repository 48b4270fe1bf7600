package models

// Task represents a primary todo item owned by one user's list
type Task struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	SubTasks []SubTask `json:"subTasks"`
}

// SubTask is a completable child item of a Task
type SubTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// FindSubTask returns the index of the subtask with the given id, or -1
func (t *Task) FindSubTask(id int64) int {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest task or subtask id in the list, 0 for an empty list
func MaxID(tasks []Task) int64 {
	var highest int64
	for _, task := range tasks {
		if task.ID > highest {
			highest = task.ID
		}
		for _, sub := range task.SubTasks {
			if sub.ID > highest {
				highest = sub.ID
			}
		}
	}
	return highest
}
