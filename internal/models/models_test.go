package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int64
	}{
		{name: "empty", want: 0},
		{name: "tasks only", tasks: []Task{{ID: 3}, {ID: 7}}, want: 7},
		{name: "subtask is highest", tasks: []Task{{ID: 3, SubTasks: []SubTask{{ID: 9}}}, {ID: 5}}, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxID(tt.tasks))
		})
	}
}

func TestFindSubTask(t *testing.T) {
	task := Task{SubTasks: []SubTask{{ID: 1}, {ID: 2}}}
	assert.Equal(t, 1, task.FindSubTask(2))
	assert.Equal(t, -1, task.FindSubTask(3))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("root")
	assert.Error(t, err)

	assert.True(t, Session{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Session{Role: RoleUser}.IsAdmin())
}

func TestError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Validation("Subtask cannot be empty"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Subtask cannot be empty", e.Error())

	assert.ErrorIs(t, NotFound("task 1 not found"), ErrNotFound)
}
