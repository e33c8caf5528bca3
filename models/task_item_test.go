package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusValid(t *testing.T) {
	for _, status := range []TaskStatus{StatusNew, StatusTodo, StatusInProgress, StatusDone} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("Archived").Valid())
	assert.False(t, TaskStatus("done").Valid())
}

func TestTaskPriorityValid(t *testing.T) {
	for _, priority := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, priority.Valid(), string(priority))
	}

	assert.False(t, TaskPriority("").Valid())
	assert.False(t, TaskPriority("Critical").Valid())
}
