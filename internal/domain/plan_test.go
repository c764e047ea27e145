package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var goals []IntegrationGoal
	assert.Equal(t, 0, Progress(goals))

	goals = append(goals, IntegrationGoal{Status: GoalCompleted})
	assert.Equal(t, 100, Progress(goals))

	goals = append(goals, IntegrationGoal{Status: GoalPending})
	assert.Equal(t, 50, Progress(goals))
}

func TestProgressOf_Rounds(t *testing.T) {
	assert.Equal(t, 33, ProgressOf(1, 3))
	assert.Equal(t, 67, ProgressOf(2, 3))
	assert.Equal(t, 0, ProgressOf(0, 0))
	assert.Equal(t, 0, ProgressOf(3, -1))
}
