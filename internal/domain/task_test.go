package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdash/apigateway/internal/domain"
)

func TestMatchesSearch(t *testing.T) {
	task := domain.Task{
		Title:       "Comprar café",
		Description: "Moído, pacote de 500g",
		Assignee:    "Bruno",
	}

	assert.True(t, task.MatchesSearch(""))
	assert.True(t, task.MatchesSearch("café"))
	assert.True(t, task.MatchesSearch("CAFÉ"))
	assert.True(t, task.MatchesSearch("pacote"))
	assert.True(t, task.MatchesSearch("bruno"))
	assert.False(t, task.MatchesSearch("relatório"))
}

func TestFilterSentinels(t *testing.T) {
	var f domain.TaskFilter
	assert.False(t, f.HasStatus())
	assert.False(t, f.HasPriority())

	f.Status = domain.Status(domain.FilterAll)
	f.Priority = domain.Priority(domain.FilterAll)
	assert.False(t, f.HasStatus())
	assert.False(t, f.HasPriority())

	f.Status = domain.StatusPending
	f.Priority = domain.PriorityHigh
	assert.True(t, f.HasStatus())
	assert.True(t, f.HasPriority())
}

func TestValidValues(t *testing.T) {
	assert.True(t, domain.ValidPriority(domain.PriorityMedium))
	assert.False(t, domain.ValidPriority("urgent"))
	assert.True(t, domain.ValidStatus(domain.StatusCompleted))
	assert.False(t, domain.ValidStatus("done"))
}

func TestTaskJSONShape(t *testing.T) {
	raw, err := json.Marshal(domain.Task{ID: "t1", Owner: "u1", Priority: domain.PriorityHigh})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "u1", m["user"])
	assert.Equal(t, "alta", m["priority"])
	assert.NotContains(t, m, "completedDate")
}

func TestPriorityBreakdownJSONKeys(t *testing.T) {
	raw, err := json.Marshal(domain.PriorityBreakdown{High: 2, Medium: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"alta":2,"média":1,"baixa":0}`, string(raw))
}
