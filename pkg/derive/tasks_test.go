package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueLabel(t *testing.T) {
	day := 24 * time.Hour
	far := refNow.Add(20 * day)

	tests := []struct {
		name     string
		due      *time.Time
		expected string
	}{
		{"absent", nil, ""},
		{"overdue", ptr(refNow.Add(-3 * day)), "OVERDUE (3 days ago)"},
		{"earlier today", ptr(refNow.Add(-2 * time.Hour)), "TODAY"},
		{"now", ptr(refNow), "TODAY"},
		{"tomorrow", ptr(refNow.Add(20 * time.Hour)), "Tomorrow"},
		{"this week", ptr(refNow.Add(5 * day)), "In 5 days"},
		{"later", &far, far.Local().Format(DayLayout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DueLabel(tt.due, refNow))
		})
	}
}

func TestIsOverdue(t *testing.T) {
	assert.False(t, IsOverdue(nil, refNow))
	assert.True(t, IsOverdue(ptr(refNow.Add(-time.Second)), refNow))
	assert.False(t, IsOverdue(ptr(refNow), refNow))
}
