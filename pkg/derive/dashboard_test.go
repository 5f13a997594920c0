package derive

import (
	"testing"
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestAggregateEmpty(t *testing.T) {
	d := Aggregate(nil, refNow)
	assert.Equal(t, Dashboard{}, d)
}

func TestAggregateCounts(t *testing.T) {
	yesterday := refNow.Add(-24 * time.Hour)
	nextWeek := refNow.Add(7 * 24 * time.Hour)
	nextYear := refNow.AddDate(1, 0, 0)

	files := []models.FileSummary{
		{ID: 1, Markers: []models.Marker{models.MarkerUrgent}, OcrStatus: ptr(models.OcrPending)},
		{ID: 2, DueDate: &yesterday},
		{ID: 3, Markers: []models.Marker{models.MarkerMissingInfo}, DueDate: &nextWeek, OcrStatus: ptr(models.OcrFailed)},
		{ID: 4},
		{ID: 5, Note: ptr("check clause 4")},
		{ID: 6, DueDate: &nextYear, OcrStatus: ptr(models.OcrMatched)},
		{ID: 7, Markers: []models.Marker{models.MarkerFollowUp}},
	}

	d := Aggregate(files, refNow)
	assert.Equal(t, 7, d.Total)
	assert.Equal(t, 1, d.Overdue)
	assert.Equal(t, 3, d.NeedsAttention)
	assert.Equal(t, 1, d.UpcomingDue)
	assert.Equal(t, 2, d.OcrIssues)
	assert.Equal(t, 1, d.MissingInfo)
	assert.Equal(t, 1, d.Uncategorized)
	assert.Equal(t, 1, d.Urgent)
}

func TestAggregateUpcomingWindowBounds(t *testing.T) {
	edge := refNow.Add(UpcomingWindow)
	past := refNow.Add(UpcomingWindow + time.Second)

	files := []models.FileSummary{
		{ID: 1, DueDate: ptr(refNow)},
		{ID: 2, DueDate: &edge},
		{ID: 3, DueDate: &past},
	}

	assert.Equal(t, 2, Aggregate(files, refNow).UpcomingDue)
}

func TestRecommendations(t *testing.T) {
	assert.Equal(t, []string{"All critical items are handled"}, Dashboard{}.Recommendations())

	tips := Dashboard{Overdue: 2, MissingInfo: 1, OcrIssues: 3, Uncategorized: 4}.Recommendations()
	assert.Len(t, tips, 4)
	assert.Contains(t, tips[0], "2 overdue")

	tips = Dashboard{Urgent: 1}.Recommendations()
	assert.Empty(t, tips)
}
