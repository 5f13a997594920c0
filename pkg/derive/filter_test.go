package derive

import (
	"testing"
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func ids(files []models.FileSummary) []int64 {
	out := make([]int64, 0, len(files))
	for _, f := range files {
		out = append(out, f.ID)
	}
	return out
}

func fixture() []models.FileSummary {
	return []models.FileSummary{
		{ID: 1, Filename: "file1.pdf", Markers: []models.Marker{models.MarkerUrgent, models.MarkerReview}, OcrStatus: ptr(models.OcrStatus("DONE"))},
		{ID: 2, Filename: "file2.pdf", Markers: []models.Marker{models.MarkerMissingInfo}, OcrStatus: ptr(models.OcrPending)},
		{ID: 3, Filename: "file3.pdf", Markers: []models.Marker{}, OcrStatus: ptr(models.OcrNone)},
	}
}

func TestFilterFilesAllKeepsOrder(t *testing.T) {
	files := fixture()
	result := FilterFiles(files, FilterAll, FilterAll, refNow)
	assert.Equal(t, []int64{1, 2, 3}, ids(result))
}

func TestFilterFilesEmptyInput(t *testing.T) {
	result := FilterFiles(nil, FilterNeedsAttention, FilterAll, refNow)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilterFilesSpecificMarker(t *testing.T) {
	result := FilterFiles(fixture(), string(models.MarkerUrgent), FilterAll, refNow)
	assert.Equal(t, []int64{1}, ids(result))

	result = FilterFiles(fixture(), string(models.MarkerFollowUp), FilterAll, refNow)
	assert.Empty(t, result)
}

func TestFilterFilesByOcr(t *testing.T) {
	assert.Equal(t, []int64{1}, ids(FilterFiles(fixture(), FilterAll, "DONE", refNow)))
	assert.Equal(t, []int64{2}, ids(FilterFiles(fixture(), FilterAll, "PENDING", refNow)))
	assert.Equal(t, []int64{1}, ids(FilterFiles(fixture(), "URGENT", "DONE", refNow)))
	assert.Empty(t, FilterFiles(fixture(), "URGENT", "PENDING", refNow))
}

func TestFilterFilesAbsentOcrIsNone(t *testing.T) {
	files := []models.FileSummary{
		{ID: 1},
		{ID: 2, OcrStatus: ptr(models.OcrMatched)},
	}

	assert.Equal(t, []int64{2}, ids(FilterFiles(files, FilterAll, "MATCHED", refNow)))
	assert.Equal(t, []int64{1}, ids(FilterFiles(files, FilterAll, "NONE", refNow)))
}

func TestFilterFilesNeedsAttention(t *testing.T) {
	yesterday := refNow.Add(-24 * time.Hour)
	tomorrow := refNow.Add(24 * time.Hour)

	files := []models.FileSummary{
		{ID: 1, Markers: []models.Marker{models.MarkerUrgent}, DueDate: &tomorrow},
		{ID: 2, Markers: []models.Marker{}, DueDate: &yesterday},
		{ID: 3, Markers: []models.Marker{}},
		{ID: 4, Markers: []models.Marker{models.MarkerFollowUp}, DueDate: &tomorrow},
		{ID: 5, Markers: []models.Marker{models.MarkerReview}},
		{ID: 6, Markers: []models.Marker{models.MarkerIncompleteOcr}},
	}

	result := FilterFiles(files, FilterNeedsAttention, FilterAll, refNow)
	assert.Equal(t, []int64{1, 2, 5}, ids(result))
}

func TestFilterFilesDueExactlyNowIsNotOverdue(t *testing.T) {
	files := []models.FileSummary{{ID: 1, DueDate: ptr(refNow)}}
	assert.Empty(t, FilterFiles(files, FilterNeedsAttention, FilterAll, refNow))
}

func TestFilterFilesScenario(t *testing.T) {
	yesterday := refNow.AddDate(0, 0, -1)
	files := []models.FileSummary{
		{ID: 1, Markers: []models.Marker{models.MarkerUrgent}, OcrStatus: ptr(models.OcrPending)},
		{ID: 2, Markers: []models.Marker{}, OcrStatus: ptr(models.OcrNone), DueDate: &yesterday},
	}

	assert.Equal(t, []int64{1, 2}, ids(FilterFiles(files, FilterNeedsAttention, FilterAll, refNow)))
	assert.Equal(t, []int64{1}, ids(FilterFiles(files, FilterAll, "PENDING", refNow)))
}

func TestFilterFilesDoesNotModifyInput(t *testing.T) {
	files := fixture()
	_ = FilterFiles(files, "URGENT", FilterAll, refNow)
	assert.Equal(t, fixture(), files)
}

func TestSelectVisible(t *testing.T) {
	visible := []models.FileSummary{{ID: 4}, {ID: 7}}

	id, ok := SelectVisible(visible, 7)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	id, ok = SelectVisible(visible, 9)
	assert.True(t, ok)
	assert.Equal(t, int64(4), id)

	_, ok = SelectVisible(nil, 1)
	assert.False(t, ok)
}

func TestFilterOptions(t *testing.T) {
	assert.Equal(t, []string{"ALL", "NEEDS_ATTENTION", "URGENT", "REVIEW", "MISSING_INFO", "INCOMPLETE_OCR", "FOLLOW_UP"}, MarkerFilterOptions())
	assert.Equal(t, []string{"ALL", "MATCHED", "PENDING", "FAILED", "NONE"}, OcrFilterOptions())
}
