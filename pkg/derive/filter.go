// Package derive holds the pure view derivations over in-memory file lists.
// Functions that depend on the current time take it as a parameter.
package derive

import (
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
)

const (
	// FilterAll disables a filter dimension
	FilterAll = "ALL"
	// FilterNeedsAttention selects files with attention markers or an overdue due date
	FilterNeedsAttention = "NEEDS_ATTENTION"
)

// MarkerFilterOptions lists the accepted marker filter values in display order
func MarkerFilterOptions() []string {
	options := []string{FilterAll, FilterNeedsAttention}
	for _, m := range models.MarkerOptions {
		options = append(options, string(m))
	}
	return options
}

// OcrFilterOptions lists the accepted OCR filter values in display order
func OcrFilterOptions() []string {
	return []string{
		FilterAll,
		string(models.OcrMatched),
		string(models.OcrPending),
		string(models.OcrFailed),
		string(models.OcrNone),
	}
}

// FilterFiles returns the files matching both the marker and the OCR filter,
// preserving their relative order. The input slice is never modified.
func FilterFiles(files []models.FileSummary, markerFilter, ocrFilter string, now time.Time) []models.FileSummary {
	result := make([]models.FileSummary, 0, len(files))
	for _, f := range files {
		if matchesMarker(f, markerFilter, now) && matchesOcr(f, ocrFilter) {
			result = append(result, f)
		}
	}
	return result
}

// NeedsAttention reports whether f carries an attention marker or is overdue at now
func NeedsAttention(f models.FileSummary, now time.Time) bool {
	for _, m := range models.NeedsAttentionMarkers {
		if f.HasMarker(m) {
			return true
		}
	}
	return IsOverdue(f.DueDate, now)
}

// IsOverdue reports whether due is set and strictly before now
func IsOverdue(due *time.Time, now time.Time) bool {
	return due != nil && due.Before(now)
}

func matchesMarker(f models.FileSummary, filter string, now time.Time) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterNeedsAttention:
		return NeedsAttention(f, now)
	default:
		return f.HasMarker(models.Marker(filter))
	}
}

func matchesOcr(f models.FileSummary, filter string) bool {
	if filter == FilterAll {
		return true
	}
	return string(f.Ocr()) == filter
}

// SelectVisible keeps selected when it is part of visible, otherwise it
// falls back to the first visible file. It returns false when visible is empty.
func SelectVisible(visible []models.FileSummary, selected int64) (int64, bool) {
	if len(visible) == 0 {
		return 0, false
	}
	for _, f := range visible {
		if f.ID == selected {
			return selected, true
		}
	}
	return visible[0].ID, true
}
