package derive

import (
	"fmt"
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
)

// UpcomingWindow is the look-ahead of the upcoming due date tile
const UpcomingWindow = 30 * 24 * time.Hour

// Dashboard holds the aggregate counts over a file list. The counts are
// independent of each other; a file may contribute to several of them.
type Dashboard struct {
	Total          int `json:"total"           yaml:"total"`
	Overdue        int `json:"overdue"         yaml:"overdue"`
	NeedsAttention int `json:"needs_attention" yaml:"needs_attention"`
	UpcomingDue    int `json:"upcoming_due"    yaml:"upcoming_due"`
	OcrIssues      int `json:"ocr_issues"      yaml:"ocr_issues"`
	MissingInfo    int `json:"missing_info"    yaml:"missing_info"`
	Uncategorized  int `json:"uncategorized"   yaml:"uncategorized"`
	Urgent         int `json:"urgent"          yaml:"urgent"`
}

// Aggregate computes the dashboard counts for files at now
func Aggregate(files []models.FileSummary, now time.Time) Dashboard {
	horizon := now.Add(UpcomingWindow)
	d := Dashboard{Total: len(files)}

	for _, f := range files {
		if IsOverdue(f.DueDate, now) {
			d.Overdue++
		}
		if NeedsAttention(f, now) {
			d.NeedsAttention++
		}
		if f.DueDate != nil && !f.DueDate.Before(now) && !f.DueDate.After(horizon) {
			d.UpcomingDue++
		}
		if s := f.Ocr(); s == models.OcrPending || s == models.OcrFailed {
			d.OcrIssues++
		}
		if f.HasMarker(models.MarkerMissingInfo) {
			d.MissingInfo++
		}
		if len(f.Markers) == 0 && f.DueDate == nil && !f.HasNote() {
			d.Uncategorized++
		}
		if f.HasMarker(models.MarkerUrgent) {
			d.Urgent++
		}
	}

	return d
}

// Recommendations lists the follow-up tips for the dashboard counts
func (d Dashboard) Recommendations() []string {
	var tips []string
	if d.Overdue > 0 {
		tips = append(tips, fmt.Sprintf("Review %d overdue contracts", d.Overdue))
	}
	if d.MissingInfo > 0 {
		tips = append(tips, fmt.Sprintf("Complete %d contracts with missing information", d.MissingInfo))
	}
	if d.OcrIssues > 0 {
		tips = append(tips, fmt.Sprintf("Check %d OCR runs", d.OcrIssues))
	}
	if d.Uncategorized > 0 {
		tips = append(tips, fmt.Sprintf("Categorize %d contracts and set due dates", d.Uncategorized))
	}
	if d.Overdue == 0 && d.Urgent == 0 {
		tips = append(tips, "All critical items are handled")
	}
	return tips
}
