package models

import "time"

// WidgetStatus is the home-screen snapshot served by /api/widget/status
type WidgetStatus struct {
	Timestamp           time.Time    `json:"timestamp"              yaml:"timestamp"`
	TotalFiles          int          `json:"totalFiles"             yaml:"total_files"`
	NeedsAttention      int          `json:"needsAttention"         yaml:"needs_attention"`
	OverdueCount        int          `json:"overdueCount"           yaml:"overdue_count"`
	UrgentCount         int          `json:"urgentCount"            yaml:"urgent_count"`
	UpcomingDueDates30  int          `json:"upcomingDueDates30Days" yaml:"upcoming_due_dates_30_days"`
	OcrPending          int          `json:"ocrPending"             yaml:"ocr_pending"`
	OcrFailed           int          `json:"ocrFailed"              yaml:"ocr_failed"`
	OcrMatched          int          `json:"ocrMatched"             yaml:"ocr_matched"`
	MissingInfo         int          `json:"missingInfo"            yaml:"missing_info"`
	NeedsCategorization int          `json:"needsCategorization"    yaml:"needs_categorization"`
	RecentFiles         []RecentFile `json:"recentFiles"            yaml:"recent_files"`
	Recommendations     []string     `json:"recommendations"        yaml:"recommendations"`
}

type RecentFile struct {
	ID        int64      `json:"id"        yaml:"id"`
	Filename  string     `json:"filename"  yaml:"filename"`
	CreatedAt *time.Time `json:"createdAt" yaml:"created_at"`
	Markers   []Marker   `json:"markers"   yaml:"markers"`
	OcrStatus *OcrStatus `json:"ocrStatus" yaml:"ocr_status"`
	DueDate   *time.Time `json:"dueDate"   yaml:"due_date"`
}
