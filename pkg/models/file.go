package models

import "time"

// Marker is a closed-vocabulary status tag attached to a file
type Marker string

const (
	MarkerUrgent        Marker = "URGENT"
	MarkerReview        Marker = "REVIEW"
	MarkerMissingInfo   Marker = "MISSING_INFO"
	MarkerIncompleteOcr Marker = "INCOMPLETE_OCR"
	MarkerFollowUp      Marker = "FOLLOW_UP"
)

// MarkerOptions lists the marker vocabulary in display order
var MarkerOptions = []Marker{
	MarkerUrgent,
	MarkerReview,
	MarkerMissingInfo,
	MarkerIncompleteOcr,
	MarkerFollowUp,
}

// NeedsAttentionMarkers are the markers that flag a file as needing attention
var NeedsAttentionMarkers = []Marker{
	MarkerUrgent,
	MarkerReview,
	MarkerMissingInfo,
}

// OcrStatus is the backend-assigned recognition outcome for a file
type OcrStatus string

const (
	OcrMatched OcrStatus = "MATCHED"
	OcrPending OcrStatus = "PENDING"
	OcrFailed  OcrStatus = "FAILED"
	// OcrNone stands in for an absent status when filtering
	OcrNone OcrStatus = "NONE"
)

// FileSummary is a list item as returned by /api/files
type FileSummary struct {
	ID        int64      `json:"id"         yaml:"id"`
	Filename  string     `json:"filename"   yaml:"filename"`
	Mime      string     `json:"mime,omitempty"      yaml:"mime,omitempty"`
	Size      *int64     `json:"size,omitempty"      yaml:"size,omitempty"`
	Checksum  string     `json:"checksum,omitempty"  yaml:"checksum,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	Markers   []Marker   `json:"markers"    yaml:"markers"`
	DueDate   *time.Time `json:"dueDate"    yaml:"due_date"`
	OcrStatus *OcrStatus `json:"ocrStatus"  yaml:"ocr_status"`

	// Only some list responses carry the note
	Note *string `json:"note,omitempty" yaml:"note,omitempty"`
}

// HasMarker reports whether m is present in the file's marker set
func (f FileSummary) HasMarker(m Marker) bool {
	for _, marker := range f.Markers {
		if marker == m {
			return true
		}
	}
	return false
}

// Ocr returns the OCR status, treating an absent status as OcrNone
func (f FileSummary) Ocr() OcrStatus {
	if f.OcrStatus == nil || *f.OcrStatus == "" {
		return OcrNone
	}
	return *f.OcrStatus
}

// HasNote reports whether the file carries a non-empty note
func (f FileSummary) HasNote() bool {
	return f.Note != nil && *f.Note != ""
}

// OcrInfo holds the OCR record linked to a file
type OcrInfo struct {
	ID          int64      `json:"id"                    yaml:"id"`
	Status      OcrStatus  `json:"status"                yaml:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"   yaml:"created_at,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" yaml:"processed_at,omitempty"`
	RetryCount  int        `json:"retryCount"            yaml:"retry_count"`
	RawJSON     string     `json:"rawJson,omitempty"     yaml:"raw_json,omitempty"`
}

// ContractInfo is the contract a file is linked to, if any
type ContractInfo struct {
	ID    int64  `json:"id"    yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// FileDetail is the full record returned by /api/files/:id
type FileDetail struct {
	FileSummary `yaml:",inline"`

	Ocr      *OcrInfo      `json:"ocr,omitempty"      yaml:"ocr,omitempty"`
	Contract *ContractInfo `json:"contract,omitempty" yaml:"contract,omitempty"`
}

// MarkersUpdate is the body of PATCH /api/files/:id/markers
type MarkersUpdate struct {
	Markers []Marker `json:"markers"`
}

// DueDateUpdate is the body of PATCH /api/files/:id/due-date; a nil DueDate clears it
type DueDateUpdate struct {
	DueDate *time.Time `json:"dueDate"`
}

// NoteUpdate is the body of PATCH /api/files/:id/note
type NoteUpdate struct {
	Note string `json:"note"`
}

// BulkMarkersUpdate is the body of PATCH /api/files/bulk/markers
type BulkMarkersUpdate struct {
	FileIDs []int64  `json:"fileIds"`
	Markers []Marker `json:"markers"`
}

// BulkDueDateUpdate is the body of PATCH /api/files/bulk/due-date
type BulkDueDateUpdate struct {
	FileIDs []int64    `json:"fileIds"`
	DueDate *time.Time `json:"dueDate"`
}

// Health is the payload of /api/health
type Health struct {
	Status string `json:"status"`
}

// IsUp reports whether the backend declared itself healthy
func (h Health) IsUp() bool {
	return h.Status == "UP"
}
