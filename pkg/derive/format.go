package derive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// NotAvailable is shown for absent sizes and dates
	NotAvailable = "n/a"
	// Placeholder is shown for absent raw payloads
	Placeholder = "–"

	DateLayout = "2006-01-02 15:04"
	DayLayout  = "2006-01-02"
)

// FormatBytes renders a byte count as B, KB or MB with one decimal place
func FormatBytes(size *int64) string {
	if size == nil {
		return NotAvailable
	}
	if *size < 1024 {
		return fmt.Sprintf("%d B", *size)
	}
	kb := float64(*size) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/1024)
}

// FormatDate renders t in local time, or n/a when absent
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format(DateLayout)
}

// PrettyJSON re-indents raw with two spaces. Text that is not valid JSON
// is returned unchanged.
func PrettyJSON(raw string) string {
	if raw == "" {
		return Placeholder
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return strings.TrimRight(buf.String(), " \t\r\n")
}
