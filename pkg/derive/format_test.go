package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size     *int64
		expected string
	}{
		{nil, "n/a"},
		{ptr(int64(0)), "0 B"},
		{ptr(int64(500)), "500 B"},
		{ptr(int64(1023)), "1023 B"},
		{ptr(int64(1024)), "1.0 KB"},
		{ptr(int64(1536)), "1.5 KB"},
		{ptr(int64(1048576)), "1.0 MB"},
		{ptr(int64(1572864)), "1.5 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBytes(tt.size))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "n/a", FormatDate(nil))

	ts := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	result := FormatDate(&ts)
	assert.NotEqual(t, "n/a", result)
	assert.Equal(t, ts.Local().Format(DateLayout), result)
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, Placeholder, PrettyJSON(""))

	result := PrettyJSON(`{"name":"test","value":123}`)
	assert.Contains(t, result, "\n")
	assert.Contains(t, result, `"name"`)
	assert.Contains(t, result, `"test"`)
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 123\n}", result)

	assert.Contains(t, PrettyJSON(`{"a":1}`), `"a"`)
	assert.Equal(t, "not json", PrettyJSON("not json"))
	assert.Equal(t, `{"a":`, PrettyJSON(`{"a":`))
}
