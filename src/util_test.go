package dantracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{5 * time.Second, "5 sec"},
		{60 * time.Second, "60 sec"},
		{90 * time.Second, "1m30s"},
		{120 * time.Second, "2 min"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, format_time(tt.d))
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		course   float64
		expected string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{359, "N"},
		{217, "SW"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, direction(tt.course))
	}
}

func TestHasBeen(t *testing.T) {
	assert.True(t, HAS_BEEN(time.Time{}, time.Hour), "never-set timestamps satisfy trivially")
	assert.True(t, HAS_BEEN(time.Now().Add(-2*time.Second), time.Second))
	assert.False(t, HAS_BEEN(time.Now(), time.Second))
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, parse_list("a,b , c"))
	assert.Nil(t, parse_list(""))
}
