package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	got := ParseTimestamp("2024-05-04_10-11-12")
	assert.Equal(t, time.Date(2024, 5, 4, 10, 11, 12, 0, time.UTC), got)

	before := time.Now().UTC().Add(-time.Second)
	fallback := ParseTimestamp("not-a-timestamp")
	assert.True(t, fallback.After(before), "fallback should be the current time")
}
