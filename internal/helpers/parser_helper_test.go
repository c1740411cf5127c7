package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-04-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("20-04-2026")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-04-20", FormatDate(time.Date(2026, 4, 20, 15, 30, 0, 0, time.UTC)))
}
