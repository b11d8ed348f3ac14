package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNotEmpty(t *testing.T) {
	assert.True(t, IsNotEmpty("hello"))
	assert.True(t, IsNotEmpty("  hello  "))
	assert.False(t, IsNotEmpty(""))
	assert.False(t, IsNotEmpty("   "))
}

func TestTrimAndValidate(t *testing.T) {
	trimmed, ok := TrimAndValidate("  Will it rain?  ")
	assert.True(t, ok)
	assert.Equal(t, "Will it rain?", trimmed)

	trimmed, ok = TrimAndValidate("   ")
	assert.False(t, ok)
	assert.Equal(t, "", trimmed)
}

func TestParseISODate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseISODate("2026-08-30")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		d, err := ParseISODate("  2026-08-30 ")
		assert.NoError(t, err)
		assert.Equal(t, 2026, d.Year())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseISODate("30/08/2026")
		assert.Error(t, err)

		_, err = ParseISODate("")
		assert.Error(t, err)
	})
}

func TestFormatISODate(t *testing.T) {
	d := time.Date(2026, 8, 30, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-30", FormatISODate(d))
}
