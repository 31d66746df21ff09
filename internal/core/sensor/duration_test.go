package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours    float64
		expected string
	}{
		{0, "0:00:00"},
		{1, "1:00:00"},
		{1.5, "1:30:00"},
		{23, "23:00:00"},
		{24, "1 day, 0:00:00"},
		{25.25, "1 day, 1:15:00"},
		{48, "2 days, 0:00:00"},
		{49.5, "2 days, 1:30:00"},
		{4320, "180 days, 0:00:00"},
		{-5, "0:00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, FormatHours(c.hours), "hours=%v", c.hours)
	}
}
