//go:build !integration

package meter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := map[string]struct {
		size     uint64
		expected string
	}{
		"format bytes":     {1, "1 B"},
		"format kilobytes": {1100, "1.10 KB"},
		"format megabytes": {1110000, "1.11 MB"},
		"format gigabytes": {1111000000, "1.11 GB"},
		"format terabytes": {1111100000000, "1.11 TB"},
		"format petabytes": {1111110000000000, "1.11 PB"},
		"format exabytes":  {1111110000000000000, "1.11 EB"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatBytes(tc.size))
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := map[string]struct {
		d        time.Duration
		expected string
	}{
		"zero":              {0, "00:00"},
		"negative":          {-5 * time.Second, "00:00"},
		"seconds":           {9 * time.Second, "00:09"},
		"minute and change": {75 * time.Second, "01:15"},
		"sub-second":        {1900 * time.Millisecond, "00:01"},
		"over an hour":      {3*time.Hour + 2*time.Second, "180:02"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCountdown(tc.d))
		})
	}
}

func TestRemaining(t *testing.T) {
	tests := map[string]struct {
		completed, total int
		expected         time.Duration
	}{
		"nothing started": {0, 3, 9 * time.Second},
		"one done":        {1, 3, 6 * time.Second},
		"all done":        {3, 3, 0},
		"uninitialized":   {0, 0, 0},
		"overshoot":       {4, 3, 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Remaining(tc.completed, tc.total, 3*time.Second))
		})
	}
}

type recordingDisplay struct {
	completed, total int
	label            string
}

func (d *recordingDisplay) SetProgress(completed, total int) {
	d.completed, d.total = completed, total
}

func (d *recordingDisplay) SetLabel(text string) {
	d.label = text
}

func TestCountdownFormat(t *testing.T) {
	d := new(recordingDisplay)
	fn := CountdownFormat(d, 3*time.Second)

	fn(1, 3, time.Second, false)
	assert.Equal(t, 1, d.completed)
	assert.Equal(t, 3, d.total)
	assert.Equal(t, "Time Remaining: 00:06", d.label)

	fn(3, 3, 2*time.Second, true)
	assert.Equal(t, 3, d.completed)
	assert.Equal(t, "Time Remaining: 00:00", d.label)
}
