package meter

import (
	"fmt"
	"time"
)

const CountdownLabel = "Time Remaining: "

// Display is the surface a countdown is drawn on.
type Display interface {
	SetProgress(completed, total int)
	SetLabel(text string)
}

func FormatBytes(b uint64) string {
	size, prefix := formatBytes(b)
	if prefix == 0 {
		return fmt.Sprintf("%d B", int(size))
	}

	return fmt.Sprintf("%.2f %cB", size, prefix)
}

func formatBytes(b uint64) (float64, byte) {
	const (
		unit   = 1000
		prefix = "KMGTPE"
	)

	if b < unit {
		return float64(b), 0
	}

	div := int64(unit)
	exp := 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return float64(b) / float64(div), prefix[exp]
}

// FormatCountdown renders d as zero padded MM:SS, truncating to whole
// seconds. Minutes keep growing past 59 rather than rolling into hours.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	seconds := int64(d / time.Second)

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Remaining estimates the time left as a fixed cost per item not yet
// completed.
func Remaining(completed, total int, perItem time.Duration) time.Duration {
	left := total - completed
	if left < 0 {
		left = 0
	}

	return time.Duration(left) * perItem
}

func CountdownFormat(d Display, perItem time.Duration) UpdateCallback {
	return func(completed, total int, _ time.Duration, _ bool) {
		d.SetProgress(completed, total)
		d.SetLabel(CountdownLabel + FormatCountdown(Remaining(completed, total, perItem)))
	}
}
