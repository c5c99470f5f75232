package config

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders d rounded to the second as MM:SS, or H:MM:SS once it
// reaches an hour. The maximum duration is a live stream.
func FormatTime(d time.Duration) string {
	if d == math.MaxInt64 {
		return "LIVE"
	}

	return FormatSeconds(int64(math.Round(d.Seconds())))
}

// FormatSeconds renders a whole number of seconds as MM:SS, or H:MM:SS once
// it reaches an hour. Negative values render as zero.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ExceedsLimit reports whether d, rounded to the nearest second, is
// strictly longer than maxSeconds. A limit of zero or less disables the check.
func ExceedsLimit(d time.Duration, maxSeconds int64) bool {
	if maxSeconds <= 0 {
		return false
	}
	return int64(math.Round(d.Seconds())) > maxSeconds
}
