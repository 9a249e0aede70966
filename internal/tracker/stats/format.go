package stats

import "fmt"

// FormatSleepDuration formats a count of elapsed seconds as a compact
// display string: "45m" under an hour, "2h 5m" from an hour up. Partial
// minutes are truncated, never rounded, and the minute remainder is kept
// even when zero, so exactly one hour reads "1h 0m". Negative input is
// clamped to 0.
func FormatSleepDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	minutes := totalSeconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
