package stats

// QualityStats summarizes completed sleep sessions of one type.
// All durations are in seconds.
type QualityStats struct {
	Count           int `json:"count"`
	TotalDuration   int `json:"total_duration"`
	AverageDuration int `json:"average_duration"`
}

// QualityReport is a QualityStats with display strings attached
type QualityReport struct {
	QualityStats
	TotalFormatted   string `json:"total_formatted"`
	AverageFormatted string `json:"average_formatted"`
}

// DailySummary aggregates one baby's sleep for a single calendar date
type DailySummary struct {
	BabyID         string       `json:"baby_id"`
	Date           string       `json:"date"`
	Naps           QualityStats `json:"naps"`
	NightSleep     QualityStats `json:"night_sleep"`
	TotalDuration  int          `json:"total_duration"`
	TotalFormatted string       `json:"total_formatted"`
	LongestSession int          `json:"longest_session"`
	ActiveSessions int          `json:"active_sessions"`
}
