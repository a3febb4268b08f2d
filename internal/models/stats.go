package models

// HistoryEntry summarizes one completed assessment in an actor's lifetime
// record. Date is RFC 3339, so lexicographic order is chronological order.
type HistoryEntry struct {
	Date             string     `json:"date"`
	Domain           string     `json:"domain"`
	Difficulty       Difficulty `json:"difficulty"`
	Score            float64    `json:"score"`
	PerformanceLevel string     `json:"performance_level"`
}

// UserStats is the per-actor accumulator. Growth is monotonic except for
// average recomputation. Badges keeps insertion order for display.
type UserStats struct {
	TotalAssessments int            `json:"total_assessments"`
	TotalScore       float64        `json:"total_score"`
	AvgScore         float64        `json:"avg_score"`
	Badges           []string       `json:"badges"`
	History          []HistoryEntry `json:"history"`
}

func NewUserStats() *UserStats {
	return &UserStats{
		Badges:  []string{},
		History: []HistoryEntry{},
	}
}

func (s *UserStats) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}
