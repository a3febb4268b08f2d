package models

// DifficultyBreakdown aggregates per-level performance within one assessment.
type DifficultyBreakdown struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Percentage float64 `json:"percentage"`
}

// Results is the immutable outcome of a completed assessment. It is the
// input to badge evaluation and to the external summary generator.
type Results struct {
	AssessmentID          string                             `json:"assessment_id"`
	Domain                string                             `json:"domain"`
	Difficulty            Difficulty                         `json:"difficulty"`
	TotalQuestions        int                                `json:"total_questions"`
	Answered              int                                `json:"answered"`
	Correct               int                                `json:"correct"`
	Incorrect             int                                `json:"incorrect"`
	Score                 float64                            `json:"score"`
	TotalTime             float64                            `json:"total_time_seconds"`
	AvgTime               float64                            `json:"avg_time_per_question"`
	FastestTime           float64                            `json:"fastest_time"`
	SlowestTime           float64                            `json:"slowest_time"`
	DifficultyPerformance map[Difficulty]DifficultyBreakdown `json:"difficulty_performance"`
	DifficultyHistory     []Difficulty                       `json:"difficulty_history"`
	Streak                float64                            `json:"performance_streak"`
	PerformanceLevel      string                             `json:"performance_level,omitempty"`
	RecommendedDifficulty Difficulty                         `json:"recommended_difficulty,omitempty"`
	CompletionDate        string                             `json:"completion_date"`
}
