package models

import "time"

const (
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

// Answer is immutable once recorded.
type Answer struct {
	QuestionID    string     `bson:"question_id" json:"question_id"`
	SelectedIndex int        `bson:"selected_index" json:"selected_index"`
	IsCorrect     bool       `bson:"is_correct" json:"is_correct"`
	TimeTaken     float64    `bson:"time_taken" json:"time_taken"`
	Difficulty    Difficulty `bson:"difficulty_at_time" json:"difficulty_at_time"`
	Timestamp     time.Time  `bson:"timestamp" json:"timestamp"`
}

// Assessment is a single in-progress session. It has exactly one writer at a
// time; the caller serializes access and persists it between requests.
type Assessment struct {
	ID                string       `bson:"_id,omitempty" json:"id"`
	Domain            string       `bson:"domain" json:"domain"`
	Difficulty        Difficulty   `bson:"difficulty" json:"difficulty"`
	Questions         []Question   `bson:"questions" json:"questions"`
	Answers           []Answer     `bson:"answers" json:"answers"`
	CurrentQuestion   int          `bson:"current_question" json:"current_question"`
	TotalQuestions    int          `bson:"total_questions" json:"total_questions"`
	Streak            float64      `bson:"performance_streak" json:"performance_streak"`
	DifficultyHistory []Difficulty `bson:"difficulty_history" json:"difficulty_history"`
	Status            string       `bson:"status" json:"status"`
	StartTime         time.Time    `bson:"start_time" json:"start_time"`
	EndTime           time.Time    `bson:"end_time,omitempty" json:"end_time,omitempty"`
}

// Complete reports whether the target question count has been answered.
func (a *Assessment) Complete() bool {
	return a.CurrentQuestion >= a.TotalQuestions
}

// CorrectCount counts recorded correct answers.
func (a *Assessment) CorrectCount() int {
	n := 0
	for _, ans := range a.Answers {
		if ans.IsCorrect {
			n++
		}
	}
	return n
}

// AnswerFeedback is returned to the caller after each submission.
type AnswerFeedback struct {
	IsCorrect      bool     `json:"is_correct"`
	CorrectIndex   int      `json:"correct_answer"`
	Explanation    string   `json:"explanation"`
	LearningPoints []string `json:"learning_points"`
	Sources        []string `json:"sources"`
}
