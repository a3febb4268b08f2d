package models

import (
	"fmt"
	"time"
)

// Difficulty is both a question attribute and an assessment's current
// adaptive level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Question struct {
	// ID is assigned when the question is inserted into an assessment,
	// not when it is loaded into the bank.
	ID             string     `bson:"id,omitempty" json:"id,omitempty"`
	Title          string     `bson:"title" json:"title"`
	Context        string     `bson:"context" json:"context"`
	Prompt         string     `bson:"prompt" json:"prompt"`
	Options        []string   `bson:"options" json:"options"`
	CorrectIndex   int        `bson:"correct" json:"correct"`
	Explanation    string     `bson:"explanation" json:"explanation"`
	LearningPoints []string   `bson:"learning_points" json:"learningPoints"`
	Sources        []string   `bson:"sources" json:"sources"`
	Difficulty     Difficulty `bson:"difficulty" json:"difficulty"`
	Domain         string     `bson:"domain" json:"domain"`
	Timestamp      time.Time  `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Clone returns a deep copy, so callers can never mutate bank-owned slices.
func (q *Question) Clone() *Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	c.LearningPoints = append([]string(nil), q.LearningPoints...)
	c.Sources = append([]string(nil), q.Sources...)
	return &c
}

// Validate checks the invariants the rest of the engine relies on. It is
// called once at the bank-load boundary.
func (q *Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q: need at least 2 options, got %d", q.Title, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d)", q.Title, q.CorrectIndex, len(q.Options))
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("question %q: unknown difficulty %q", q.Title, q.Difficulty)
	}
	return nil
}
