// Package adaptive adjusts an assessment's difficulty after each answer
// using a signed streak counter.
package adaptive

import "assessment-service/internal/models"

// Config holds the tunables of the streak system.
type Config struct {
	// QuickAnswerThreshold is the cutoff, in seconds, below which a
	// correct answer earns the quick bonus.
	QuickAnswerThreshold float64
	// QuickBonus is added on top of the +1 for a quick correct answer.
	QuickBonus float64
	// PromoteStreak and DemoteStreak are the thresholds that trigger a
	// level change.
	PromoteStreak float64
	DemoteStreak  float64
}

func DefaultConfig() *Config {
	return &Config{
		QuickAnswerThreshold: 30,
		QuickBonus:           0.5,
		PromoteStreak:        2,
		DemoteStreak:         -2,
	}
}

// Adjuster applies streak updates and difficulty transitions to an
// assessment. It is stateless; all state lives on the assessment itself.
type Adjuster struct {
	config *Config
}

func NewAdjuster(config *Config) *Adjuster {
	if config == nil {
		config = DefaultConfig()
	}
	return &Adjuster{config: config}
}

// ProcessAnswer updates the assessment's streak and, when a threshold is
// crossed, its difficulty and difficulty history.
//
// A correct answer extends a non-negative streak by 1, plus the quick bonus
// when answered under the threshold. A correct answer on a negative run
// resets the streak to exactly +1; the bonus is deliberately not applied on
// that turn. An incorrect answer mirrors this without any speed penalty:
// the two sides are intentionally asymmetric.
func (a *Adjuster) ProcessAnswer(assessment *models.Assessment, isCorrect bool, timeTaken float64) {
	streak := assessment.Streak

	if isCorrect {
		if streak >= 0 {
			streak++
			if timeTaken < a.config.QuickAnswerThreshold {
				streak += a.config.QuickBonus
			}
		} else {
			streak = 1
		}
	} else {
		if streak <= 0 {
			streak--
		} else {
			streak = -1
		}
	}

	assessment.Streak = streak

	// Crossing a threshold always consumes the streak, even when the
	// level is already at its ceiling or floor.
	switch {
	case streak >= a.config.PromoteStreak:
		if next, ok := promote(assessment.Difficulty); ok {
			assessment.Difficulty = next
			assessment.DifficultyHistory = append(assessment.DifficultyHistory, next)
		}
		assessment.Streak = 0
	case streak <= a.config.DemoteStreak:
		if next, ok := demote(assessment.Difficulty); ok {
			assessment.Difficulty = next
			assessment.DifficultyHistory = append(assessment.DifficultyHistory, next)
		}
		assessment.Streak = 0
	}
}

func promote(d models.Difficulty) (models.Difficulty, bool) {
	switch d {
	case models.DifficultyBeginner:
		return models.DifficultyIntermediate, true
	case models.DifficultyIntermediate:
		return models.DifficultyAdvanced, true
	}
	return d, false
}

func demote(d models.Difficulty) (models.Difficulty, bool) {
	switch d {
	case models.DifficultyAdvanced:
		return models.DifficultyIntermediate, true
	case models.DifficultyIntermediate:
		return models.DifficultyBeginner, true
	}
	return d, false
}
