package adaptive

import (
	"testing"

	"assessment-service/internal/models"
)

func newAssessment(difficulty models.Difficulty) *models.Assessment {
	return &models.Assessment{
		Difficulty:        difficulty,
		DifficultyHistory: []models.Difficulty{difficulty},
	}
}

func TestStreakUpdates(t *testing.T) {
	adjuster := NewAdjuster(nil)

	testCases := []struct {
		name           string
		startStreak    float64
		isCorrect      bool
		timeTaken      float64
		expectedStreak float64
	}{
		{"slow correct extends streak", 0, true, 40, 1},
		{"quick correct earns bonus", 0, true, 29, 1.5},
		{"threshold is exclusive", 0, true, 30, 1},
		{"correct on negative run resets to one without bonus", -1, true, 5, 1},
		{"incorrect extends negative run", -1, false, 40, 0}, // -2 crosses threshold, resets
		{"incorrect on positive run resets to minus one", 1.5, false, 40, -1},
		{"fast incorrect gets no penalty", 0, false, 2, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assessment := newAssessment(models.DifficultyIntermediate)
			assessment.Streak = tc.startStreak

			adjuster.ProcessAnswer(assessment, tc.isCorrect, tc.timeTaken)

			if assessment.Streak != tc.expectedStreak {
				t.Errorf("expected streak %.1f, got %.1f", tc.expectedStreak, assessment.Streak)
			}
		})
	}
}

func TestTwoSlowCorrectAnswersPromote(t *testing.T) {
	adjuster := NewAdjuster(nil)
	assessment := newAssessment(models.DifficultyIntermediate)

	adjuster.ProcessAnswer(assessment, true, 40)
	if assessment.Streak != 1 {
		t.Fatalf("expected streak 1 after first answer, got %.1f", assessment.Streak)
	}
	if assessment.Difficulty != models.DifficultyIntermediate {
		t.Fatalf("difficulty changed too early: %s", assessment.Difficulty)
	}

	adjuster.ProcessAnswer(assessment, true, 40)
	if assessment.Difficulty != models.DifficultyAdvanced {
		t.Errorf("expected promotion to advanced, got %s", assessment.Difficulty)
	}
	if assessment.Streak != 0 {
		t.Errorf("expected streak reset to 0, got %.1f", assessment.Streak)
	}
	last := assessment.DifficultyHistory[len(assessment.DifficultyHistory)-1]
	if last != assessment.Difficulty {
		t.Errorf("history last %s does not match current difficulty %s", last, assessment.Difficulty)
	}
}

func TestTwoQuickCorrectAnswersPromoteFromBeginner(t *testing.T) {
	adjuster := NewAdjuster(nil)
	assessment := newAssessment(models.DifficultyBeginner)

	adjuster.ProcessAnswer(assessment, true, 10)
	if assessment.Streak != 1.5 {
		t.Fatalf("expected streak 1.5 after quick correct, got %.1f", assessment.Streak)
	}

	// Second quick correct takes the streak to 3.0, crossing the
	// promotion threshold.
	adjuster.ProcessAnswer(assessment, true, 10)
	if assessment.Difficulty != models.DifficultyIntermediate {
		t.Errorf("expected promotion to intermediate, got %s", assessment.Difficulty)
	}
	if assessment.Streak != 0 {
		t.Errorf("expected streak reset, got %.1f", assessment.Streak)
	}
}

func TestTwoIncorrectAnswersDemoteFromAdvanced(t *testing.T) {
	adjuster := NewAdjuster(nil)
	assessment := newAssessment(models.DifficultyAdvanced)

	adjuster.ProcessAnswer(assessment, false, 15)
	adjuster.ProcessAnswer(assessment, false, 15)

	if assessment.Difficulty != models.DifficultyIntermediate {
		t.Errorf("expected demotion to intermediate, got %s", assessment.Difficulty)
	}
	if assessment.Streak != 0 {
		t.Errorf("expected streak reset, got %.1f", assessment.Streak)
	}
	want := []models.Difficulty{models.DifficultyAdvanced, models.DifficultyIntermediate}
	if len(assessment.DifficultyHistory) != len(want) {
		t.Fatalf("expected history %v, got %v", want, assessment.DifficultyHistory)
	}
	for i := range want {
		if assessment.DifficultyHistory[i] != want[i] {
			t.Errorf("history[%d]: expected %s, got %s", i, want[i], assessment.DifficultyHistory[i])
		}
	}
}

func TestCeilingAndFloorConsumeStreakWithoutHistoryChange(t *testing.T) {
	adjuster := NewAdjuster(nil)

	t.Run("ceiling at advanced", func(t *testing.T) {
		assessment := newAssessment(models.DifficultyAdvanced)
		adjuster.ProcessAnswer(assessment, true, 40)
		adjuster.ProcessAnswer(assessment, true, 40)

		if assessment.Difficulty != models.DifficultyAdvanced {
			t.Errorf("expected difficulty to stay advanced, got %s", assessment.Difficulty)
		}
		if len(assessment.DifficultyHistory) != 1 {
			t.Errorf("expected unchanged history, got %v", assessment.DifficultyHistory)
		}
		if assessment.Streak != 0 {
			t.Errorf("expected streak consumed at ceiling, got %.1f", assessment.Streak)
		}
	})

	t.Run("floor at beginner", func(t *testing.T) {
		assessment := newAssessment(models.DifficultyBeginner)
		adjuster.ProcessAnswer(assessment, false, 40)
		adjuster.ProcessAnswer(assessment, false, 40)

		if assessment.Difficulty != models.DifficultyBeginner {
			t.Errorf("expected difficulty to stay beginner, got %s", assessment.Difficulty)
		}
		if len(assessment.DifficultyHistory) != 1 {
			t.Errorf("expected unchanged history, got %v", assessment.DifficultyHistory)
		}
		if assessment.Streak != 0 {
			t.Errorf("expected streak consumed at floor, got %.1f", assessment.Streak)
		}
	})
}

func TestSignFlipSkipsQuickBonus(t *testing.T) {
	adjuster := NewAdjuster(nil)
	assessment := newAssessment(models.DifficultyIntermediate)
	assessment.Streak = -1

	// Quick and correct, but the run was negative: reset to exactly +1.
	adjuster.ProcessAnswer(assessment, true, 5)
	if assessment.Streak != 1 {
		t.Errorf("expected streak exactly 1 on sign flip, got %.1f", assessment.Streak)
	}
}

func TestDifficultyAlwaysValid(t *testing.T) {
	adjuster := NewAdjuster(nil)
	assessment := newAssessment(models.DifficultyIntermediate)

	answers := []struct {
		correct bool
		time    float64
	}{
		{true, 5}, {true, 5}, {false, 50}, {false, 50}, {false, 50},
		{true, 40}, {false, 10}, {true, 5}, {true, 5}, {true, 5},
	}

	for i, ans := range answers {
		adjuster.ProcessAnswer(assessment, ans.correct, ans.time)

		if !assessment.Difficulty.Valid() {
			t.Fatalf("answer %d: invalid difficulty %q", i, assessment.Difficulty)
		}
		last := assessment.DifficultyHistory[len(assessment.DifficultyHistory)-1]
		if last != assessment.Difficulty {
			t.Fatalf("answer %d: history last %s != current %s", i, last, assessment.Difficulty)
		}
	}
}
