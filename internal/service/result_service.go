package service

import (
	"errors"
	"math"
	"time"

	"assessment-service/internal/models"
)

// ErrNoQuestionsInAssessment means results were requested for an assessment
// that never received a question; a configuration error upstream.
var ErrNoQuestionsInAssessment = errors.New("no questions in assessment")

// ResultService derives aggregate results from a completed assessment.
type ResultService struct{}

func NewResultService() *ResultService {
	return &ResultService{}
}

// CalculateResults computes the final score and statistics. The final score
// divides by the total presented questions; the live mid-session score
// (LiveScore) divides by the answered count. The two denominators are
// deliberately distinct.
func (s *ResultService) CalculateResults(assessment *models.Assessment) (*models.Results, error) {
	totalQuestions := len(assessment.Questions)
	if totalQuestions == 0 {
		return nil, ErrNoQuestionsInAssessment
	}
	answered := len(assessment.Answers)
	correct := assessment.CorrectCount()

	var totalTime, fastest, slowest float64
	for i, ans := range assessment.Answers {
		totalTime += ans.TimeTaken
		if i == 0 || ans.TimeTaken < fastest {
			fastest = ans.TimeTaken
		}
		if ans.TimeTaken > slowest {
			slowest = ans.TimeTaken
		}
	}
	avgTime := 0.0
	if answered > 0 {
		avgTime = round2(totalTime / float64(answered))
	}

	return &models.Results{
		AssessmentID:          assessment.ID,
		Domain:                assessment.Domain,
		Difficulty:            assessment.Difficulty,
		TotalQuestions:        totalQuestions,
		Answered:              answered,
		Correct:               correct,
		Incorrect:             answered - correct,
		Score:                 round2(float64(correct) / float64(totalQuestions) * 100),
		TotalTime:             round2(totalTime),
		AvgTime:               avgTime,
		FastestTime:           round2(fastest),
		SlowestTime:           round2(slowest),
		DifficultyPerformance: difficultyBreakdown(assessment),
		DifficultyHistory:     append([]models.Difficulty(nil), assessment.DifficultyHistory...),
		Streak:                assessment.Streak,
		CompletionDate:        time.Now().Format(time.RFC3339),
	}, nil
}

// LiveScore is the mid-session score over answered questions only, shown
// while an assessment is still running. Zero answers yield zero.
func (s *ResultService) LiveScore(assessment *models.Assessment) float64 {
	answered := len(assessment.Answers)
	if answered == 0 {
		return 0
	}
	return round1(float64(assessment.CorrectCount()) / float64(answered) * 100)
}

// PerformanceLevel maps a score to its band, evaluated top-down.
func (s *ResultService) PerformanceLevel(score float64) string {
	switch {
	case score >= 90:
		return "Expert"
	case score >= 75:
		return "Advanced"
	case score >= 60:
		return "Intermediate"
	case score >= 40:
		return "Beginner"
	default:
		return "Novice"
	}
}

// RecommendedDifficulty advises a starting level for the NEXT assessment.
// It runs after, and independently of, the in-session adaptive adjustments.
func (s *ResultService) RecommendedDifficulty(score float64, current models.Difficulty) models.Difficulty {
	switch {
	case score >= 85 && current == models.DifficultyBeginner:
		return models.DifficultyIntermediate
	case score >= 85 && current == models.DifficultyIntermediate:
		return models.DifficultyAdvanced
	case score < 50 && current == models.DifficultyAdvanced:
		return models.DifficultyIntermediate
	case score < 50 && current == models.DifficultyIntermediate:
		return models.DifficultyBeginner
	default:
		return current
	}
}

// difficultyBreakdown zips questions with answers positionally. Questions
// and answers are parallel slices that are never reordered.
func difficultyBreakdown(assessment *models.Assessment) map[models.Difficulty]models.DifficultyBreakdown {
	breakdown := map[models.Difficulty]models.DifficultyBreakdown{
		models.DifficultyBeginner:     {},
		models.DifficultyIntermediate: {},
		models.DifficultyAdvanced:     {},
	}

	for i := range assessment.Questions {
		if i >= len(assessment.Answers) {
			continue
		}
		difficulty := assessment.Questions[i].Difficulty
		if !difficulty.Valid() {
			difficulty = models.DifficultyIntermediate
		}
		entry := breakdown[difficulty]
		entry.Total++
		if assessment.Answers[i].IsCorrect {
			entry.Correct++
		}
		breakdown[difficulty] = entry
	}

	for difficulty, entry := range breakdown {
		if entry.Total > 0 {
			entry.Percentage = round1(float64(entry.Correct) / float64(entry.Total) * 100)
			breakdown[difficulty] = entry
		}
	}

	return breakdown
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
