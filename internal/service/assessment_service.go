// Package service contains the assessment state machine, scoring, and
// lifetime-stats accumulation.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assessment-service/internal/adaptive"
	"assessment-service/internal/models"
)

var (
	// ErrQuestionNotFound means the submitted question id is not part of
	// the session; this can only happen from a stale or forged reference.
	ErrQuestionNotFound = errors.New("question not found in assessment")
	// ErrAlreadyAnswered rejects a replayed submission for a question
	// that already has a recorded answer.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrAssessmentComplete rejects mutation after the target question
	// count has been reached.
	ErrAssessmentComplete = errors.New("assessment already complete")
)

// AssessmentService owns the in-progress session lifecycle: creation,
// question insertion, and answer submission with adaptive adjustment.
type AssessmentService struct {
	adjuster *adaptive.Adjuster
}

func NewAssessmentService(adjuster *adaptive.Adjuster) *AssessmentService {
	if adjuster == nil {
		adjuster = adaptive.NewAdjuster(nil)
	}
	return &AssessmentService{adjuster: adjuster}
}

// Create starts a new adaptive assessment. Difficulty always starts at
// intermediate regardless of past performance; history gets a fresh read.
func (s *AssessmentService) Create(domain string, totalQuestions int) *models.Assessment {
	return &models.Assessment{
		ID:                uuid.NewString(),
		Domain:            domain,
		Difficulty:        models.DifficultyIntermediate,
		Questions:         []models.Question{},
		Answers:           []models.Answer{},
		TotalQuestions:    totalQuestions,
		DifficultyHistory: []models.Difficulty{models.DifficultyIntermediate},
		Status:            models.StatusInProgress,
		StartTime:         time.Now(),
	}
}

// AddQuestion appends a question to the assessment, stamping it with a
// session-scoped id and timestamp. It does not advance the cursor; that
// only happens on answer submission.
func (s *AssessmentService) AddQuestion(assessment *models.Assessment, question *models.Question) *models.Question {
	stamped := question.Clone()
	stamped.ID = uuid.NewString()
	stamped.Timestamp = time.Now()
	assessment.Questions = append(assessment.Questions, *stamped)
	return stamped
}

// SubmitAnswer records an answer, advances the cursor, and runs the
// adaptive difficulty adjustment. It is a non-idempotent mutation: each
// question can be answered at most once.
func (s *AssessmentService) SubmitAnswer(assessment *models.Assessment, questionID string, selectedIndex int, timeTaken float64) (*models.AnswerFeedback, error) {
	if assessment.Status == models.StatusComplete || assessment.Complete() {
		return nil, ErrAssessmentComplete
	}

	var question *models.Question
	for i := range assessment.Questions {
		if assessment.Questions[i].ID == questionID {
			question = &assessment.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}

	for _, ans := range assessment.Answers {
		if ans.QuestionID == questionID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyAnswered, questionID)
		}
	}

	isCorrect := selectedIndex == question.CorrectIndex

	assessment.Answers = append(assessment.Answers, models.Answer{
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
		IsCorrect:     isCorrect,
		TimeTaken:     timeTaken,
		Difficulty:    assessment.Difficulty,
		Timestamp:     time.Now(),
	})
	assessment.CurrentQuestion++

	s.adjuster.ProcessAnswer(assessment, isCorrect, timeTaken)

	if assessment.Complete() {
		assessment.Status = models.StatusComplete
		assessment.EndTime = time.Now()
	}

	return &models.AnswerFeedback{
		IsCorrect:      isCorrect,
		CorrectIndex:   question.CorrectIndex,
		Explanation:    question.Explanation,
		LearningPoints: question.LearningPoints,
		Sources:        question.Sources,
	}, nil
}
