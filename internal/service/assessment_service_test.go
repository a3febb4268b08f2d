package service

import (
	"errors"
	"testing"

	"assessment-service/internal/models"
)

func sampleQuestion(correct int) *models.Question {
	return &models.Question{
		Title:          "What is a firewall?",
		Prompt:         "Pick the best definition",
		Options:        []string{"a", "b", "c", "d"},
		CorrectIndex:   correct,
		Explanation:    "because",
		LearningPoints: []string{"point"},
		Sources:        []string{"source"},
		Difficulty:     models.DifficultyIntermediate,
		Domain:         "network-security",
	}
}

func TestCreateStartsAtIntermediate(t *testing.T) {
	svc := NewAssessmentService(nil)

	assessment := svc.Create("network-security", 10)

	if assessment.ID == "" {
		t.Error("expected a generated assessment id")
	}
	if assessment.Difficulty != models.DifficultyIntermediate {
		t.Errorf("expected intermediate start, got %s", assessment.Difficulty)
	}
	if assessment.Streak != 0 {
		t.Errorf("expected zero streak, got %.1f", assessment.Streak)
	}
	if len(assessment.DifficultyHistory) != 1 || assessment.DifficultyHistory[0] != models.DifficultyIntermediate {
		t.Errorf("expected history [intermediate], got %v", assessment.DifficultyHistory)
	}
	if assessment.Status != models.StatusInProgress {
		t.Errorf("expected in_progress status, got %s", assessment.Status)
	}
}

func TestAddQuestionStampsIDWithoutAdvancingCursor(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 10)

	stamped := svc.AddQuestion(assessment, sampleQuestion(0))

	if stamped.ID == "" {
		t.Error("expected a session-scoped question id")
	}
	if stamped.Timestamp.IsZero() {
		t.Error("expected a stamped timestamp")
	}
	if len(assessment.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(assessment.Questions))
	}
	if assessment.CurrentQuestion != 0 {
		t.Errorf("cursor must not advance on AddQuestion, got %d", assessment.CurrentQuestion)
	}

	second := svc.AddQuestion(assessment, sampleQuestion(0))
	if second.ID == stamped.ID {
		t.Error("expected distinct ids per insertion")
	}
}

func TestSubmitAnswer(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 10)
	stamped := svc.AddQuestion(assessment, sampleQuestion(2))

	feedback, err := svc.SubmitAnswer(assessment, stamped.ID, 2, 12)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if !feedback.IsCorrect {
		t.Error("expected correct answer")
	}
	if feedback.CorrectIndex != 2 {
		t.Errorf("expected correct index 2, got %d", feedback.CorrectIndex)
	}
	if feedback.Explanation != "because" {
		t.Errorf("unexpected explanation %q", feedback.Explanation)
	}
	if assessment.CurrentQuestion != 1 {
		t.Errorf("expected cursor 1, got %d", assessment.CurrentQuestion)
	}
	if len(assessment.Answers) != assessment.CurrentQuestion {
		t.Errorf("cursor %d != answers %d", assessment.CurrentQuestion, len(assessment.Answers))
	}

	ans := assessment.Answers[0]
	if ans.Difficulty != models.DifficultyIntermediate {
		t.Errorf("expected answer stamped with difficulty at submission, got %s", ans.Difficulty)
	}
	if ans.TimeTaken != 12 {
		t.Errorf("expected time 12, got %.1f", ans.TimeTaken)
	}
}

func TestSubmitAnswerWrongSelection(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 10)
	stamped := svc.AddQuestion(assessment, sampleQuestion(2))

	feedback, err := svc.SubmitAnswer(assessment, stamped.ID, 0, 50)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if feedback.IsCorrect {
		t.Error("expected incorrect answer")
	}
	if assessment.Streak != -1 {
		t.Errorf("expected streak -1, got %.1f", assessment.Streak)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 10)
	svc.AddQuestion(assessment, sampleQuestion(0))

	_, err := svc.SubmitAnswer(assessment, "forged-id", 0, 5)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
	if len(assessment.Answers) != 0 || assessment.CurrentQuestion != 0 {
		t.Error("failed submission must not mutate the assessment")
	}
}

func TestSubmitAnswerReplayRejected(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 10)
	stamped := svc.AddQuestion(assessment, sampleQuestion(1))

	if _, err := svc.SubmitAnswer(assessment, stamped.ID, 1, 5); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	_, err := svc.SubmitAnswer(assessment, stamped.ID, 1, 5)
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected ErrAlreadyAnswered, got %v", err)
	}
	if assessment.CurrentQuestion != 1 {
		t.Errorf("replay must not advance cursor, got %d", assessment.CurrentQuestion)
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 2)

	for i := 0; i < 2; i++ {
		stamped := svc.AddQuestion(assessment, sampleQuestion(0))
		if _, err := svc.SubmitAnswer(assessment, stamped.ID, 0, 5); err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
	}

	if assessment.Status != models.StatusComplete {
		t.Errorf("expected complete status, got %s", assessment.Status)
	}
	if assessment.EndTime.IsZero() {
		t.Error("expected end time to be set")
	}

	stamped := svc.AddQuestion(assessment, sampleQuestion(0))
	_, err := svc.SubmitAnswer(assessment, stamped.ID, 0, 5)
	if !errors.Is(err, ErrAssessmentComplete) {
		t.Errorf("expected ErrAssessmentComplete, got %v", err)
	}
}

func TestFullRunAdjustsDifficulty(t *testing.T) {
	svc := NewAssessmentService(nil)
	assessment := svc.Create("network-security", 4)

	// Two quick correct answers: 1.5 then 3.0, promoting intermediate
	// to advanced after the second.
	for i := 0; i < 2; i++ {
		stamped := svc.AddQuestion(assessment, sampleQuestion(0))
		if _, err := svc.SubmitAnswer(assessment, stamped.ID, 0, 10); err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
	}

	if assessment.Difficulty != models.DifficultyAdvanced {
		t.Errorf("expected advanced after two quick correct answers, got %s", assessment.Difficulty)
	}
	last := assessment.DifficultyHistory[len(assessment.DifficultyHistory)-1]
	if last != assessment.Difficulty {
		t.Errorf("history last %s != current %s", last, assessment.Difficulty)
	}

	// Two incorrect answers demote back to intermediate.
	for i := 0; i < 2; i++ {
		stamped := svc.AddQuestion(assessment, sampleQuestion(0))
		if _, err := svc.SubmitAnswer(assessment, stamped.ID, 1, 10); err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
	}

	if assessment.Difficulty != models.DifficultyIntermediate {
		t.Errorf("expected demotion to intermediate, got %s", assessment.Difficulty)
	}
}
