package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-service/internal/badges"
	"assessment-service/internal/bank"
	"assessment-service/internal/event"
	"assessment-service/internal/models"
	"assessment-service/internal/service"
	"assessment-service/internal/store"
	"assessment-service/internal/summary"
)

const defaultQuestionCount = 10

type AssessmentHandler struct {
	Assessments *service.AssessmentService
	Results     *service.ResultService
	Stats       *service.StatsService
	Bank        *bank.QuestionBank
	Store       store.Store
	Summaries   *summary.Generator
	Events      *event.Publisher
}

func NewAssessmentHandler(
	assessments *service.AssessmentService,
	results *service.ResultService,
	stats *service.StatsService,
	questionBank *bank.QuestionBank,
	sessionStore store.Store,
	summaries *summary.Generator,
	events *event.Publisher,
) *AssessmentHandler {
	return &AssessmentHandler{
		Assessments: assessments,
		Results:     results,
		Stats:       stats,
		Bank:        questionBank,
		Store:       sessionStore,
		Summaries:   summaries,
		Events:      events,
	}
}

// questionView is the question as shown to the test-taker: no correct
// index, no explanation.
type questionView struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Context    string            `json:"context"`
	Prompt     string            `json:"prompt"`
	Options    []string          `json:"options"`
	Difficulty models.Difficulty `json:"difficulty"`
	Domain     string            `json:"domain"`
}

func viewOf(q *models.Question) questionView {
	return questionView{
		ID:         q.ID,
		Title:      q.Title,
		Context:    q.Context,
		Prompt:     q.Prompt,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Domain:     q.Domain,
	}
}

// Create starts a new assessment for the actor, replacing any in-progress one.
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req struct {
		Domain         string `json:"domain" binding:"required"`
		TotalQuestions int    `json:"total_questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}
	if req.TotalQuestions <= 0 {
		req.TotalQuestions = defaultQuestionCount
	}

	assessment := h.Assessments.Create(req.Domain, req.TotalQuestions)

	actor := actorID(c)
	if err := h.Store.SaveAssessment(c.Request.Context(), actor, assessment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save assessment", "details": err.Error()})
		return
	}

	h.Events.Publish(event.AssessmentCreated, gin.H{
		"assessment_id": assessment.ID,
		"domain":        assessment.Domain,
		"actor":         actor,
	})

	c.JSON(http.StatusCreated, gin.H{
		"assessment_id":   assessment.ID,
		"domain":          assessment.Domain,
		"difficulty":      assessment.Difficulty,
		"total_questions": assessment.TotalQuestions,
	})
}

// Next returns the current unanswered question, drawing a new one from the
// bank at the assessment's current difficulty when needed.
func (h *AssessmentHandler) Next(c *gin.Context) {
	ctx := c.Request.Context()
	actor := actorID(c)

	assessment, err := h.Store.Assessment(ctx, actor)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active assessment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if assessment.Complete() {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "assessment complete",
			"complete": true,
		})
		return
	}

	// An unanswered question is already pending; re-serve it instead of
	// drawing another.
	if assessment.CurrentQuestion < len(assessment.Questions) {
		c.JSON(http.StatusOK, gin.H{
			"question":         viewOf(&assessment.Questions[assessment.CurrentQuestion]),
			"current_question": assessment.CurrentQuestion,
			"total_questions":  assessment.TotalQuestions,
		})
		return
	}

	question, err := h.Bank.Select(assessment.Domain, assessment.Difficulty)
	if errors.Is(err, bank.ErrNoQuestions) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no questions available for " + assessment.Domain + " at " + string(assessment.Difficulty) + " difficulty",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stamped := h.Assessments.AddQuestion(assessment, question)
	if err := h.Store.SaveAssessment(ctx, actor, assessment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":         viewOf(stamped),
		"current_question": assessment.CurrentQuestion,
		"total_questions":  assessment.TotalQuestions,
	})
}

// Answer records a submission and returns feedback plus progress.
func (h *AssessmentHandler) Answer(c *gin.Context) {
	var req struct {
		QuestionID    string  `json:"question_id" binding:"required"`
		SelectedIndex *int    `json:"selected_index" binding:"required"`
		TimeTaken     float64 `json:"time_taken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answer format", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	actor := actorID(c)

	assessment, err := h.Store.Assessment(ctx, actor)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active assessment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.Assessments.SubmitAnswer(assessment, req.QuestionID, *req.SelectedIndex, req.TimeTaken)
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrAlreadyAnswered), errors.Is(err, service.ErrAssessmentComplete):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SaveAssessment(ctx, actor, assessment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.Events.Publish(event.AnswerSubmitted, gin.H{
		"assessment_id": assessment.ID,
		"question_id":   req.QuestionID,
		"is_correct":    feedback.IsCorrect,
		"difficulty":    assessment.Difficulty,
	})

	c.JSON(http.StatusOK, gin.H{
		"feedback":         feedback,
		"current_question": assessment.CurrentQuestion,
		"total_questions":  assessment.TotalQuestions,
		"difficulty":       assessment.Difficulty,
		"complete":         assessment.Complete(),
	})
}

// Score reports the live mid-session score over answered questions.
func (h *AssessmentHandler) Score(c *gin.Context) {
	assessment, err := h.Store.Assessment(c.Request.Context(), actorID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active assessment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":    h.Results.LiveScore(assessment),
		"answered": len(assessment.Answers),
		"correct":  assessment.CorrectCount(),
	})
}

// FinalResults computes the final results, generates the prose summary,
// folds the outcome into lifetime stats, and awards badges.
func (h *AssessmentHandler) FinalResults(c *gin.Context) {
	ctx := c.Request.Context()
	actor := actorID(c)

	assessment, err := h.Store.Assessment(ctx, actor)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active assessment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results, err := h.Results.CalculateResults(assessment)
	if errors.Is(err, service.ErrNoQuestionsInAssessment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results.PerformanceLevel = h.Results.PerformanceLevel(results.Score)
	results.RecommendedDifficulty = h.Results.RecommendedDifficulty(results.Score, assessment.Difficulty)

	aiSummary := h.Summaries.Summary(ctx, results)
	aiRecommendations := h.Summaries.Recommendations(ctx, results)

	stats, err := statsOrNew(ctx, h.Store, actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	newlyEarned := h.Stats.Record(stats, results)
	if err := h.Store.SaveStats(ctx, actor, stats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.Events.Publish(event.AssessmentDone, gin.H{
		"assessment_id": assessment.ID,
		"domain":        results.Domain,
		"score":         results.Score,
		"level":         results.PerformanceLevel,
	})
	if len(newlyEarned) > 0 {
		h.Events.Publish(event.BadgesAwarded, gin.H{
			"assessment_id": assessment.ID,
			"badges":        newlyEarned,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"results":            results,
		"ai_summary":         aiSummary,
		"ai_recommendations": aiRecommendations,
		"new_badges":         newBadgeDetails(newlyEarned),
	})
}

// newBadgeDetails maps newly earned ids to their display definitions.
func newBadgeDetails(ids []string) []badges.Status {
	details := make([]badges.Status, 0, len(ids))
	for _, def := range badges.Definitions() {
		for _, id := range ids {
			if def.ID == id {
				details = append(details, badges.Status{
					ID:          def.ID,
					Name:        def.Name,
					Description: def.Description,
					Icon:        def.Icon,
					Earned:      true,
				})
			}
		}
	}
	return details
}
