package service

import (
	"testing"

	"assessment-service/internal/models"
)

func sampleResults(domain string, score float64, date string) *models.Results {
	return &models.Results{
		AssessmentID:   "a1",
		Domain:         domain,
		Difficulty:     models.DifficultyIntermediate,
		TotalQuestions: 10,
		Answered:       10,
		Correct:        int(score / 10),
		Score:          score,
		AvgTime:        25,
		CompletionDate: date,
	}
}

func TestRecordAccumulatesTotals(t *testing.T) {
	svc := NewStatsService()
	stats := models.NewUserStats()

	svc.Record(stats, sampleResults("network-security", 80, "2026-01-01T10:00:00Z"))
	svc.Record(stats, sampleResults("network-security", 61, "2026-01-02T10:00:00Z"))

	if stats.TotalAssessments != 2 {
		t.Errorf("expected 2 assessments, got %d", stats.TotalAssessments)
	}
	if stats.TotalScore != 141 {
		t.Errorf("expected total score 141, got %.2f", stats.TotalScore)
	}
	if stats.AvgScore != 70.5 {
		t.Errorf("expected avg 70.5, got %.2f", stats.AvgScore)
	}
	if len(stats.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(stats.History))
	}
	if stats.History[1].Domain != "network-security" || stats.History[1].Score != 61 {
		t.Errorf("unexpected history entry: %+v", stats.History[1])
	}
}

func TestRecordAwardsBadgesOnce(t *testing.T) {
	svc := NewStatsService()
	stats := models.NewUserStats()

	earned := svc.Record(stats, sampleResults("network-security", 95, "2026-01-01T10:00:00Z"))

	wantFirst := map[string]bool{"first_assessment": true, "expert": true, "net_secure_pro": true}
	for _, id := range earned {
		if !wantFirst[id] {
			t.Errorf("unexpected badge %q on first run", id)
		}
		delete(wantFirst, id)
	}
	for id := range wantFirst {
		t.Errorf("expected badge %q on first run", id)
	}

	// A second expert-grade run must not re-award what is already held.
	earned = svc.Record(stats, sampleResults("network-security", 95, "2026-01-02T10:00:00Z"))
	for _, id := range earned {
		if id == "first_assessment" || id == "expert" || id == "net_secure_pro" {
			t.Errorf("badge %q awarded twice", id)
		}
	}

	seen := make(map[string]int)
	for _, id := range stats.Badges {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("badge %q held %d times", id, n)
		}
	}
}

func TestRecentHistoryNewestFirst(t *testing.T) {
	svc := NewStatsService()
	stats := models.NewUserStats()
	stats.History = []models.HistoryEntry{
		{Date: "2026-01-01T10:00:00Z", Score: 40},
		{Date: "2026-01-03T10:00:00Z", Score: 80},
		{Date: "2026-01-02T10:00:00Z", Score: 60},
	}

	recent := svc.RecentHistory(stats, 2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Score != 80 || recent[1].Score != 60 {
		t.Errorf("expected newest-first [80 60], got [%v %v]", recent[0].Score, recent[1].Score)
	}

	// Source order must survive the sort copy.
	if stats.History[0].Score != 40 {
		t.Error("RecentHistory must not reorder the underlying history")
	}
}

func TestDomainBests(t *testing.T) {
	svc := NewStatsService()
	stats := models.NewUserStats()
	stats.History = []models.HistoryEntry{
		{Date: "2026-01-01T10:00:00Z", Domain: "network-security", Score: 70},
		{Date: "2026-01-02T10:00:00Z", Domain: "network-security", Score: 90},
		{Date: "2026-01-03T10:00:00Z", Domain: "secure-coding", Score: 0},
	}

	bests := svc.DomainBests(stats)
	if bests["network-security"] != 90 {
		t.Errorf("expected network-security best 90, got %.1f", bests["network-security"])
	}
	if best, ok := bests["secure-coding"]; !ok || best != 0 {
		t.Errorf("expected secure-coding present with best 0, got %v (present %v)", best, ok)
	}
}
