package service

import (
	"sort"

	"assessment-service/internal/badges"
	"assessment-service/internal/models"
)

// StatsService accumulates an actor's lifetime statistics and awards badges
// when an assessment completes.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// Record folds a completed assessment's results into the lifetime stats,
// appends the history entry, and awards any newly earned badges. It returns
// the ids of badges earned by this assessment.
func (s *StatsService) Record(stats *models.UserStats, results *models.Results) []string {
	stats.TotalAssessments++
	stats.TotalScore += results.Score
	stats.AvgScore = round2(stats.TotalScore / float64(stats.TotalAssessments))

	stats.History = append(stats.History, models.HistoryEntry{
		Date:             results.CompletionDate,
		Domain:           results.Domain,
		Difficulty:       results.Difficulty,
		Score:            results.Score,
		PerformanceLevel: results.PerformanceLevel,
	})

	newlyEarned := badges.Evaluate(stats, results)
	for _, id := range newlyEarned {
		if !stats.HasBadge(id) {
			stats.Badges = append(stats.Badges, id)
		}
	}
	return newlyEarned
}

// RecentHistory returns up to n history entries, newest first by date.
func (s *StatsService) RecentHistory(stats *models.UserStats, n int) []models.HistoryEntry {
	recent := append([]models.HistoryEntry(nil), stats.History...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// DomainBests returns the best-ever score per domain.
func (s *StatsService) DomainBests(stats *models.UserStats) map[string]float64 {
	best := make(map[string]float64)
	for _, h := range stats.History {
		if h.Domain == "" {
			continue
		}
		if current, seen := best[h.Domain]; !seen || h.Score > current {
			best[h.Domain] = h.Score
		}
	}
	return best
}
