// Package badges defines the fixed achievement rules and evaluates them
// against lifetime stats and the latest assessment results.
package badges

import (
	"sort"

	"assessment-service/internal/models"
)

// CheckFunc is a pure predicate over the actor's lifetime stats and the
// just-completed results. Predicates never mutate their inputs.
type CheckFunc func(stats *models.UserStats, results *models.Results) bool

// Definition is a static badge. Earned-state is derived from the actor's
// stats, never stored here.
type Definition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Check       CheckFunc `json:"-"`
}

// Status is the display projection of a badge for one actor.
type Status struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// requiredDomains are the three domains the all-rounder and master badges
// range over.
var requiredDomains = []string{"network-security", "secure-coding", "incident-response"}

var definitions = []Definition{
	{
		ID:          "first_assessment",
		Name:        "First Steps",
		Description: "Complete your first assessment",
		Icon:        "🎯",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return stats.TotalAssessments >= 1
		},
	},
	{
		ID:          "expert",
		Name:        "Expert Level",
		Description: "Score 90% or higher on an assessment",
		Icon:        "⭐",
		Check: func(_ *models.UserStats, results *models.Results) bool {
			return latestScore(results) >= 90
		},
	},
	{
		ID:          "perfect",
		Name:        "Perfect Score",
		Description: "Score 100% on an assessment",
		Icon:        "🏆",
		Check: func(_ *models.UserStats, results *models.Results) bool {
			return latestScore(results) >= 100
		},
	},
	{
		ID:          "consistent",
		Name:        "Consistent Learner",
		Description: "Complete 5 assessments",
		Icon:        "📚",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return stats.TotalAssessments >= 5
		},
	},
	{
		ID:          "ironman",
		Name:        "Iron Learner",
		Description: "Complete 10 assessments",
		Icon:        "💪",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return stats.TotalAssessments >= 10
		},
	},
	{
		ID:          "marathon",
		Name:        "Marathon Mind",
		Description: "Complete 25 assessments",
		Icon:        "🏃",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return stats.TotalAssessments >= 25
		},
	},
	{
		ID:          "speedster",
		Name:        "Speedster",
		Description: "Average ≤ 20s per question in an assessment",
		Icon:        "⚡",
		Check: func(_ *models.UserStats, results *models.Results) bool {
			// Missing results must not award the badge, so the
			// default is out of range rather than zero.
			if results == nil {
				return false
			}
			return results.AvgTime <= 20
		},
	},
	{
		ID:          "all_rounder",
		Name:        "All-Rounder",
		Description: "Complete assessments in all three domains",
		Icon:        "🧭",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return hasCompletedAllDomains(stats.History, 0)
		},
	},
	{
		ID:          "master",
		Name:        "Master of All",
		Description: "Score 80%+ in all three domains",
		Icon:        "👑",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			return hasCompletedAllDomains(stats.History, 80)
		},
	},
	{
		ID:          "net_secure_pro",
		Name:        "Network Guardian",
		Description: "Score 80%+ in Network Security",
		Icon:        "🛡️",
		Check:       domainProficiency("network-security", 80),
	},
	{
		ID:          "secure_code_pro",
		Name:        "Code Defender",
		Description: "Score 80%+ in Secure Coding",
		Icon:        "💻",
		Check:       domainProficiency("secure-coding", 80),
	},
	{
		ID:          "ir_pro",
		Name:        "Incident Responder",
		Description: "Score 80%+ in Incident Response",
		Icon:        "🚨",
		Check:       domainProficiency("incident-response", 80),
	},
	{
		ID:          "comeback",
		Name:        "Comeback Kid",
		Description: "Improve your score by 20+ points over last time",
		Icon:        "🔁",
		Check: func(stats *models.UserStats, _ *models.Results) bool {
			prev, curr, ok := lastTwoScores(stats.History)
			return ok && curr-prev >= 20
		},
	},
}

// Definitions returns the fixed badge list in display order.
func Definitions() []Definition {
	return definitions
}

// Evaluate returns the ids of badges newly satisfied by the current stats
// and latest results, skipping ids the actor already holds. A predicate
// that panics counts as false; one bad rule never aborts the rest.
func Evaluate(stats *models.UserStats, results *models.Results) []string {
	if stats == nil {
		stats = models.NewUserStats()
	}

	var earned []string
	for _, def := range definitions {
		if stats.HasBadge(def.ID) {
			continue
		}
		if safeCheck(def.Check, stats, results) {
			earned = append(earned, def.ID)
		}
	}
	return earned
}

// AllWithEarned projects every badge with its earned flag for display. No
// predicate is evaluated.
func AllWithEarned(stats *models.UserStats) []Status {
	statuses := make([]Status, len(definitions))
	for i, def := range definitions {
		statuses[i] = Status{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Earned:      stats != nil && stats.HasBadge(def.ID),
		}
	}
	return statuses
}

func safeCheck(check CheckFunc, stats *models.UserStats, results *models.Results) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return check(stats, results)
}

func latestScore(results *models.Results) float64 {
	if results == nil {
		return 0
	}
	return results.Score
}

func bestScoresByDomain(history []models.HistoryEntry) map[string]float64 {
	best := make(map[string]float64)
	for _, h := range history {
		if h.Domain == "" {
			continue
		}
		if current, seen := best[h.Domain]; !seen || h.Score > current {
			best[h.Domain] = h.Score
		}
	}
	return best
}

func hasCompletedAllDomains(history []models.HistoryEntry, minScore float64) bool {
	best := bestScoresByDomain(history)
	for _, domain := range requiredDomains {
		score, ok := best[domain]
		if !ok || score < minScore {
			return false
		}
	}
	return true
}

func domainProficiency(domain string, threshold float64) CheckFunc {
	return func(stats *models.UserStats, _ *models.Results) bool {
		return bestScoresByDomain(stats.History)[domain] >= threshold
	}
}

// lastTwoScores returns the scores of the two chronologically latest
// history entries, ordered by their date strings.
func lastTwoScores(history []models.HistoryEntry) (prev, curr float64, ok bool) {
	if len(history) < 2 {
		return 0, 0, false
	}
	sorted := append([]models.HistoryEntry(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted[len(sorted)-2].Score, sorted[len(sorted)-1].Score, true
}
