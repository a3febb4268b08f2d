package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-service/internal/badges"
	"assessment-service/internal/service"
	"assessment-service/internal/store"
)

const recentHistorySize = 5

type StatsHandler struct {
	Stats *service.StatsService
	Store store.Store
}

func NewStatsHandler(stats *service.StatsService, sessionStore store.Store) *StatsHandler {
	return &StatsHandler{Stats: stats, Store: sessionStore}
}

// GetStats returns the actor's lifetime stats with dashboard aggregates.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := statsOrNew(c.Request.Context(), h.Store, actorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"recent_history": h.Stats.RecentHistory(stats, recentHistorySize),
		"domain_bests":   h.Stats.DomainBests(stats),
	})
}

// GetBadges returns every badge with the actor's earned flag. This is a
// projection only; no predicate runs here.
func (h *StatsHandler) GetBadges(c *gin.Context) {
	stats, err := statsOrNew(c.Request.Context(), h.Store, actorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges.AllWithEarned(stats)})
}

// ClearSession wipes the actor's stored assessment and stats.
func (h *StatsHandler) ClearSession(c *gin.Context) {
	if err := h.Store.Clear(c.Request.Context(), actorID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cleared"})
}
