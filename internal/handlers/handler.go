// Package handlers is the HTTP glue around the assessment core. Handlers
// own session persistence: they load the actor's state from the store, call
// into the core synchronously, and save the state back. The core itself
// never sees the transport.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

const actorHeader = "X-User-ID"

func actorID(c *gin.Context) string {
	return c.GetHeader(actorHeader)
}

// RequireActor rejects requests without an actor token. Authentication
// itself happens upstream; this layer only needs the identity.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-User-ID header is required",
			})
			return
		}
		c.Next()
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "adaptive-assessment",
	})
}

// statsOrNew loads the actor's lifetime stats, starting a fresh record for
// first-time actors.
func statsOrNew(ctx context.Context, s store.Store, actor string) (*models.UserStats, error) {
	stats, err := s.Stats(ctx, actor)
	if errors.Is(err, store.ErrNotFound) {
		return models.NewUserStats(), nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}
