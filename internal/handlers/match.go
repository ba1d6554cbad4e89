package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/matching"
	"match-service/internal/middleware"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// MatchHandler exposes candidate discovery and match lifecycle endpoints.
type MatchHandler struct {
	finder   *matching.Finder
	matches  *service.MatchService
	userRepo repositories.UserRepository
}

// NewMatchHandler builds a MatchHandler.
func NewMatchHandler(finder *matching.Finder, matches *service.MatchService, userRepo repositories.UserRepository) *MatchHandler {
	return &MatchHandler{finder: finder, matches: matches, userRepo: userRepo}
}

// GetCandidates returns ranked match candidates for the authenticated user.
func (h *MatchHandler) GetCandidates(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.userRepo.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := intQuery(c, "limit", matching.DefaultLimit)
	candidates, err := h.finder.FindCandidates(c.Request.Context(), user, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// CreateMatch creates a match with the target user. Idempotent: an existing
// match for the pair is returned with 200 instead of 201.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req struct {
		TargetUserID string `json:"target_user_id" binding:"required"`
		Mode         string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	match, created, err := h.matches.CreateMatch(c.Request.Context(), userID, req.TargetUserID, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"match": match})
}

// DeleteMatch removes a match the caller participates in.
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.matches.DeleteMatch(c.Request.Context(), c.Param("match_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
