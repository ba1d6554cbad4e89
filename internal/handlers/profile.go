package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/middleware"
	"match-service/internal/models"
	"match-service/internal/repositories"
)

// ProfileHandler manages the caller's match preferences.
type ProfileHandler struct {
	profiles repositories.ProfileRepository
}

// NewProfileHandler builds a ProfileHandler.
func NewProfileHandler(profiles repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile returns the caller's match profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// PutProfile creates or replaces the caller's match profile.
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req struct {
		PreferredMode    string `json:"preferred_mode" binding:"required"`
		Scope            string `json:"scope" binding:"required"`
		AgeRangeMin      int    `json:"age_range_min" binding:"required"`
		AgeRangeMax      int    `json:"age_range_max" binding:"required"`
		HeightRangeMinCm *int   `json:"height_range_min_cm"`
		HeightRangeMaxCm *int   `json:"height_range_max_cm"`
		IsActive         *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidMode(req.PreferredMode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferred mode"})
		return
	}
	if !models.ValidScope(req.Scope) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope"})
		return
	}
	if req.AgeRangeMin > req.AgeRangeMax {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid age range"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	profile, err := h.profiles.UpsertProfile(c.Request.Context(), models.MatchProfile{
		UserID:           middleware.UserID(c),
		PreferredMode:    req.PreferredMode,
		Scope:            req.Scope,
		AgeRangeMin:      req.AgeRangeMin,
		AgeRangeMax:      req.AgeRangeMax,
		HeightRangeMinCm: req.HeightRangeMinCm,
		HeightRangeMaxCm: req.HeightRangeMaxCm,
		IsActive:         active,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
