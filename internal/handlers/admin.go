package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/models"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// AdminHandler exposes moderation primitives behind the admin token.
type AdminHandler struct {
	users   repositories.UserRepository
	matches *service.MatchService
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(users repositories.UserRepository, matches *service.MatchService) *AdminHandler {
	return &AdminHandler{users: users, matches: matches}
}

// BanUser bans a user with a reason.
func (h *AdminHandler) BanUser(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.SetBanned(c.Request.Context(), c.Param("user_id"), true, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": true})
}

// UnbanUser lifts a ban.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	if err := h.users.SetBanned(c.Request.Context(), c.Param("user_id"), false, ""); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": false})
}

// LockRoom locks a room.
func (h *AdminHandler) LockRoom(c *gin.Context) {
	if err := h.matches.LockRoom(c.Request.Context(), c.Param("room_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": true})
}

// UnlockRoom unlocks a room.
func (h *AdminHandler) UnlockRoom(c *gin.Context) {
	if err := h.matches.UnlockRoom(c.Request.Context(), c.Param("room_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": false})
}

// ExtendRoom pushes a room's expiry forward.
func (h *AdminHandler) ExtendRoom(c *gin.Context) {
	var req struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be positive"})
		return
	}
	if err := h.matches.ExtendRoom(c.Request.Context(), c.Param("room_id"), req.Days); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extended": true})
}

// DeleteRoom soft-deletes a room.
func (h *AdminHandler) DeleteRoom(c *gin.Context) {
	if err := h.matches.DeleteRoom(c.Request.Context(), c.Param("room_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ApproveDomain upserts an approved institution domain.
func (h *AdminHandler) ApproveDomain(c *gin.Context) {
	var req struct {
		Domain          string `json:"domain" binding:"required"`
		InstitutionName string `json:"institution_name" binding:"required"`
		Country         string `json:"country"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	domain := models.InstitutionDomain{
		Domain:          req.Domain,
		InstitutionName: req.InstitutionName,
		Country:         req.Country,
	}
	if err := h.users.ApproveDomain(c.Request.Context(), domain); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": true})
}
