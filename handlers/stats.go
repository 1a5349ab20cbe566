package handlers

import (
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/stats"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the dashboards.
type StatsHandler struct {
	Stats stats.StatsService
}

func NewStatsHandler(svc stats.StatsService) *StatsHandler {
	return &StatsHandler{Stats: svc}
}

func (h *StatsHandler) User(c *gin.Context) {
	st, err := h.Stats.ForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StatsHandler) Owner(c *gin.Context) {
	h.owner(c, middleware.UserID(c))
}

// FacilityOwner reports on :ownerId; owners may only ask about themselves.
func (h *StatsHandler) FacilityOwner(c *gin.Context) {
	target := c.Param("ownerId")
	if target != middleware.UserID(c) && middleware.Role(c) != models.RoleAdmin {
		utils.RespondError(c, utils.Forbidden("forbidden"))
		return
	}
	h.owner(c, target)
}

func (h *StatsHandler) owner(c *gin.Context, ownerID string) {
	st, err := h.Stats.ForOwner(c.Request.Context(), ownerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StatsHandler) Admin(c *gin.Context) {
	st, err := h.Stats.ForAdmin(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
