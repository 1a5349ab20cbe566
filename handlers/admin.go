package handlers

import (
	"net/http"
	"strconv"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/admin"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates the moderation console.
type AdminHandler struct {
	Admin admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

// ListFacilities returns facilities in ?status= (pending by default).
func (h *AdminHandler) ListFacilities(c *gin.Context) {
	page, limit := pageParams(c)
	res, err := h.Admin.ListFacilities(c.Request.Context(), models.FacilityStatus(c.Query("status")), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ApproveFacility(c *gin.Context) {
	f, err := h.Admin.ApproveFacility(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *AdminHandler) RejectFacility(c *gin.Context) {
	var req models.RejectRequest
	// the reason is optional, so an empty body is fine
	_ = c.ShouldBindJSON(&req)
	f, err := h.Admin.RejectFacility(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// ListUsers filters by ?role=, ?q= and ?banned=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	filter := models.UserFilter{Query: c.Query("q"), Page: page, Limit: limit}
	if raw := c.Query("role"); raw != "" {
		role, ok := models.ParseRole(raw)
		if !ok {
			utils.RespondError(c, utils.BadRequest("unknown role"))
			return
		}
		filter.Role = role
	}
	if raw := c.Query("banned"); raw != "" {
		banned, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, utils.BadRequest("banned must be true or false"))
			return
		}
		filter.Banned = &banned
	}
	res, err := h.Admin.ListUsers(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Ban(c *gin.Context)   { h.setBanned(c, true) }
func (h *AdminHandler) Unban(c *gin.Context) { h.setBanned(c, false) }

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	u, err := h.Admin.SetBanned(c.Request.Context(), middleware.UserID(c), c.Param("id"), banned)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) UserBookings(c *gin.Context) {
	list, err := h.Admin.UserBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
