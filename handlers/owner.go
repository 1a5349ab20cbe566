package handlers

import (
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/owner"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// OwnerHandler serves /api/owner: business profile and coupons.
type OwnerHandler struct {
	Owners owner.OwnerService
}

func NewOwnerHandler(svc owner.OwnerService) *OwnerHandler {
	return &OwnerHandler{Owners: svc}
}

func (h *OwnerHandler) GetProfile(c *gin.Context) {
	p, err := h.Owners.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *OwnerHandler) UpdateProfile(c *gin.Context) {
	var req models.OwnerProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Owners.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *OwnerHandler) CreateCoupon(c *gin.Context) {
	var req models.CouponRequest
	if !bindJSON(c, &req) {
		return
	}
	cp, err := h.Owners.CreateCoupon(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}

func (h *OwnerHandler) ListCoupons(c *gin.Context) {
	list, err := h.Owners.ListCoupons(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OwnerHandler) DeactivateCoupon(c *gin.Context) {
	if err := h.Owners.DeactivateCoupon(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
}
