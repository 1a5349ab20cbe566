package handlers

import (
	"errors"
	"io"
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/offer"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// OfferHandler serves price negotiation.
type OfferHandler struct {
	Offers offer.OfferService
}

func NewOfferHandler(svc offer.OfferService) *OfferHandler {
	return &OfferHandler{Offers: svc}
}

func (h *OfferHandler) Create(c *gin.Context) {
	var req models.OfferRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.Offers.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Act applies accept, reject or counter. Only counter needs a body.
func (h *OfferHandler) Act(c *gin.Context) {
	var req models.OfferActionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, utils.BadRequest("Invalid request: "+err.Error()))
		return
	}
	o, err := h.Offers.Act(c.Request.Context(), middleware.UserID(c), c.Param("id"), models.OfferAction(c.Param("action")), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OfferHandler) ForUser(c *gin.Context) {
	list, err := h.Offers.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OfferHandler) ForFacility(c *gin.Context) {
	list, err := h.Offers.ListForFacility(c.Request.Context(), middleware.UserID(c), c.Param("facilityId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OfferHandler) Stats(c *gin.Context) {
	st, err := h.Offers.Stats(c.Request.Context(), middleware.UserID(c), c.Param("facilityId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
