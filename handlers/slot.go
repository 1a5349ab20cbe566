package handlers

import (
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/slot"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler serves the per-court hourly grid and owner blocking.
type SlotHandler struct {
	Slots slot.SlotService
}

func NewSlotHandler(ss slot.SlotService) *SlotHandler {
	return &SlotHandler{Slots: ss}
}

// Grid returns the court's slots for ?date=YYYY-MM-DD.
func (h *SlotHandler) Grid(c *gin.Context) {
	grid, err := h.Slots.Grid(c.Request.Context(), c.Param("courtId"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *SlotHandler) Block(c *gin.Context) {
	var req models.BlockSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	slots, err := h.Slots.Block(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) Unblock(c *gin.Context) {
	var req models.BlockSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	slots, err := h.Slots.Unblock(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
