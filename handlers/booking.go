package handlers

import (
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/booking"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves /api/bookings.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bs}
}

// CreateDirect books with a simulated payment.
func (h *BookingHandler) CreateDirect(c *gin.Context) {
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.CreateDirect(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("booking confirmed", zap.String("bookingID", b.ID), zap.String("courtID", b.CourtID))
	c.JSON(http.StatusCreated, b)
}

// CreatePending opens a card payment and returns its client secret.
func (h *BookingHandler) CreatePending(c *gin.Context) {
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Bookings.CreatePending(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.VerifyPayment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Mine(c *gin.Context) {
	list, err := h.Bookings.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Complete lets the facility owner close a played booking early.
func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.Bookings.CompleteAsOwner(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AvailableTimes lists ?courtId= hours on ?date= with their availability.
func (h *BookingHandler) AvailableTimes(c *gin.Context) {
	courtID, date := c.Query("courtId"), c.Query("date")
	if courtID == "" || date == "" {
		utils.RespondError(c, utils.BadRequest("courtId and date are required"))
		return
	}
	times, err := h.Bookings.AvailableTimes(c.Request.Context(), courtID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, times)
}

// ForOwner lists bookings across an owner's facilities. Owners see their
// own; admins may name any owner.
func (h *BookingHandler) ForOwner(c *gin.Context) {
	ownerID := middleware.UserID(c)
	if target := c.Param("ownerId"); target != "" && target != ownerID {
		if middleware.Role(c) != models.RoleAdmin {
			utils.RespondError(c, utils.Forbidden("forbidden"))
			return
		}
		ownerID = target
	}
	list, err := h.Bookings.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
