package handlers

import (
	"net/http"

	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/facility"
	"quickcourt/services/review"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FacilityHandler serves facilities, their courts and their reviews.
type FacilityHandler struct {
	Facilities facility.FacilityService
	Reviews    review.ReviewService
}

func NewFacilityHandler(fs facility.FacilityService, rs review.ReviewService) *FacilityHandler {
	return &FacilityHandler{Facilities: fs, Reviews: rs}
}

// List returns approved facilities filtered by ?q=&sport=&city=.
func (h *FacilityHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	res, err := h.Facilities.ListPublic(c.Request.Context(), models.FacilityFilter{
		Query: c.Query("q"),
		Sport: c.Query("sport"),
		City:  c.Query("city"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get shows a facility with its courts. Unapproved facilities are visible to
// their owner and to admins only.
func (h *FacilityHandler) Get(c *gin.Context) {
	details, err := h.Facilities.Details(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *FacilityHandler) Create(c *gin.Context) {
	var input models.FacilityInput
	if !bindJSON(c, &input) {
		return
	}
	f, err := h.Facilities.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *FacilityHandler) Update(c *gin.Context) {
	var input models.FacilityInput
	if !bindJSON(c, &input) {
		return
	}
	f, err := h.Facilities.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FacilityHandler) Mine(c *gin.Context) {
	list, err := h.Facilities.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UploadPhoto accepts a multipart "photo" field and appends its URL to the facility.
func (h *FacilityHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.RespondError(c, utils.BadRequest("photo file not provided"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("failed to open upload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	f, err := h.Facilities.UploadPhoto(c.Request.Context(), middleware.UserID(c), c.Param("id"), file, fileHeader.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FacilityHandler) ListReviews(c *gin.Context) {
	list, err := h.Reviews.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FacilityHandler) SubmitReview(c *gin.Context) {
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Reviews.Submit(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Courts

func (h *FacilityHandler) CourtsByFacility(c *gin.Context) {
	list, err := h.Facilities.ListCourts(c.Request.Context(), c.Param("facilityId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FacilityHandler) CreateCourt(c *gin.Context) {
	var input models.CourtInput
	if !bindJSON(c, &input) {
		return
	}
	court, err := h.Facilities.CreateCourt(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

func (h *FacilityHandler) UpdateCourt(c *gin.Context) {
	var input models.CourtInput
	if !bindJSON(c, &input) {
		return
	}
	court, err := h.Facilities.UpdateCourt(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// DeleteCourt deactivates the court; its slots and bookings are kept.
func (h *FacilityHandler) DeleteCourt(c *gin.Context) {
	if err := h.Facilities.DeactivateCourt(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Court deactivated"})
}

func (h *FacilityHandler) PriceHistory(c *gin.Context) {
	events, err := h.Facilities.PriceHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
