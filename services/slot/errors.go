package slot

import (
	"net/http"

	"quickcourt/utils"
)

var (
	ErrSlotUnavailable  = utils.NewCodedError(http.StatusConflict, "SLOT_UNAVAILABLE", "slot unavailable")
	ErrActiveBooking    = utils.NewCodedError(http.StatusConflict, "SLOT_HAS_BOOKING", "an active booking occupies this slot")
	ErrCourtNotFound    = utils.NotFound("court not found")
	ErrNotFacilityOwner = utils.Forbidden("forbidden")
	ErrInvalidDate      = utils.BadRequest("date must be YYYY-MM-DD")
)
