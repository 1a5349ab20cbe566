package offer

import "quickcourt/utils"

var (
	ErrOfferNotFound    = utils.NotFound("offer not found")
	ErrFacilityNotFound = utils.NotFound("facility not found")
	ErrCourtMismatch    = utils.BadRequest("court does not belong to this facility")
	ErrInvalidPrice     = utils.BadRequest("offered price must be positive")
	ErrInvalidCounter   = utils.BadRequest("counter price must be positive")
	ErrUnknownAction    = utils.BadRequest("action must be accept, reject or counter")
	ErrOfferClosed      = utils.BadRequest("offer can no longer be acted on")
	ErrNotAllowed       = utils.Forbidden("forbidden")
	ErrBookingNotOwned  = utils.BadRequest("booking does not belong to you")
)
