package booking

import (
	"net/http"

	"quickcourt/utils"
)

var (
	ErrBookingNotFound      = utils.NotFound("booking not found")
	ErrNotBookingOwner      = utils.Forbidden("forbidden")
	ErrInvalidTransition    = utils.BadRequest("booking is not in a state that allows this action")
	ErrConflictingBooking   = utils.NewCodedError(http.StatusConflict, "BOOKING_CONFLICT", "another active booking overlaps this time")
	ErrPaymentNotSuccessful = utils.NewCodedError(http.StatusBadRequest, "PAYMENT_NOT_SUCCESSFUL", "payment not successful")
	ErrPaymentProvider      = utils.NewAppError(http.StatusInternalServerError, "failed to create payment intent")
	ErrIntentMismatch       = utils.BadRequest("payment intent does not belong to this booking")
	ErrCourtUnavailable     = utils.BadRequest("court is not accepting bookings")
	ErrFacilityNotBookable  = utils.BadRequest("facility is not approved for bookings")
	ErrInvalidCoupon        = utils.BadRequest("coupon code is invalid or expired")
	ErrAmountBelowPrice     = utils.BadRequest("amount is below the court price for this booking")
)
