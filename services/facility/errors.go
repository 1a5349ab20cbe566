package facility

import "quickcourt/utils"

var (
	ErrFacilityNotFound = utils.NotFound("facility not found")
	ErrCourtNotFound    = utils.NotFound("court not found")
	ErrNotOwner         = utils.Forbidden("forbidden")
	ErrInvalidStatus    = utils.BadRequest("status must be pending, approved or rejected")
)
