package models

// Push events published on the notification relay.
const (
	EventOfferNew        = "offer:new"
	EventOfferUpdate     = "offer:update"
	EventBookingUpdate   = "booking:update"
	EventFacilityUpdated = "facility:update"
)

// RoleRoom is the relay room every connected user of role r joins.
func RoleRoom(r Role) string {
	return "role:" + string(r)
}

// UserRoom is the relay room of a single user.
func UserRoom(userID string) string {
	return "user:" + userID
}
