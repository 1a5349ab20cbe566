package handlers

import (
	"quickcourt/middleware"
)

// HandlerBundle groups every endpoint handler plus what the route guards need.
type HandlerBundle struct {
	// Users resolves tokens to accounts for middleware.Authenticate.
	Users middleware.UserLoader

	Auth         *AuthHandler
	Facility     *FacilityHandler
	Slot         *SlotHandler
	Booking      *BookingHandler
	Offer        *OfferHandler
	Owner        *OwnerHandler
	Admin        *AdminHandler
	Stats        *StatsHandler
	Integrations *IntegrationsHandler
	// WS is nil when live notifications are disabled.
	WS *WSHandler

	MaxRequestsPerMin int
	CORSOrigins       []string
}
