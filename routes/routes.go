package routes

import (
	"time"

	"quickcourt/handlers"
	"quickcourt/middleware"
	"quickcourt/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	ownerOnly = middleware.RequireRole(models.RoleOwner)
	adminOnly = middleware.RequireRole(models.RoleAdmin)
)

// RegisterAuthRoutes registers signup, login and account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.Signup)
		api.POST("/login", hb.Auth.Login)
		api.POST("/verify-otp", hb.Auth.VerifyOTP)
		api.POST("/resend-otp", hb.Auth.ResendOTP)

		// Protected routes (Require Authentication)
		api.Use(middleware.Authenticate(hb.Users))
		api.GET("/me", hb.Auth.Me)
		api.POST("/change-password", hb.Auth.ChangePassword)
		api.PUT("/profile", hb.Auth.UpdateProfile)
		api.PUT("/fcm-token", hb.Auth.UpdateFCMToken)
	}
}

// RegisterFacilityRoutes registers the catalog, owner management and reviews.
func RegisterFacilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.Authenticate(hb.Users)

	facilities := r.Group("/api/facilities")
	{
		facilities.GET("", hb.Facility.List)
		facilities.GET("/:id", middleware.OptionalAuthenticate(hb.Users), hb.Facility.Get)
		facilities.GET("/:id/reviews", hb.Facility.ListReviews)
		facilities.POST("/:id/reviews", auth, middleware.RequireRole(models.RoleUser), hb.Facility.SubmitReview)

		facilities.POST("", auth, ownerOnly, hb.Facility.Create)
		facilities.PUT("/:id", auth, ownerOnly, hb.Facility.Update)
		facilities.POST("/:id/photos", auth, ownerOnly, hb.Facility.UploadPhoto)
	}

	courts := r.Group("/api/courts")
	{
		courts.GET("/by-facility/:facilityId", hb.Facility.CourtsByFacility)
		courts.GET("/:id/price-history", hb.Facility.PriceHistory)

		courts.POST("", auth, ownerOnly, hb.Facility.CreateCourt)
		courts.PUT("/:id", auth, ownerOnly, hb.Facility.UpdateCourt)
		courts.DELETE("/:id", auth, ownerOnly, hb.Facility.DeleteCourt)
	}
}

// RegisterSlotRoutes registers the slot grid and owner blocking.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	slots := r.Group("/api/slots")
	{
		slots.GET("/:courtId", hb.Slot.Grid)

		slots.Use(middleware.Authenticate(hb.Users), ownerOnly)
		slots.POST("/block", hb.Slot.Block)
		slots.POST("/unblock", hb.Slot.Unblock)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.GET("/available-times", hb.Booking.AvailableTimes)

		bookings.Use(middleware.Authenticate(hb.Users))
		bookings.POST("", hb.Booking.CreateDirect)
		bookings.POST("/create-pending", hb.Booking.CreatePending)
		bookings.POST("/verify-payment", hb.Booking.VerifyPayment)
		bookings.GET("/me", hb.Booking.Mine)
		bookings.GET("/owner", ownerOnly, hb.Booking.ForOwner)
		bookings.GET("/owner/:ownerId", middleware.RequireRole(models.RoleOwner, models.RoleAdmin), hb.Booking.ForOwner)
		bookings.GET("/:id", hb.Booking.Get)
		bookings.PUT("/:id/cancel", hb.Booking.Cancel)
		bookings.PUT("/:id/complete", ownerOnly, hb.Booking.Complete)
	}
}

// RegisterOfferRoutes sets up price negotiation.
func RegisterOfferRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	offers := r.Group("/api/offers")
	{
		offers.Use(middleware.Authenticate(hb.Users))
		offers.POST("", hb.Offer.Create)
		offers.PUT("/:id/:action", hb.Offer.Act)
		offers.GET("/user", hb.Offer.ForUser)
		offers.GET("/facility/:facilityId", ownerOnly, hb.Offer.ForFacility)
		offers.GET("/stats/:facilityId", ownerOnly, hb.Offer.Stats)
	}
}

// RegisterOwnerRoutes sets up the owner's business profile and coupons.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/owner")
	{
		api.Use(middleware.Authenticate(hb.Users), ownerOnly)
		api.GET("/profile", hb.Owner.GetProfile)
		api.PUT("/profile", hb.Owner.UpdateProfile)
		api.GET("/facilities", hb.Facility.Mine)
		api.GET("/coupons", hb.Owner.ListCoupons)
		api.POST("/coupons", hb.Owner.CreateCoupon)
		api.DELETE("/coupons/:id", hb.Owner.DeactivateCoupon)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.Authenticate(hb.Users), adminOnly)
		adminGroup.GET("/facilities", hb.Admin.ListFacilities)
		adminGroup.PUT("/facilities/:id/approve", hb.Admin.ApproveFacility)
		adminGroup.PUT("/facilities/:id/reject", hb.Admin.RejectFacility)
		adminGroup.GET("/users", hb.Admin.ListUsers)
		adminGroup.PUT("/users/:id/ban", hb.Admin.Ban)
		adminGroup.PUT("/users/:id/unban", hb.Admin.Unban)
		adminGroup.GET("/users/:id/bookings", hb.Admin.UserBookings)
	}
}

// RegisterStatsRoutes sets up the dashboards.
func RegisterStatsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	stats := r.Group("/api/stats")
	{
		stats.Use(middleware.Authenticate(hb.Users))
		stats.GET("/user", hb.Stats.User)
		stats.GET("/owner", ownerOnly, hb.Stats.Owner)
		stats.GET("/admin", adminOnly, hb.Stats.Admin)
		stats.GET("/facility-owner/:ownerId", middleware.RequireRole(models.RoleOwner, models.RoleAdmin), hb.Stats.FacilityOwner)
	}
}

// RegisterIntegrationRoutes sets up maps, weather and calendar helpers.
func RegisterIntegrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/integrations")
	{
		api.GET("/maps/link", hb.Integrations.MapsLink)
		api.GET("/weather", hb.Integrations.Weather)
		api.GET("/ics/:title", hb.Integrations.ICS)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterWSRoute registers the notification socket.
func RegisterWSRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.WS == nil {
		return
	}
	r.GET("/ws", middleware.AuthenticateQuery(hb.Users), hb.WS.Serve)
}

// corsConfig allows the configured origins with credentials. An empty list
// or a "*" entry opens CORS to every origin without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(hb.CORSOrigins)))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterAuthRoutes(r, hb)
	RegisterFacilityRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOfferRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterStatsRoutes(r, hb)
	RegisterIntegrationRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterWSRoute(r, hb)
}
