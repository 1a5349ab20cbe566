package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickcourt/config"
	"quickcourt/cron"
	"quickcourt/database"
	bookingRepo "quickcourt/database/repository/booking"
	couponRepo "quickcourt/database/repository/coupon"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	offerRepo "quickcourt/database/repository/offer"
	ownerProfileRepo "quickcourt/database/repository/ownerprofile"
	priceEventRepo "quickcourt/database/repository/priceevent"
	reviewRepo "quickcourt/database/repository/review"
	timeslotRepo "quickcourt/database/repository/timeslot"
	userRepoPkg "quickcourt/database/repository/user"
	"quickcourt/handlers"
	"quickcourt/middleware"
	"quickcourt/routes"
	"quickcourt/services/admin"
	"quickcourt/services/booking"
	"quickcourt/services/facility"
	"quickcourt/services/mail"
	"quickcourt/services/notification"
	"quickcourt/services/offer"
	"quickcourt/services/owner"
	"quickcourt/services/payment"
	"quickcourt/services/review"
	"quickcourt/services/slot"
	"quickcourt/services/stats"
	"quickcourt/services/storage"
	"quickcourt/services/tasks"
	"quickcourt/services/user"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		if config.IsProduction() {
			logger.Fatal("main: JWT_SECRET must be set in production")
		}
		logger.Warn("main: JWT_SECRET not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	db := database.DB()
	cache := utils.GetCacheClient()
	utils.StartHealthMonitor(ctx, cache, database.MongoClient)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	facilities := facilityRepo.NewMongoFacilityRepo(db)
	courts := courtRepo.NewMongoCourtRepo(db)
	slots := timeslotRepo.NewMongoTimeSlotRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	offers := offerRepo.NewMongoOfferRepo(db)
	reviews := reviewRepo.NewMongoReviewRepo(db)
	coupons := couponRepo.NewMongoCouponRepo(db)
	profiles := ownerProfileRepo.NewMongoOwnerProfileRepo(db)
	priceEvents := priceEventRepo.NewMongoPriceEventRepo(db)

	for _, repo := range []indexer{userRepo, facilities, courts, slots, bookings, offers, reviews, coupons} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("main: failed to create indexes", zap.Error(err))
		}
	}

	// notifications.
	hub := notification.NewHub()
	go hub.Run(ctx)
	notifier := notification.Fanout{hub}
	if cfg.FirebaseCredentialsFile != "" {
		pusher, err := notification.NewFCMPusher(ctx, cfg.FirebaseCredentialsFile, userRepo)
		if err != nil {
			logger.Warn("main: push notifications disabled", zap.Error(err))
		} else {
			notifier = append(notifier, pusher)
		}
	}

	photos, err := storage.NewPhotoStore(cfg.CloudinaryURL)
	if err != nil {
		logger.Warn("main: photo uploads disabled", zap.Error(err))
		photos = storage.Disabled{}
	}

	queue := asynq.NewClient(cron.QueueRedisOpt(cfg))
	defer queue.Close()

	// services.
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Cache:    user.NewUserCache(cache),
		Mailer:   mail.NewMailer(cfg),
		TokenTTL: time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
	slotService := &slot.DefaultSlotService{
		Slots:      slots,
		Bookings:   bookings,
		Courts:     courts,
		Facilities: facilities,
		Cache:      cache,
	}
	facilityService := &facility.DefaultFacilityService{
		Facilities:  facilities,
		Courts:      courts,
		PriceEvents: priceEvents,
		Photos:      photos,
		Notifier:    notifier,
		Grids:       slotService,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:    bookings,
		Courts:      courts,
		Facilities:  facilities,
		Coupons:     coupons,
		Slots:       slotService,
		Payments:    payment.NewGateway(cfg),
		Tx:          database.NewTxRunner(database.MongoClient, cfg.DBTransactions),
		Reliability: userService,
		Scheduler:   &tasks.Scheduler{Client: queue},
		Notifier:    notifier,
		Currency:    cfg.PaymentCurrency,
		PendingTTL:  time.Duration(cfg.PendingBookingTTLMin) * time.Minute,
	}
	offerService := &offer.DefaultOfferService{
		Offers:      offers,
		Facilities:  facilities,
		Courts:      courts,
		Bookings:    bookings,
		PriceEvents: priceEvents,
		Notifier:    notifier,
	}
	reviewService := &review.DefaultReviewService{Reviews: reviews, Bookings: bookings, Facilities: facilities}
	ownerService := &owner.DefaultOwnerService{Profiles: profiles, Coupons: coupons, Facilities: facilities}
	adminService := &admin.DefaultAdminService{Facilities: facilityService, Users: userService, Bookings: bookings}
	statsService := &stats.DefaultStatsService{Users: userRepo, Facilities: facilities, Courts: courts, Bookings: bookings}

	worker := cron.InitBookingWorker(ctx, cfg, bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users:             userService,
		Auth:              handlers.NewAuthHandler(userService),
		Facility:          handlers.NewFacilityHandler(facilityService, reviewService),
		Slot:              handlers.NewSlotHandler(slotService),
		Booking:           handlers.NewBookingHandler(bookingService),
		Offer:             handlers.NewOfferHandler(offerService),
		Owner:             handlers.NewOwnerHandler(ownerService),
		Admin:             handlers.NewAdminHandler(adminService),
		Stats:             handlers.NewStatsHandler(statsService),
		Integrations:      handlers.NewIntegrationsHandler(),
		WS:                handlers.NewWSHandler(hub, cfg.CORSOriginList()),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		CORSOrigins:       cfg.CORSOriginList(),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              cfg.AppHost + ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	hub.Close()
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	if err := cache.Close(); err != nil {
		logger.Warn("main: redis close failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	os.Exit(0)
}
