package memrepo

import (
	bookingRepo "quickcourt/database/repository/booking"
	couponRepo "quickcourt/database/repository/coupon"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	offerRepo "quickcourt/database/repository/offer"
	ownerProfileRepo "quickcourt/database/repository/ownerprofile"
	priceEventRepo "quickcourt/database/repository/priceevent"
	reviewRepo "quickcourt/database/repository/review"
	timeslotRepo "quickcourt/database/repository/timeslot"
	userRepo "quickcourt/database/repository/user"
)

var (
	_ timeslotRepo.TimeSlotRepository         = (*TimeSlots)(nil)
	_ bookingRepo.BookingRepository           = (*Bookings)(nil)
	_ courtRepo.CourtRepository               = (*Courts)(nil)
	_ facilityRepo.FacilityRepository         = (*Facilities)(nil)
	_ userRepo.UserRepository                 = (*Users)(nil)
	_ offerRepo.OfferRepository               = (*Offers)(nil)
	_ reviewRepo.ReviewRepository             = (*Reviews)(nil)
	_ couponRepo.CouponRepository             = (*Coupons)(nil)
	_ ownerProfileRepo.OwnerProfileRepository = (*OwnerProfiles)(nil)
	_ priceEventRepo.PriceEventRepository     = (*PriceEvents)(nil)
)
