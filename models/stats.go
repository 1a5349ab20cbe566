package models

// UserStats is returned by GET /api/stats/user.
type UserStats struct {
	TotalBookings    int64                   `json:"totalBookings"`
	ByStatus         map[BookingStatus]int64 `json:"byStatus"`
	TotalSpent       float64                 `json:"totalSpent"`
	ReliabilityScore int                     `json:"reliabilityScore"`
	Cancellations    int                     `json:"cancellations"`
}

// OwnerStats is returned by GET /api/stats/owner.
type OwnerStats struct {
	Facilities    int64                   `json:"facilities"`
	Courts        int64                   `json:"courts"`
	TotalBookings int64                   `json:"totalBookings"`
	ByStatus      map[BookingStatus]int64 `json:"byStatus"`
	Revenue       float64                 `json:"revenue"`
	DailyRevenue  []DailyAmount           `json:"dailyRevenue"`
}

// AdminStats is returned by GET /api/stats/admin.
type AdminStats struct {
	Users            int64                    `json:"users"`
	Owners           int64                    `json:"owners"`
	BannedUsers      int64                    `json:"bannedUsers"`
	Facilities       map[FacilityStatus]int64 `json:"facilities"`
	TotalBookings    int64                    `json:"totalBookings"`
	ConfirmedRevenue float64                  `json:"confirmedRevenue"`
	BookingsBySport  map[string]int64         `json:"bookingsBySport"`
}

// DailyAmount is one point of a revenue series.
type DailyAmount struct {
	Date   string  `bson:"_id" json:"date"`
	Amount float64 `bson:"amount" json:"amount"`
	Count  int64   `bson:"count" json:"count"`
}

// BookingAggregate is the grouped result of a booking aggregation.
type BookingAggregate struct {
	Status BookingStatus `bson:"_id"`
	Count  int64         `bson:"count"`
	Amount float64       `bson:"amount"`
}
