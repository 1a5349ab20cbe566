// Command seed fills a development database with demo accounts, facilities
// and courts around Bangalore.
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"quickcourt/config"
	"quickcourt/database"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	userRepo "quickcourt/database/repository/user"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

type sport struct {
	Name  string
	Price float64
}

var sports = []sport{
	{"badminton", 400},
	{"tennis", 600},
	{"football", 1200},
	{"table tennis", 250},
}

var areas = []string{"Indiranagar", "Koramangala", "HSR Layout", "Whitefield", "Jayanagar"}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	log := utils.GetLogger().Sugar()

	if config.IsProduction() {
		log.Fatal("seed: refusing to run against a production environment")
	}
	if err := database.InitDB(); err != nil {
		log.Fatalf("seed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.Close(context.Background())

	db := database.DB()
	for _, name := range []string{"users", "facilities", "courts", "timeslots", "bookings", "offers", "reviews", "coupons", "owner_profiles", "price_events"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("seed: failed to clear %s: %v", name, err)
		}
	}

	users := userRepo.NewMongoUserRepo(db)
	facilities := facilityRepo.NewMongoFacilityRepo(db)
	courts := courtRepo.NewMongoCourtRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: failed to hash password: %v", err)
	}
	newUser := func(name, email string, role models.Role) *models.User {
		u := &models.User{
			ID:           uuid.New().String(),
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			IsVerified:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed: failed to create %s: %v", email, err)
		}
		return u
	}

	newUser("Admin", "admin@quickcourt.app", models.RoleAdmin)
	newUser("Demo Player", "player@quickcourt.app", models.RoleUser)
	owners := []*models.User{
		newUser("Asha Rao", "owner1@quickcourt.app", models.RoleOwner),
		newUser("Vikram Shah", "owner2@quickcourt.app", models.RoleOwner),
	}

	// Facilities are scattered within ~5 km of the city centre.
	centerLat, centerLng := 12.9716, 77.5946
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var nCourts int
	for i, area := range areas {
		owner := owners[i%len(owners)]
		distanceKm := 0.5 + rng.Float64()*4.5
		angle := rng.Float64() * 2 * math.Pi

		offered := []sport{sports[i%len(sports)]}
		if i%2 == 0 {
			offered = append(offered, sports[(i+1)%len(sports)])
		}
		var sportNames []string
		for _, s := range offered {
			sportNames = append(sportNames, s.Name)
		}

		status := models.FacilityApproved
		if i == len(areas)-1 {
			status = models.FacilityPending
		}
		f := &models.Facility{
			ID:        uuid.New().String(),
			OwnerID:   owner.ID,
			Name:      fmt.Sprintf("%s Sports Arena", area),
			Address:   fmt.Sprintf("%d Main Road, %s", 10+i*7, area),
			City:      "Bangalore",
			Location:  &models.GeoPoint{Lat: centerLat + distanceKm*0.009*math.Sin(angle), Lng: centerLng + distanceKm*0.00922*math.Cos(angle)},
			Sports:    sportNames,
			Amenities: []string{"parking", "drinking water"},
			Status:    status,
		}
		if err := facilities.Create(ctx, f); err != nil {
			log.Fatalf("seed: failed to create facility %s: %v", f.Name, err)
		}

		for _, s := range offered {
			for n := 1; n <= 2; n++ {
				c := &models.Court{
					ID:           uuid.New().String(),
					FacilityID:   f.ID,
					Name:         fmt.Sprintf("%s Court %d", s.Name, n),
					Sport:        s.Name,
					PricePerHour: s.Price,
					OpenTime:     models.DefaultOpenTime,
					CloseTime:    models.DefaultCloseTime,
					IsActive:     true,
				}
				if err := courts.Create(ctx, c); err != nil {
					log.Fatalf("seed: failed to create court: %v", err)
				}
				nCourts++
			}
		}
	}

	log.Infof("seed: inserted 4 users, %d facilities and %d courts (password %q)", len(areas), nCourts, demoPassword)
}
