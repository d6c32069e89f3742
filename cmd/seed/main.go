// Seeds trains, schedules and demo users for local development.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trainway/internal/catalog"
	"trainway/internal/shared/config"
	"trainway/internal/shared/database"
	"trainway/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if err := seed(db.GetPostgreSQL()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("✅ Seeding complete")
}

func seed(db *gorm.DB) error {
	trains := []catalog.Train{
		{ID: uuid.New(), Name: "Coastal Express", TotalSeats: 120, AvailableSeats: 120},
		{ID: uuid.New(), Name: "Highland Mail", TotalSeats: 80, AvailableSeats: 80},
		{ID: uuid.New(), Name: "Night Rider", TotalSeats: 60, AvailableSeats: 60},
	}

	routes := []seedRoute{
		{"Central", "Harborview", 6, 24.50},
		{"Harborview", "Central", 12, 24.50},
		{"Central", "Hillcrest", 18, 31.00},
	}

	return db.Transaction(seedTx(trains, routes))
}

type seedRoute struct {
	from, to string
	hour     int
	price    float64
}

// departureOn anchors the departure at the given hour of the day, regardless
// of what time the seeder runs.
func departureOn(now time.Time, daysAhead, hour int) time.Time {
	day := now.UTC().AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func seedTx(trains []catalog.Train, routes []seedRoute) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		for i, train := range trains {
			if err := tx.Create(&train).Error; err != nil {
				return fmt.Errorf("create train %s: %w", train.Name, err)
			}

			// One departure per route for each of the next 7 days.
			route := routes[i%len(routes)]
			for day := 1; day <= 7; day++ {
				departure := departureOn(time.Now(), day, route.hour)

				schedule := catalog.Schedule{
					ID:               uuid.New(),
					TrainID:          train.ID,
					DepartureStation: route.from,
					ArrivalStation:   route.to,
					DepartureTime:    departure,
					ArrivalTime:      departure.Add(4 * time.Hour),
					Price:            route.price,
				}
				if err := tx.Create(&schedule).Error; err != nil {
					return fmt.Errorf("create schedule for %s: %w", train.Name, err)
				}
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		demo := []users.User{
			{ID: uuid.New(), Name: "Asha Verma", Email: "asha@example.com", Password: string(hash), Contact: "555-0101", Address: "12 Canal Street"},
			{ID: uuid.New(), Name: "Tom Okafor", Email: "tom@example.com", Password: string(hash), Contact: "555-0102", Address: "8 Summit Road"},
		}
		for _, u := range demo {
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
		}

		return nil
	}
}
