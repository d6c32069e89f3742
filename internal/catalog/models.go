package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Train carries the seat pool for every schedule it runs. available_seats is
// the shared counter the booking transactor decrements under a row lock; no
// other component writes it.
type Train struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name           string    `json:"name" gorm:"not null"`
	TotalSeats     int       `json:"total_seats" gorm:"not null"`
	AvailableSeats int       `json:"available_seats" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Schedule is one departure instance of a Train on a route. Seat counts are
// read through the owning train, not held per schedule.
type Schedule struct {
	ID               uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TrainID          uuid.UUID `json:"train_id" gorm:"type:uuid;index;not null"`
	DepartureStation string    `json:"departure_station" gorm:"not null"`
	ArrivalStation   string    `json:"arrival_station" gorm:"not null"`
	DepartureTime    time.Time `json:"departure_time" gorm:"not null"`
	ArrivalTime      time.Time `json:"arrival_time" gorm:"not null"`
	Price            float64   `json:"price" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`

	Train *Train `json:"train,omitempty" gorm:"foreignKey:TrainID"`
}

func (Train) TableName() string {
	return "trains"
}

func (Schedule) TableName() string {
	return "schedules"
}

// ScheduleWithTrain is the browse-view row: schedule plus the owning train's
// name and live seat count.
type ScheduleWithTrain struct {
	ID               uuid.UUID `json:"id"`
	TrainID          uuid.UUID `json:"train_id"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Price            float64   `json:"price"`
	TrainName        string    `json:"train_name"`
	AvailableSeats   int       `json:"available_seats"`
}

// ScheduleSearchQuery filters GET /schedules
type ScheduleSearchQuery struct {
	Date string `form:"date" binding:"required"`
	From string `form:"from"`
	To   string `form:"to"`
}
