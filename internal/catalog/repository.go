package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListTrains(ctx context.Context) ([]Train, error)
	ListSchedulesByTrain(ctx context.Context, trainID uuid.UUID) ([]ScheduleWithTrain, error)
	SearchSchedules(ctx context.Context, query ScheduleSearchQuery) ([]ScheduleWithTrain, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTrains(ctx context.Context) ([]Train, error) {
	var trains []Train
	err := r.db.WithContext(ctx).Order("name").Find(&trains).Error
	return trains, err
}

func (r *repository) ListSchedulesByTrain(ctx context.Context, trainID uuid.UUID) ([]ScheduleWithTrain, error) {
	var schedules []ScheduleWithTrain
	err := r.db.WithContext(ctx).
		Table("schedules").
		Select("schedules.*, trains.name AS train_name, trains.available_seats").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Where("trains.id = ?", trainID).
		Order("schedules.departure_time").
		Scan(&schedules).Error
	return schedules, err
}

func (r *repository) SearchSchedules(ctx context.Context, query ScheduleSearchQuery) ([]ScheduleWithTrain, error) {
	day, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	q := r.db.WithContext(ctx).
		Table("schedules").
		Select("schedules.*, trains.name AS train_name, trains.available_seats").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Where("schedules.departure_time >= ? AND schedules.departure_time < ?", day, day.AddDate(0, 0, 1))

	if query.From != "" {
		q = q.Where("schedules.departure_station = ?", query.From)
	}
	if query.To != "" {
		q = q.Where("schedules.arrival_station = ?", query.To)
	}

	var schedules []ScheduleWithTrain
	err = q.Order("schedules.departure_time").Scan(&schedules).Error
	return schedules, err
}
