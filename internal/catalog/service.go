package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trainway/pkg/cache"
	"trainway/pkg/logger"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

type Service interface {
	ListTrains(ctx context.Context) ([]Train, error)
	ListSchedulesByTrain(ctx context.Context, trainID uuid.UUID) ([]ScheduleWithTrain, error)
	SearchSchedules(ctx context.Context, query ScheduleSearchQuery) ([]ScheduleWithTrain, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewService wires the catalog reads through a cache-aside layer. cacheService
// may be nil, in which case every read goes to the database.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (s *service) ListTrains(ctx context.Context) ([]Train, error) {
	if s.cache == nil {
		return s.repo.ListTrains(ctx)
	}

	var trains []Train
	err := s.cache.GetOrSet(ctx, "catalog:trains", s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListTrains(ctx)
	}, &trains)
	if err != nil {
		// Serve from the database when Redis is down.
		s.logger.Warn("trains cache read failed, falling back to database", "error", err)
		return s.repo.ListTrains(ctx)
	}
	return trains, nil
}

func (s *service) ListSchedulesByTrain(ctx context.Context, trainID uuid.UUID) ([]ScheduleWithTrain, error) {
	if s.cache == nil {
		return s.repo.ListSchedulesByTrain(ctx, trainID)
	}

	key := fmt.Sprintf("catalog:train:%s:schedules", trainID)
	var schedules []ScheduleWithTrain
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListSchedulesByTrain(ctx, trainID)
	}, &schedules)
	if err != nil {
		s.logger.Warn("schedules cache read failed, falling back to database", "error", err)
		return s.repo.ListSchedulesByTrain(ctx, trainID)
	}
	return schedules, nil
}

// SearchSchedules is not cached. Seat counts in search results go stale the
// moment a booking commits, and the date/from/to key space is unbounded.
func (s *service) SearchSchedules(ctx context.Context, query ScheduleSearchQuery) ([]ScheduleWithTrain, error) {
	return s.repo.SearchSchedules(ctx, query)
}
