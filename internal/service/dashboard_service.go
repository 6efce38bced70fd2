package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hkweather/backend/internal/domain"
	"github.com/hkweather/backend/pkg/utils"
)

// DashboardService combines the feed clients with the shared cache
type DashboardService struct {
	stationClient *StationClient
	weatherSvc    *WeatherService
	cache         StationCache
	logger        *slog.Logger

	refresh singleflight.Group
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	stationClient *StationClient,
	weatherSvc *WeatherService,
	cache StationCache,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		stationClient: stationClient,
		weatherSvc:    weatherSvc,
		cache:         cache,
		logger:        logger,
	}
}

// Stations returns the station list, from cache while it is fresh
func (s *DashboardService) Stations(ctx context.Context) ([]domain.Station, error) {
	if stations, ok := s.cache.Stations(); ok {
		return stations, nil
	}
	return s.refreshStations(ctx)
}

// refreshStations fetches the list from the feed and stores it.
// Concurrent callers share one upstream request.
func (s *DashboardService) refreshStations(ctx context.Context) ([]domain.Station, error) {
	v, err, _ := s.refresh.Do("stations", func() (interface{}, error) {
		stations, err := s.stationClient.ListStations(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.PutStations(stations)
		return stations, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.Station)), nil
}

// FetchAll fetches readings for the first limit stations concurrently.
// Results keep the station list order. A failed station gets an error
// placeholder instead of failing the whole call; only a failed station
// list fetch is returned as an error. A limit <= 0 means every station.
func (s *DashboardService) FetchAll(ctx context.Context, limit int) ([]domain.Reading, error) {
	stations, err := s.refreshStations(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(stations) {
		limit = len(stations)
	}
	stations = stations[:limit]

	var wg sync.WaitGroup
	results := make([]domain.Reading, len(stations))

	for i, station := range stations {
		wg.Add(1)
		go func(i int, station domain.Station) {
			defer wg.Done()
			reading, err := s.weatherSvc.FetchReading(ctx, station)
			if err != nil {
				s.logger.Warn("station fetch failed",
					"station", station.NameEN,
					"id", station.ID,
					"err", err,
				)
				results[i] = domain.FailedReading(station)
				return
			}
			s.cache.PutReading(station.ID, reading)
			results[i] = reading
		}(i, station)
	}

	wg.Wait()

	return results, nil
}

// ReadingFor returns the reading for one station, from cache while it is fresh.
// The station list is refreshed first when stale since it holds the detail URL.
func (s *DashboardService) ReadingFor(ctx context.Context, id int) (domain.Reading, error) {
	if reading, ok := s.cache.Reading(id); ok {
		return reading, nil
	}

	stations, err := s.Stations(ctx)
	if err != nil {
		return domain.Reading{}, err
	}

	station, ok := domain.FindStation(stations, id)
	if !ok {
		return domain.Reading{}, fmt.Errorf("dashboard: station %d: %w", id, domain.ErrStationNotFound)
	}

	reading, err := s.weatherSvc.FetchReading(ctx, station)
	if err != nil {
		return domain.Reading{}, err
	}

	s.cache.PutReading(id, reading)
	return reading, nil
}

// Nearest returns the station closest to the given point and its distance in km
func (s *DashboardService) Nearest(ctx context.Context, lat, lon float64) (domain.Station, float64, error) {
	stations, err := s.Stations(ctx)
	if err != nil {
		return domain.Station{}, 0, err
	}
	if len(stations) == 0 {
		return domain.Station{}, 0, fmt.Errorf("dashboard: no stations: %w", domain.ErrStationNotFound)
	}

	best := stations[0]
	bestDist := math.Inf(1)
	for _, st := range stations {
		d := utils.Haversine(lat, lon, st.Lat(), st.Lon())
		if d < bestDist {
			best, bestDist = st, d
		}
	}

	return best, utils.RoundTo(bestDist, 2), nil
}
