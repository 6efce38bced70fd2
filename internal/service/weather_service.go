package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hkweather/backend/internal/domain"
)

// WeatherService fetches the detail document for a single station
type WeatherService struct {
	httpClient *http.Client
}

// NewWeatherService creates a new weather service
func NewWeatherService(timeout time.Duration) *WeatherService {
	return &WeatherService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StationDetailResponse represents the per-station detail document.
// Every value is a string, including the numeric-looking ones.
type StationDetailResponse struct {
	Temperature        *domain.Temperature `json:"Temperature"`
	UVIndex            json.RawMessage     `json:"UV_Index"`
	RecordTimeYear     string              `json:"Record_Time_Year"`
	RecordTimeMonth    string              `json:"Record_Time_Month"`
	RecordTimeDay      string              `json:"Record_Time_Day"`
	RecordTimeHour     string              `json:"Record_Time_Hour"`
	RecordTimeMinute   string              `json:"Record_Time_Minute"`
	RecordTimeTimezone string              `json:"Record_Time_Timezone"`
}

// FetchReading fetches the current reading for a station from its detail URL
func (s *WeatherService) FetchReading(ctx context.Context, station domain.Station) (domain.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, station.URL, nil)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Reading{}, &domain.UpstreamError{Op: "weather", URL: station.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Reading{}, &domain.UpstreamError{Op: "weather", URL: station.URL, StatusCode: resp.StatusCode}
	}

	var detail StationDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return domain.Reading{}, &domain.ParseError{Field: "station detail", Err: err}
	}

	return toReading(station, detail), nil
}

func toReading(station domain.Station, d StationDetailResponse) domain.Reading {
	temp := d.Temperature
	if temp == nil {
		temp = &domain.Temperature{Value: domain.Unavailable}
	}

	return domain.Reading{
		Station:     station,
		Temperature: temp,
		UVIndex:     decodeUVIndex(d.UVIndex),
		RecordTime: &domain.RecordTime{
			Year:     d.RecordTimeYear,
			Month:    d.RecordTimeMonth,
			Day:      d.RecordTimeDay,
			Hour:     d.RecordTimeHour,
			Minute:   d.RecordTimeMinute,
			Timezone: d.RecordTimeTimezone,
		},
	}
}

// decodeUVIndex returns nil when the station reports no UV block.
// Some stations send an empty string or null instead of an object.
func decodeUVIndex(raw json.RawMessage) *domain.UVIndex {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var uv domain.UVIndex
	if err := json.Unmarshal(raw, &uv); err != nil {
		return nil
	}
	if uv == (domain.UVIndex{}) {
		return nil
	}
	return &uv
}
