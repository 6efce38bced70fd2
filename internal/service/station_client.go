package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hkweather/backend/internal/domain"
)

// DefaultStationsURL is the CSDI current weather report feed, one feature per station
const DefaultStationsURL = "https://portal.csdi.gov.hk/server/services/common/hko_rcd_1634806665997_63899/MapServer/WFSServer?service=wfs&request=GetFeature&typenames=current_weather_report_weather_station&outputFormat=geojson&maxFeatures=21"

// StationClient fetches the station list from the feed
type StationClient struct {
	feedURL    string
	httpClient *http.Client
}

// NewStationClient creates a new station client
func NewStationClient(feedURL string, timeout time.Duration) *StationClient {
	return &StationClient{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FeatureCollection is the GeoJSON document served by the feed
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// Feature is a single station entry in the feed
type Feature struct {
	Properties struct {
		FID              *int    `json:"fid"`
		WeatherStationEn string  `json:"weather_station_en"`
		WeatherStationTc string  `json:"weather_station_tc"`
		WeatherStationSc string  `json:"weather_station_sc"`
		URL              *string `json:"url"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// ListStations fetches and normalizes every station in the feed, in feed order
func (c *StationClient) ListStations(ctx context.Context) ([]domain.Station, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("stations: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "stations", URL: c.feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Op: "stations", URL: c.feedURL, StatusCode: resp.StatusCode}
	}

	var fc FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, &domain.ParseError{Field: "features", Err: err}
	}

	stations := make([]domain.Station, 0, len(fc.Features))
	for i, f := range fc.Features {
		s, err := NormalizeFeature(f)
		if err != nil {
			return nil, fmt.Errorf("stations: feature %d: %w", i, err)
		}
		stations = append(stations, s)
	}

	return stations, nil
}

// NormalizeFeature maps a feed feature to a station
func NormalizeFeature(f Feature) (domain.Station, error) {
	p := f.Properties
	if p.FID == nil {
		return domain.Station{}, &domain.ParseError{Field: "properties.fid"}
	}
	if p.URL == nil || *p.URL == "" {
		return domain.Station{}, &domain.ParseError{Field: "properties.url"}
	}
	if len(f.Geometry.Coordinates) < 2 {
		return domain.Station{}, &domain.ParseError{Field: "geometry.coordinates"}
	}

	return domain.Station{
		ID:          *p.FID,
		NameEN:      p.WeatherStationEn,
		NameTC:      p.WeatherStationTc,
		NameSC:      p.WeatherStationSc,
		Coordinates: [2]float64{f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]},
		URL:         *p.URL,
	}, nil
}
