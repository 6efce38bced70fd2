package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/hkweather/backend/internal/domain"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestNormalizeFeature(t *testing.T) {
	var f Feature
	f.Properties.FID = intPtr(42)
	f.Properties.WeatherStationEn = "Hong Kong Observatory"
	f.Properties.WeatherStationTc = "香港天文台"
	f.Properties.WeatherStationSc = "香港天文台"
	f.Properties.URL = strPtr("https://example.com/hko")
	f.Geometry.Coordinates = []float64{114.17, 22.30}

	got, err := NormalizeFeature(f)
	if err != nil {
		t.Fatalf("NormalizeFeature() error = %v", err)
	}

	want := domain.Station{
		ID:          42,
		NameEN:      "Hong Kong Observatory",
		NameTC:      "香港天文台",
		NameSC:      "香港天文台",
		Coordinates: [2]float64{114.17, 22.30},
		URL:         "https://example.com/hko",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeFeature() = %+v, want %+v", got, want)
	}
	if got.Lon() != 114.17 || got.Lat() != 22.30 {
		t.Errorf("Lon/Lat = %v/%v, want 114.17/22.30", got.Lon(), got.Lat())
	}
}

func TestNormalizeFeature_MissingFields(t *testing.T) {
	complete := func() Feature {
		var f Feature
		f.Properties.FID = intPtr(1)
		f.Properties.URL = strPtr("https://example.com/1")
		f.Geometry.Coordinates = []float64{114.1, 22.3}
		return f
	}

	tests := []struct {
		name   string
		mutate func(*Feature)
		field  string
	}{
		{"no fid", func(f *Feature) { f.Properties.FID = nil }, "properties.fid"},
		{"no url", func(f *Feature) { f.Properties.URL = nil }, "properties.url"},
		{"empty url", func(f *Feature) { f.Properties.URL = strPtr("") }, "properties.url"},
		{"short coordinates", func(f *Feature) { f.Geometry.Coordinates = []float64{114.1} }, "geometry.coordinates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := complete()
			tt.mutate(&f)

			_, err := NormalizeFeature(f)
			var perr *domain.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if perr.Field != tt.field {
				t.Errorf("Field = %q, want %q", perr.Field, tt.field)
			}
		})
	}
}

func TestStationClient_ListStationsKeepsFeedOrder(t *testing.T) {
	feed := newFakeFeed(t, 15)
	client := NewStationClient(feed.URL(), 5*time.Second)

	stations, err := client.ListStations(context.Background())
	if err != nil {
		t.Fatalf("ListStations() error = %v", err)
	}
	if len(stations) != 15 {
		t.Fatalf("got %d stations, want 15", len(stations))
	}
	for i, s := range stations {
		if s.ID != i+1 {
			t.Errorf("stations[%d].ID = %d, want %d", i, s.ID, i+1)
		}
	}
}

func TestStationClient_StatusError(t *testing.T) {
	feed := newFakeFeed(t, 3, withListStatus(http.StatusServiceUnavailable))
	client := NewStationClient(feed.URL(), 5*time.Second)

	_, err := client.ListStations(context.Background())
	var uerr *domain.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if uerr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", uerr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestStationClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewStationClient(url, time.Second)
	_, err := client.ListStations(context.Background())

	var uerr *domain.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestStationClient_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>maintenance</html>`},
		{"feature without fid", `{"features":[{"properties":{"url":"http://x"},"geometry":{"coordinates":[1,2]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewStationClient(srv.URL, time.Second).ListStations(context.Background())
			var perr *domain.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}
}
