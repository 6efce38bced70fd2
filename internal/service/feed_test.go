package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeFeed serves a station list and one detail document per station
type fakeFeed struct {
	server       *httptest.Server
	stationCount int
	failIDs      map[int]bool
	listStatus   int

	listCalls   atomic.Int32
	detailCalls atomic.Int32
}

// newFakeFeed configures the feed with opts before the server starts serving
func newFakeFeed(t *testing.T, stationCount int, opts ...func(*fakeFeed)) *fakeFeed {
	t.Helper()

	f := &fakeFeed{
		stationCount: stationCount,
		failIDs:      map[int]bool{},
		listStatus:   http.StatusOK,
	}
	for _, opt := range opts {
		opt(f)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/stations", f.handleList)
	mux.HandleFunc("/detail/", f.handleDetail)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func withFailing(ids ...int) func(*fakeFeed) {
	return func(f *fakeFeed) {
		for _, id := range ids {
			f.failIDs[id] = true
		}
	}
}

func withListStatus(code int) func(*fakeFeed) {
	return func(f *fakeFeed) { f.listStatus = code }
}

func (f *fakeFeed) URL() string { return f.server.URL + "/stations" }

func (f *fakeFeed) handleList(w http.ResponseWriter, r *http.Request) {
	f.listCalls.Add(1)
	if f.listStatus != http.StatusOK {
		w.WriteHeader(f.listStatus)
		return
	}

	features := make([]map[string]any, 0, f.stationCount)
	for i := 1; i <= f.stationCount; i++ {
		features = append(features, map[string]any{
			"type": "Feature",
			"properties": map[string]any{
				"fid":                i,
				"weather_station_en": fmt.Sprintf("Station %d", i),
				"weather_station_tc": fmt.Sprintf("站 %d", i),
				"weather_station_sc": fmt.Sprintf("站 %d", i),
				"url":                fmt.Sprintf("%s/detail/%d", f.server.URL, i),
			},
			"geometry": map[string]any{
				"type":        "Point",
				"coordinates": []float64{114.0 + float64(i)/100, 22.0 + float64(i)/100},
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	})
}

func (f *fakeFeed) handleDetail(w http.ResponseWriter, r *http.Request) {
	f.detailCalls.Add(1)
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/detail/"))
	if err != nil || f.failIDs[id] {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{
		"Temperature": {"Value": "%d.5", "Unit": "C"},
		"UV_Index": {"Value": "3", "Intensity_En": "moderate", "Intensity_Tc": "中等", "Intensity_Sc": "中等",
			"Record_Desc_En": "past hour", "Record_Desc_Tc": "過去一小時", "Record_Desc_Sc": "过去一小时"},
		"Record_Time_Year": "2024", "Record_Time_Month": "06", "Record_Time_Day": "01",
		"Record_Time_Hour": "12", "Record_Time_Minute": "00", "Record_Time_Timezone": "HKT"
	}`, 20+id)
}
