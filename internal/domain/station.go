package domain

// Station represents a weather observation point in the feed
type Station struct {
	ID     int    `json:"id"`
	NameEN string `json:"name_en"`
	NameTC string `json:"name_tc"`
	NameSC string `json:"name_sc"`
	// Coordinates are [longitude, latitude], in the order the feed uses.
	Coordinates [2]float64 `json:"coordinates"`
	URL         string     `json:"url"`
}

// Lon returns the station longitude
func (s Station) Lon() float64 { return s.Coordinates[0] }

// Lat returns the station latitude
func (s Station) Lat() float64 { return s.Coordinates[1] }

// FindStation returns the station with the given id from list
func FindStation(list []Station, id int) (Station, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// NearestStationResponse is returned by the nearest-station lookup
type NearestStationResponse struct {
	Station    Station `json:"station"`
	DistanceKM float64 `json:"distance_km"`
}
