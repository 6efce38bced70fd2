package domain

// StationCache holds the last fetched station list and per-station readings.
// Freshness is decided by a single timestamp shared by every slot.
type StationCache interface {
	// Fresh reports whether the shared timestamp is set and younger than the TTL
	Fresh() bool

	// Stations returns the cached list, or false when stale or never fetched
	Stations() ([]Station, bool)

	// Reading returns the cached reading for id, or false when stale or absent
	Reading(id int) (Reading, bool)

	// PutStations replaces the station list and stamps the cache
	PutStations(stations []Station)

	// PutReading replaces the reading for id and stamps the cache
	PutReading(id int, reading Reading)
}
