package domain

// Unavailable is the upstream marker for a value that the station did not report.
const Unavailable = "//"

// IsAvailable reports whether an upstream field carries a real value.
func IsAvailable(v string) bool {
	return v != "" && v != Unavailable
}

// Temperature is passed through from the station detail document as-is.
type Temperature struct {
	Value string `json:"Value"`
	Unit  string `json:"Unit"`
}

// UVIndex is passed through from the station detail document as-is.
type UVIndex struct {
	Value        string `json:"Value"`
	IntensityEn  string `json:"Intensity_En"`
	IntensityTc  string `json:"Intensity_Tc"`
	IntensitySc  string `json:"Intensity_Sc"`
	RecordDescEn string `json:"Record_Desc_En"`
	RecordDescTc string `json:"Record_Desc_Tc"`
	RecordDescSc string `json:"Record_Desc_Sc"`
}

// RecordTime is the observation time as reported by the station, one string per component.
type RecordTime struct {
	Year     string `json:"year"`
	Month    string `json:"month"`
	Day      string `json:"day"`
	Hour     string `json:"hour"`
	Minute   string `json:"minute"`
	Timezone string `json:"timezone"`
}

// Reading is the weather snapshot for one station.
// A Reading with Error set carries no measurements.
type Reading struct {
	Station     Station      `json:"station"`
	Temperature *Temperature `json:"temperature,omitempty"`
	UVIndex     *UVIndex     `json:"uvIndex,omitempty"`
	RecordTime  *RecordTime  `json:"recordTime,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Failed reports whether the reading represents a per-station fetch failure.
func (r Reading) Failed() bool {
	return r.Error != ""
}

// FailedReading builds the placeholder returned for a station whose fetch failed.
func FailedReading(station Station) Reading {
	return Reading{
		Station: station,
		Error:   "Failed to fetch data",
	}
}
