package domain

// Immutable geographic coordinates (latitude, longitude) of a geocoded city.
type Coordinates struct {
	Lat float64
	Lon float64
}
