package core

import "math"

const earthRadiusMeters = 6371 * 1000

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceTo returns the great-circle (haversine) distance to `other` in meters.
func (l Location) DistanceTo(other Location) float64 {
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180
	dLng := (other.Longitude - l.Longitude) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(l.Latitude*math.Pi/180)*math.Cos(other.Latitude*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
