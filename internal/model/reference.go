package model

// ReferencePoint pairs a real-world coordinate with the game coordinate an
// operator measured at the same spot.
type ReferencePoint struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	GameX float64 `json:"gameX"`
	GameZ float64 `json:"gameZ"`
}
