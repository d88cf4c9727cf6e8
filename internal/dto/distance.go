package dto

type DistanceResponse struct {
	From            CoordinatesResponse `json:"from"`
	To              CoordinatesResponse `json:"to"`
	GeodesicMeters  float64             `json:"geodesic_meters"`
	HaversineMeters float64             `json:"haversine_meters"`
	BearingDegrees  float64             `json:"bearing_degrees"`
}

type LinkResponse struct {
	Coordinates CoordinatesResponse `json:"coordinates"`
	URL         string              `json:"url"`
	QueryURL    string              `json:"query_url"`
}
