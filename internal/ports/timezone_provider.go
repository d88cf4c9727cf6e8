package ports

// Port: resolves the IANA timezone name of a coordinate.
type TimezoneProvider interface {
	GetTimezone(latitude, longitude float64) (string, error)
}
