// Package maplink builds and parses map-provider URLs that carry a
// coordinate. It never performs network requests; short links must be
// resolved by the caller before parsing.
package maplink

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"geo-grid/internal/domain"
)

var ErrNoCoordinates = errors.New("url does not contain coordinates")

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://[^/]*google[^/]*/maps/place/[^/]+/@(-?[\d.]+),(-?[\d.]+),[\d.]+z(/.*)?$`),
	regexp.MustCompile(`^https://[^/]*google[^/]*/maps/@(-?[\d.]+),(-?[\d.]+).*$`),
}

// FormatURL returns a map URL centred on c.
func FormatURL(c domain.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/@%s,%s", formatDegrees(c.Lat), formatDegrees(c.Lon))
}

// FormatQueryURL returns a map URL that drops a pin at c.
func FormatQueryURL(c domain.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps?z=12&t=m&q=loc:%s+%s", formatDegrees(c.Lat), formatDegrees(c.Lon))
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Parse extracts the coordinate from a place or viewport map URL.
func Parse(url string) (domain.Coordinates, error) {
	for _, re := range urlPatterns {
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}

		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("parse map url: latitude %q: %w", m[1], err)
		}
		lon, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("parse map url: longitude %q: %w", m[2], err)
		}

		return domain.NewCoordinates(lat, lon), nil
	}

	return domain.Coordinates{}, fmt.Errorf("parse map url %q: %w", url, ErrNoCoordinates)
}
