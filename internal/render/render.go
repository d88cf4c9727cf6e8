// Package render writes grid cells and measurements to a stream in one of
// the supported output formats.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"geo-grid/internal/domain"
	"geo-grid/internal/dto"
	"geo-grid/internal/services"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

var (
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrUnsupportedFormat = errors.New("output format not supported for this result")
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatGeoJSON, FormatPolyline:
		return f, nil
	default:
		return "", fmt.Errorf("parse format %q: %w", s, ErrUnknownFormat)
	}
}

// Renderer writes results to w in a fixed format.
type Renderer struct {
	w      io.Writer
	format Format
}

func New(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

func (r *Renderer) Format() Format { return r.format }

// Cell writes a single cell. timezone is optional.
func (r *Renderer) Cell(c domain.GridCell, timezone string) error {
	switch r.format {
	case FormatText:
		if err := writeCellText(r.w, c); err != nil {
			return err
		}
		if timezone != "" {
			_, err := fmt.Fprintf(r.w, "  Timezone: %s\n", timezone)
			return err
		}
		return nil
	case FormatJSON:
		resp := dto.NewCellResponse(c)
		resp.Timezone = timezone
		return writeJSON(r.w, resp)
	default:
		return r.Cells([]domain.GridCell{c})
	}
}

// Cells writes a flat list of cells.
func (r *Renderer) Cells(cells []domain.GridCell) error {
	switch r.format {
	case FormatText:
		for _, c := range cells {
			if err := writeCellText(r.w, c); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		resp := dto.ListCellsResponse{Cells: make([]dto.CellResponse, 0, len(cells))}
		for _, c := range cells {
			resp.Cells = append(resp.Cells, dto.NewCellResponse(c))
		}
		return writeJSON(r.w, resp)
	case FormatGeoJSON:
		return writeGeoJSON(r.w, cells, nil)
	case FormatPolyline:
		return writePolylines(r.w, cells)
	default:
		return fmt.Errorf("render cells: %q: %w", r.format, ErrUnknownFormat)
	}
}

// Table writes a coverage table row by row. Non-tabular formats flatten it.
func (r *Renderer) Table(table [][]domain.GridCell) error {
	switch r.format {
	case FormatText:
		for _, row := range table {
			hashes := make([]string, 0, len(row))
			for _, c := range row {
				hashes = append(hashes, c.HashID)
			}
			if _, err := fmt.Fprintf(r.w, "[%s]\n", strings.Join(hashes, ", ")); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return writeJSON(r.w, dto.NewCoverResponse(table))
	default:
		var flat []domain.GridCell
		for _, row := range table {
			flat = append(flat, row...)
		}
		return r.Cells(flat)
	}
}

// Nearby writes radius search results, keeping their order.
func (r *Renderer) Nearby(cells []services.NearbyCell) error {
	switch r.format {
	case FormatText:
		for _, n := range cells {
			if _, err := fmt.Fprintf(r.w, "%s\t%.3f m\n", n.Cell.HashID, n.DistanceMeters); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		resp := dto.ListCellsResponse{Cells: make([]dto.CellResponse, 0, len(cells))}
		for _, n := range cells {
			resp.Cells = append(resp.Cells, dto.NewNearbyCellResponse(n.Cell, n.DistanceMeters))
		}
		return writeJSON(r.w, resp)
	case FormatGeoJSON:
		flat := make([]domain.GridCell, 0, len(cells))
		dist := make([]float64, 0, len(cells))
		for _, n := range cells {
			flat = append(flat, n.Cell)
			dist = append(dist, n.DistanceMeters)
		}
		return writeGeoJSON(r.w, flat, dist)
	case FormatPolyline:
		flat := make([]domain.GridCell, 0, len(cells))
		for _, n := range cells {
			flat = append(flat, n.Cell)
		}
		return writePolylines(r.w, flat)
	default:
		return fmt.Errorf("render nearby: %q: %w", r.format, ErrUnknownFormat)
	}
}

func (r *Renderer) Distance(d dto.DistanceResponse) error {
	switch r.format {
	case FormatText:
		_, err := fmt.Fprintf(r.w,
			"From: (%g, %g)\nTo: (%g, %g)\nGeodesic: %.3f m\nHaversine: %.3f m\nBearing: %.6f deg\n",
			d.From.Lat, d.From.Lon, d.To.Lat, d.To.Lon, d.GeodesicMeters, d.HaversineMeters, d.BearingDegrees)
		return err
	case FormatJSON:
		return writeJSON(r.w, d)
	default:
		return fmt.Errorf("render distance: %q: %w", r.format, ErrUnsupportedFormat)
	}
}

func (r *Renderer) Link(l dto.LinkResponse) error {
	switch r.format {
	case FormatText:
		_, err := fmt.Fprintf(r.w, "%s\n%s\n", l.URL, l.QueryURL)
		return err
	case FormatJSON:
		return writeJSON(r.w, l)
	default:
		return fmt.Errorf("render link: %q: %w", r.format, ErrUnsupportedFormat)
	}
}

func writeCellText(w io.Writer, c domain.GridCell) error {
	_, err := fmt.Fprintf(w, "Hash ID: %s\n  Coordinates: %s to %s\n",
		c.HashID, c.Surface.BottomLeft, c.Surface.TopRight)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// writeGeoJSON writes one polygon feature per cell. distances, when non-nil,
// is parallel to cells.
func writeGeoJSON(w io.Writer, cells []domain.GridCell, distances []float64) error {
	fc := geojson.NewFeatureCollection()
	for i, c := range cells {
		f := geojson.NewFeature(c.Polygon())
		f.Properties["hash_id"] = c.HashID
		if distances != nil {
			f.Properties["distance_meters"] = distances[i]
		}
		fc.Append(f)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// writePolylines writes one "hash<TAB>encoded ring" line per cell.
func writePolylines(w io.Writer, cells []domain.GridCell) error {
	for _, c := range cells {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.HashID, EncodeRing(c)); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRing encodes the closed footprint ring of c as a polyline string.
func EncodeRing(c domain.GridCell) string {
	ring := c.Polygon()[0]
	coords := make([][]float64, 0, len(ring))
	for _, p := range ring {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
	}
	return string(polyline.EncodeCoords(coords))
}
