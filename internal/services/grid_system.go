package services

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"

	"geo-grid/internal/domain"
)

var (
	ErrInvalidStep = errors.New("grid step must be a positive finite number")
	ErrOutOfBounds = errors.New("coordinates outside grid surface")
)

// GridSystem partitions a rectangular surface into fixed-size cells and
// computes them on demand. Nothing is materialized; every query is a pure
// function of the configuration and its arguments, so a GridSystem is safe
// for concurrent use once constructed.
//
// Cell (i, j) has its origin at bottom_left + (i*latStep, j*lonStep). Cells in
// the last row and column are clipped to the surface's top-right corner.
type GridSystem struct {
	surface domain.Surface
	latStep float64
	lonStep float64
	rows    int
	cols    int
	logger  *slog.Logger
}

type Option func(*GridSystem)

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *GridSystem) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGridSystem(surface domain.Surface, latStep, lonStep float64, opts ...Option) (*GridSystem, error) {
	if !validStep(latStep) {
		return nil, fmt.Errorf("new grid system: lat step %v: %w", latStep, ErrInvalidStep)
	}
	if !validStep(lonStep) {
		return nil, fmt.Errorf("new grid system: lon step %v: %w", lonStep, ErrInvalidStep)
	}

	g := &GridSystem{
		surface: surface,
		latStep: latStep,
		lonStep: lonStep,
		rows:    cellCount(surface.Height(), latStep),
		cols:    cellCount(surface.Width(), lonStep),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func validStep(step float64) bool {
	return step > 0 && !math.IsInf(step, 1)
}

func (g *GridSystem) Surface() domain.Surface { return g.surface }
func (g *GridSystem) LatStep() float64        { return g.latStep }
func (g *GridSystem) LonStep() float64        { return g.lonStep }

// Rows is the number of cell rows along the latitude axis.
func (g *GridSystem) Rows() int { return g.rows }

// Cols is the number of cell columns along the longitude axis.
func (g *GridSystem) Cols() int { return g.cols }

func (g *GridSystem) CellCount() int { return g.rows * g.cols }

// CellAt returns the cell containing (lat, lon). The second result is false
// when the point lies outside the half-open surface [bottom_left, top_right).
func (g *GridSystem) CellAt(lat, lon float64) (domain.GridCell, bool) {
	if !g.surface.Contains(domain.NewCoordinates(lat, lon)) || g.rows == 0 || g.cols == 0 {
		return domain.GridCell{}, false
	}

	bl := g.surface.BottomLeft
	i := min(cellIndex(bl.Lat, lat, g.latStep), g.rows-1)
	j := min(cellIndex(bl.Lon, lon, g.lonStep), g.cols-1)

	return g.cell(i, j, g.surface.TopRight), true
}

// AllCells yields every cell of the surface in row-major order: latitude
// ascending as the outer axis, longitude ascending as the inner axis.
// Each range over the sequence starts again from the origin, and stopping
// early costs nothing for the cells that were not reached.
func (g *GridSystem) AllCells() iter.Seq[domain.GridCell] {
	return func(yield func(domain.GridCell) bool) {
		for i := 0; i < g.rows; i++ {
			for j := 0; j < g.cols; j++ {
				if !yield(g.cell(i, j, g.surface.TopRight)) {
					return
				}
			}
		}
	}
}

// CellsForSurface returns the rows of grid-aligned cells needed to cover in,
// ordered by latitude and then longitude. The last cell of each row and
// column is clipped to in's top-right corner.
//
// An input that is not fully inside the grid surface is logged and clamped
// to the overlap; an input with no overlap yields an empty table.
func (g *GridSystem) CellsForSurface(in domain.Surface) [][]domain.GridCell {
	target := in
	if !g.surface.ContainsSurface(in) {
		g.logger.Warn("input surface is not fully contained within the grid surface, clamping",
			"input", in.String(),
			"grid", g.surface.String(),
		)

		clamped, ok := g.surface.Intersect(in)
		if !ok {
			return [][]domain.GridCell{}
		}
		target = clamped
	}

	bl := g.surface.BottomLeft
	rowStart := cellIndex(bl.Lat, target.BottomLeft.Lat, g.latStep)
	colStart := cellIndex(bl.Lon, target.BottomLeft.Lon, g.lonStep)
	rowEnd := min(cellCount(target.TopRight.Lat-bl.Lat, g.latStep), g.rows)
	colEnd := min(cellCount(target.TopRight.Lon-bl.Lon, g.lonStep), g.cols)

	if rowStart >= rowEnd || colStart >= colEnd {
		return [][]domain.GridCell{}
	}

	table := make([][]domain.GridCell, 0, rowEnd-rowStart)
	for i := rowStart; i < rowEnd; i++ {
		row := make([]domain.GridCell, 0, colEnd-colStart)
		for j := colStart; j < colEnd; j++ {
			row = append(row, g.cell(i, j, target.TopRight))
		}
		table = append(table, row)
	}

	return table
}

// cell builds cell (i, j). Its far corner is the next grid line, clipped to
// limit; the last row and column of the grid extend to limit so that a
// sliver thinner than snapEpsilon steps still belongs to a cell.
func (g *GridSystem) cell(i, j int, limit domain.Coordinates) domain.GridCell {
	bl := g.surface.BottomLeft
	originLat := bl.Lat + float64(i)*g.latStep
	originLon := bl.Lon + float64(j)*g.lonStep

	farLat := math.Min(bl.Lat+float64(i+1)*g.latStep, limit.Lat)
	if i == g.rows-1 {
		farLat = limit.Lat
	}
	farLon := math.Min(bl.Lon+float64(j+1)*g.lonStep, limit.Lon)
	if j == g.cols-1 {
		farLon = limit.Lon
	}

	return domain.GridCell{
		Surface: domain.NewSurface(
			domain.NewCoordinates(originLat, originLon),
			domain.NewCoordinates(farLat, farLon),
		),
		HashID: CellHash(originLat, originLon),
	}
}

func (g *GridSystem) String() string {
	return fmt.Sprintf("GridSystem(surface=%s, lat_step=%g, lon_step=%g)", g.surface, g.latStep, g.lonStep)
}
