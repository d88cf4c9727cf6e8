package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"geo-grid/internal/adapters/distance"
	"geo-grid/internal/adapters/timezone"
	"geo-grid/internal/domain"
	"geo-grid/internal/dto"
	"geo-grid/internal/maplink"
	"geo-grid/internal/platform/obs"
	"geo-grid/internal/ports"
	"geo-grid/internal/services"
)

func newCellCmd(a *app) *cobra.Command {
	var (
		lat, lon float64
		url      string
		tz       bool
	)

	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Resolve the cell containing a point or map link",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			defer obs.Time(ctx, "gridtool.cell")(&err)

			point, err := pointFromFlags(lat, lon, url)
			if err != nil {
				return err
			}

			c, ok := a.grid.CellAt(point.Lat, point.Lon)
			if !ok {
				return fmt.Errorf("cell: %s: %w", point, services.ErrOutOfBounds)
			}

			var zone string
			if tz {
				zone, err = lookupTimezone(point)
				if err != nil {
					return fmt.Errorf("cell: %w", err)
				}
			}

			return a.out.Cell(c, zone)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lon, "lon", 0, "longitude in degrees")
	f.StringVar(&url, "url", "", "map link to read the point from")
	f.BoolVar(&tz, "tz", false, "include the IANA timezone of the point")
	pointFlagGroups(cmd)
	return cmd
}

func newCellsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "cells",
		Short: "Enumerate grid cells in row-major order",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			defer obs.Time(ctx, "gridtool.cells")(&err)

			if limit < 0 {
				return usageError("cells: --limit must not be negative")
			}

			n := limit
			if n == 0 {
				n = a.grid.CellCount()
			}

			out := make([]domain.GridCell, 0, min(n, a.grid.CellCount()))
			for c := range a.grid.AllCells() {
				if len(out) == n {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				out = append(out, c)
			}

			return a.out.Cells(out)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "number of cells to print, 0 for all")
	return cmd
}

func newCoverCmd(a *app) *cobra.Command {
	var blLat, blLon, trLat, trLon float64

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "List the cells covering a surface, row by row",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer obs.Time(cmd.Context(), "gridtool.cover")(&err)

			in := domain.NewSurface(domain.NewCoordinates(blLat, blLon), domain.NewCoordinates(trLat, trLon))
			if err := validateAll(in.BottomLeft, in.TopRight); err != nil {
				return fmt.Errorf("cover: %w", err)
			}

			table := a.grid.CellsForSurface(in)
			a.logger.Debug("cover computed", "surface", in.String(), "rows", len(table))

			return a.out.Table(table)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&blLat, "bl-lat", 0, "bottom-left latitude")
	f.Float64Var(&blLon, "bl-lon", 0, "bottom-left longitude")
	f.Float64Var(&trLat, "tr-lat", 0, "top-right latitude")
	f.Float64Var(&trLon, "tr-lon", 0, "top-right longitude")
	for _, name := range []string{"bl-lat", "bl-lon", "tr-lat", "tr-lon"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDistanceCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Measure the distance between two points",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			defer obs.Time(ctx, "gridtool.distance")(&err)

			origin, err := parseLatLon(from)
			if err != nil {
				return fmt.Errorf("distance: --from: %w", err)
			}
			destination, err := parseLatLon(to)
			if err != nil {
				return fmt.Errorf("distance: --to: %w", err)
			}

			geo, err := distance.NewGeodesicDistanceProvider().GetDistance(ctx, origin, destination)
			if err != nil {
				return fmt.Errorf("distance: geodesic: %w", err)
			}
			sphere, err := distance.NewHaversineDistanceProvider().GetDistance(ctx, origin, destination)
			if err != nil {
				return fmt.Errorf("distance: haversine: %w", err)
			}

			return a.out.Distance(dto.DistanceResponse{
				From:            dto.NewCoordinatesResponse(origin),
				To:              dto.NewCoordinatesResponse(destination),
				GeodesicMeters:  geo.DistanceMeters,
				HaversineMeters: sphere.DistanceMeters,
				BearingDegrees:  geo.BearingDegrees,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", "", "origin as lat,lon")
	f.StringVar(&to, "to", "", "destination as lat,lon")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newNearCmd(a *app) *cobra.Command {
	var (
		lat, lon, radius float64
		metric           string
	)

	cmd := &cobra.Command{
		Use:   "near",
		Short: "List the cells within a radius of a point",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			defer obs.Time(ctx, "gridtool.near")(&err)

			point, err := pointFromFlags(lat, lon, "")
			if err != nil {
				return err
			}

			var provider ports.DistanceProvider
			switch metric {
			case "geodesic":
				provider = distance.NewGeodesicDistanceProvider()
			case "haversine":
				provider = distance.NewHaversineDistanceProvider()
			default:
				return usageError("near: unknown --metric %q", metric)
			}

			cells, err := services.CellsWithinRadius(ctx, a.grid, point, radius, provider)
			if err != nil {
				return err
			}

			return a.out.Nearby(cells)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lon, "lon", 0, "longitude in degrees")
	f.Float64Var(&radius, "radius", 100, "search radius in meters")
	f.StringVar(&metric, "metric", "geodesic", "distance metric: geodesic, haversine")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func newLinkCmd(a *app) *cobra.Command {
	var (
		lat, lon float64
		url      string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Format map links for a point",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer obs.Time(cmd.Context(), "gridtool.link")(&err)

			point, err := pointFromFlags(lat, lon, url)
			if err != nil {
				return err
			}

			return a.out.Link(dto.LinkResponse{
				Coordinates: dto.NewCoordinatesResponse(point),
				URL:         maplink.FormatURL(point),
				QueryURL:    maplink.FormatQueryURL(point),
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lon, "lon", 0, "longitude in degrees")
	f.StringVar(&url, "url", "", "map link to normalize")
	pointFlagGroups(cmd)
	return cmd
}

// pointFlagGroups makes a command take its point either from --url or from
// --lat and --lon together.
func pointFlagGroups(cmd *cobra.Command) {
	cmd.MarkFlagsOneRequired("lat", "url")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsMutuallyExclusive("url", "lat")
	cmd.MarkFlagsMutuallyExclusive("url", "lon")
}

// pointFromFlags reads a point from url when given, otherwise from lat and
// lon. Flag presence is checked by the command's flag groups.
func pointFromFlags(lat, lon float64, url string) (domain.Coordinates, error) {
	if url != "" {
		c, err := maplink.Parse(url)
		if err != nil {
			return domain.Coordinates{}, err
		}
		return c, c.Validate()
	}

	c := domain.NewCoordinates(lat, lon)
	return c, c.Validate()
}

func validateAll(cs ...domain.Coordinates) error {
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// parseLatLon parses "lat,lon".
func parseLatLon(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, usageError("%q is not lat,lon", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}

	c := domain.NewCoordinates(lat, lon)
	return c, c.Validate()
}

func lookupTimezone(c domain.Coordinates) (string, error) {
	p, err := timezone.NewTzfProvider()
	if err != nil {
		return "", fmt.Errorf("load timezone finder: %w", err)
	}

	zone, err := p.GetTimezone(c.Lat, c.Lon)
	if err != nil {
		return "", fmt.Errorf("timezone for %s: %w", c, err)
	}
	return zone, nil
}
