package dto

import "geo-grid/internal/domain"

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CellResponse struct {
	HashID         string              `json:"hash_id"`
	BottomLeft     CoordinatesResponse `json:"bottom_left"`
	TopRight       CoordinatesResponse `json:"top_right"`
	Timezone       string              `json:"timezone,omitempty"`
	DistanceMeters *float64            `json:"distance_meters,omitempty"`
}

type ListCellsResponse struct {
	Cells []CellResponse `json:"cells"`
}

type CoverResponse struct {
	Rows  int              `json:"rows"`
	Cols  int              `json:"cols"`
	Cells [][]CellResponse `json:"cells"`
}

func NewCoordinatesResponse(c domain.Coordinates) CoordinatesResponse {
	return CoordinatesResponse{Lat: c.Lat, Lon: c.Lon}
}

func NewCellResponse(c domain.GridCell) CellResponse {
	return CellResponse{
		HashID:     c.HashID,
		BottomLeft: NewCoordinatesResponse(c.Surface.BottomLeft),
		TopRight:   NewCoordinatesResponse(c.Surface.TopRight),
	}
}

func NewNearbyCellResponse(c domain.GridCell, distanceMeters float64) CellResponse {
	r := NewCellResponse(c)
	r.DistanceMeters = &distanceMeters
	return r
}

func NewCoverResponse(table [][]domain.GridCell) CoverResponse {
	resp := CoverResponse{Rows: len(table), Cells: make([][]CellResponse, 0, len(table))}
	for _, row := range table {
		out := make([]CellResponse, 0, len(row))
		for _, c := range row {
			out = append(out, NewCellResponse(c))
		}
		resp.Cols = max(resp.Cols, len(row))
		resp.Cells = append(resp.Cells, out)
	}
	return resp
}
