package services

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellIndex(t *testing.T) {
	tests := []struct {
		name string
		base float64
		p    float64
		step float64
		want int
	}{
		{name: "zero offset", base: 0, p: 0, step: 0.001, want: 0},
		{name: "mid cell", base: 0, p: 0.0015, step: 0.001, want: 1},
		{name: "exact binary line", base: 0, p: 0.5, step: 0.25, want: 2},
		{name: "decimal line with quotient above", base: 22.15, p: 22.283, step: 0.001, want: 133},
		{name: "decimal line with quotient below", base: 113.8, p: 114.16, step: 0.001, want: 360},
		{name: "line rounds above the point", base: 0, p: 0.3, step: 0.1, want: 2},
		{name: "quotient rounds onto a line above the point", base: 38.27, p: 109.17, step: 0.1, want: 708},
		{name: "just below a line", base: 0, p: 0.001 - 1e-13, step: 0.001, want: 0},
		{name: "below a line", base: 0, p: 0.0009999, step: 0.001, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellIndex(tt.base, tt.p, tt.step)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, tt.base+float64(got)*tt.step, tt.p)
			assert.Greater(t, tt.base+float64(got+1)*tt.step, tt.p)
		})
	}
}

func TestCellIndexBracketsPoint(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	steps := []float64{0.001, 0.003, 0.1, 0.25, 0.0007}

	for range 10000 {
		base := float64(r.IntN(20000)-10000) / 100
		step := steps[r.IntN(len(steps))]
		p := base + float64(r.IntN(5000))*step
		if r.IntN(2) == 0 {
			p += r.Float64() * step
		}
		if p < base {
			continue
		}

		k := cellIndex(base, p, step)
		if !assert.LessOrEqual(t, base+float64(k)*step, p, "base=%v p=%v step=%v", base, p, step) {
			return
		}
		if !assert.Greater(t, base+float64(k+1)*step, p, "base=%v p=%v step=%v", base, p, step) {
			return
		}
	}
}

func TestCellCount(t *testing.T) {
	tests := []struct {
		name   string
		extent float64
		step   float64
		want   int
	}{
		{name: "hong kong latitude", extent: 22.60 - 22.15, step: 0.001, want: 450},
		{name: "hong kong longitude", extent: 114.45 - 113.80, step: 0.001, want: 650},
		{name: "partial last cell", extent: 1, step: 0.3, want: 4},
		{name: "exact fit", extent: 1, step: 0.25, want: 4},
		{name: "zero extent", extent: 0, step: 0.1, want: 0},
		{name: "negative extent", extent: -1, step: 0.1, want: 0},
		{name: "sliver below epsilon", extent: 1e-15, step: 0.1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellCount(tt.extent, tt.step))
		})
	}
}
