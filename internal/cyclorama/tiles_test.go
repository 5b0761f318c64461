package cyclorama

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cyclorama/pkg/math"
)

func TestTilesFiveColumns(t *testing.T) {
	p := testParams()
	p.PanoramaURLs = []string{"0", "1", "2", "3", "4"}
	p.ImageWidths = []int{200, 200, 200, 200, 200}
	d, err := Build(p)
	require.NoError(t, err)

	tiles := d.Tiles()
	require.Len(t, tiles, 5)

	var sum float32
	for i, tile := range tiles {
		assert.Equal(t, i, tile.Column)
		assert.Equal(t, 0, tile.Row)
		assert.InDelta(t, float64(i)*2*gomath.Pi/5, tile.ThetaStart, 1e-5)
		assert.InDelta(t, 2*gomath.Pi/5, tile.ThetaLength, 1e-6)
		assert.Equal(t, d.PanoramaHeight, tile.Height)
		assert.Equal(t, d.PanoramaY, tile.Y)
		sum += tile.ThetaLength
	}
	assert.InDelta(t, 2*gomath.Pi, sum, 1e-5)
	last := tiles[4]
	assert.InDelta(t, 2*gomath.Pi, last.ThetaStart+last.ThetaLength, 1e-5)
}

func TestTilesSingle(t *testing.T) {
	d, err := Build(testParams())
	require.NoError(t, err)

	tiles := d.Tiles()
	require.Len(t, tiles, 1)
	assert.Equal(t, TilePlacement{
		Index:       0,
		URL:         "a.jpg",
		ThetaStart:  0,
		ThetaLength: math.TwoPi,
		Height:      d.PanoramaHeight,
		Y:           d.PanoramaY,
	}, tiles[0])
}

func TestTilesRowsStackTopFirst(t *testing.T) {
	p := testParams()
	p.PanoramaURLs = []string{"top-l", "top-r", "mid-l", "mid-r", "bot-l", "bot-r"}
	p.ImageWidths = []int{500, 500}
	p.ImageHeights = []int{100, 50, 50}
	d, err := Build(p)
	require.NoError(t, err)

	tiles := d.Tiles()
	require.Len(t, tiles, 6)

	ph, py := d.PanoramaHeight, d.PanoramaY
	expect := []struct {
		row    int
		height float32
		y      float32
	}{
		{0, ph * 0.5, py + ph*0.5},
		{1, ph * 0.25, py + ph*0.25},
		{2, ph * 0.25, py},
	}
	for _, e := range expect {
		for col := 0; col < 2; col++ {
			tile := tiles[e.row*2+col]
			assert.Equal(t, e.row, tile.Row, tile.URL)
			assert.Equal(t, col, tile.Column, tile.URL)
			assert.InDelta(t, e.height, tile.Height, 1e-4, tile.URL)
			assert.InDelta(t, e.y, tile.Y, 1e-4, tile.URL)
		}
	}

	// Rows meet without gaps and the top row ends at the canvas top.
	assert.InDelta(t, tiles[0].Y, tiles[2].Y+tiles[2].Height, 1e-4)
	assert.InDelta(t, tiles[2].Y, tiles[4].Y+tiles[4].Height, 1e-4)
	assert.InDelta(t, py+ph, tiles[0].Y+tiles[0].Height, 1e-4)
}

func TestThetaAt(t *testing.T) {
	tests := []struct {
		name string
		p    math.Vec3
		want float64
	}{
		{"-Z", math.Vec3{Z: -1}, 0},
		{"+X", math.Vec3{X: 1}, gomath.Pi / 2},
		{"+Z", math.Vec3{Z: 1}, gomath.Pi},
		{"-X", math.Vec3{X: -1}, 3 * gomath.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ThetaAt(tt.p), 1e-5)
		})
	}
}

func TestTileAt(t *testing.T) {
	p := testParams()
	p.PanoramaURLs = []string{"tl", "tr", "bl", "br"}
	p.ImageWidths = []int{500, 500}
	p.ImageHeights = []int{100, 100}
	d, err := Build(p)
	require.NoError(t, err)

	mid := d.PanoramaY + d.PanoramaHeight/2
	tests := []struct {
		name  string
		theta float32
		y     float32
		want  string
		found bool
	}{
		{"top left", 0.1, mid + 1, "tl", true},
		{"bottom right", math.Pi + 0.1, mid - 1, "br", true},
		{"wrapped", math.TwoPi + 0.1, mid + 1, "tl", true},
		{"negative", -0.1, mid - 1, "br", true},
		{"canvas top edge", 0.1, d.PanoramaY + d.PanoramaHeight, "tl", true},
		{"canvas bottom edge", 0.1, d.PanoramaY, "bl", true},
		{"above", 0.1, d.PanoramaY + d.PanoramaHeight + 0.1, "", false},
		{"below", 0.1, d.PanoramaY - 0.1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, ok := d.TileAt(tt.theta, tt.y)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, tile.URL)
		})
	}
}
