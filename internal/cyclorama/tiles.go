package cyclorama

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// TilePlacement positions one source image on the canvas cylinder.
//
// Theta is measured around the cylinder from -Z towards +X, the way the
// renderer's cylinder segments are laid out once turned inside out.
type TilePlacement struct {
	Index  int    `json:"index" yaml:"index"`
	URL    string `json:"url" yaml:"url"`
	Column int    `json:"column" yaml:"column"`
	Row    int    `json:"row" yaml:"row"`

	ThetaStart  float32 `json:"theta_start" yaml:"theta_start"`
	ThetaLength float32 `json:"theta_length" yaml:"theta_length"`

	// Height is the vertical span and Y the height of the tile's bottom edge.
	Height float32 `json:"height" yaml:"height"`
	Y      float32 `json:"y" yaml:"y"`
}

// CenterY returns the height of the tile's middle.
func (t TilePlacement) CenterY() float32 {
	return t.Y + t.Height/2
}

// Tiles returns the placement of every texture, in texture order.
// Tiles in a row cover the full circle; rows stack without gaps from the
// canvas bottom to its top.
func (d Descriptor) Tiles() []TilePlacement {
	if len(d.urls) == 0 || d.Columns == 0 {
		return nil
	}

	total := 0
	for _, h := range d.urlHeights {
		total += h
	}
	// below[r] is the pixel height of the rows under row r.
	below := make([]int, len(d.urlHeights))
	for r := len(d.urlHeights) - 2; r >= 0; r-- {
		below[r] = below[r+1] + d.urlHeights[r+1]
	}

	thetaLength := math.TwoPi / float32(d.Columns)
	tiles := make([]TilePlacement, len(d.urls))
	for i, url := range d.urls {
		col, row := i%d.Columns, i/d.Columns
		tiles[i] = TilePlacement{
			Index:       i,
			URL:         url,
			Column:      col,
			Row:         row,
			ThetaStart:  thetaLength * float32(col),
			ThetaLength: thetaLength,
			Height:      d.PanoramaHeight * (float32(d.urlHeights[row]) / float32(total)),
			Y:           d.PanoramaHeight*(float32(below[row])/float32(total)) + d.PanoramaY,
		}
	}
	return tiles
}

// ThetaAt returns the canvas angle of a world point, in [0, 2π).
func ThetaAt(p math.Vec3) float32 {
	theta := math32.Atan2(p.X, -p.Z)
	if theta < 0 {
		theta += math.TwoPi
	}
	return theta
}

// TileAt returns the tile covering canvas angle theta at height y.
func (d Descriptor) TileAt(theta, y float32) (TilePlacement, bool) {
	if y < d.PanoramaY || y > d.PanoramaY+d.PanoramaHeight {
		return TilePlacement{}, false
	}
	tiles := d.Tiles()
	if len(tiles) == 0 {
		return TilePlacement{}, false
	}

	theta = math32.Mod(theta, math.TwoPi)
	if theta < 0 {
		theta += math.TwoPi
	}
	col := min(int(theta/(math.TwoPi/float32(d.Columns))), d.Columns-1)

	// Rows run top to bottom, so the first row whose bottom edge is at or
	// below y contains it.
	for row := 0; row < d.Rows; row++ {
		t := tiles[row*d.Columns+col]
		if y >= t.Y || row == d.Rows-1 {
			return t, true
		}
	}
	return TilePlacement{}, false
}
