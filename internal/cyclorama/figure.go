package cyclorama

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// DefaultFigureScale maps one texture pixel to one centimetre.
const DefaultFigureScale float32 = 0.01

// FigureParams declares a painted cut-out figure standing on the stage.
type FigureParams struct {
	Texture string `json:"texture" yaml:"texture" toml:"texture"`
	// Width and Height are the texture size in pixels.
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
	// Scale is meters per pixel. 0 means DefaultFigureScale.
	Scale float32 `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	// Position is where the feet rest, relative to the stage centre floor.
	Position math.Vec3 `json:"position" yaml:"position" toml:"position"`
	Rotation float32   `json:"rotation,omitempty" yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	// Opacity in [0, 1]; nil means fully opaque.
	Opacity *float32 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

func (p FigureParams) scale() float32 {
	if p.Scale == 0 {
		return DefaultFigureScale
	}
	return p.Scale
}

func (p FigureParams) validate(i int) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: figure %d is %dx%d px", ErrInvalidDimensions, i, p.Width, p.Height)
	}
	if s := p.scale(); !(s > 0) || math32.IsInf(s, 0) {
		return fmt.Errorf("%w: figure %d scale %v", ErrInvalidDimensions, i, p.Scale)
	}
	if p.Opacity != nil && !(*p.Opacity >= 0 && *p.Opacity <= 1) {
		return fmt.Errorf("%w: figure %d opacity %v", ErrInvalidDimensions, i, *p.Opacity)
	}
	return nil
}

func (p FigureParams) clone() FigureParams {
	if p.Opacity != nil {
		o := *p.Opacity
		p.Opacity = &o
	}
	return p
}

// Figure is an upright textured plane. Center is the middle of the plane,
// half its height above the feet.
type Figure struct {
	Center   math.Vec3 `json:"center" yaml:"center"`
	Width    float32   `json:"width" yaml:"width"`
	Height   float32   `json:"height" yaml:"height"`
	Rotation float32   `json:"rotation" yaml:"rotation"`
	Visible  bool      `json:"visible" yaml:"visible"`
	Material Material  `json:"material" yaml:"material"`
}

// NewFigure sizes a figure from its texture. It starts opaque with its feet
// at the origin.
func NewFigure(texture string, widthPx, heightPx int, scale float32) Figure {
	f := Figure{
		Width:    float32(widthPx) * scale,
		Height:   float32(heightPx) * scale,
		Material: Material{Color: FigureColor, Texture: texture},
	}
	f.SetOpacity(1)
	f.SetPosition(math.Vec3{})
	return f
}

// Position returns the point the feet rest on.
func (f Figure) Position() math.Vec3 {
	return math.Vec3{X: f.Center.X, Y: f.Center.Y - f.Height/2, Z: f.Center.Z}
}

// SetPosition stands the figure with its feet at p.
func (f *Figure) SetPosition(p math.Vec3) {
	f.Center = math.Vec3{X: p.X, Y: p.Y + f.Height/2, Z: p.Z}
}

// Opacity returns the current opacity.
func (f Figure) Opacity() float32 {
	return f.Material.AlphaTop
}

// SetOpacity fades the whole figure. A fully transparent figure is hidden.
func (f *Figure) SetOpacity(v float32) {
	f.Material.AlphaBottom, f.Material.AlphaTop = v, v
	f.Visible = v != 0
}

func figures(d Descriptor) []Figure {
	if len(d.figures) == 0 {
		return nil
	}
	out := make([]Figure, len(d.figures))
	for i, p := range d.figures {
		f := NewFigure(p.Texture, p.Width, p.Height, p.scale())
		f.SetPosition(math.Vec3{X: p.Position.X, Y: d.StageHeight + p.Position.Y, Z: p.Position.Z})
		f.Rotation = p.Rotation
		if p.Opacity != nil {
			f.SetOpacity(*p.Opacity)
		}
		out[i] = f
	}
	return out
}
