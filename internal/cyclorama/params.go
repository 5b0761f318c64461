package cyclorama

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrNoTextures        = errors.New("cyclorama: scene declares no panorama textures")
	ErrTileCount         = errors.New("cyclorama: texture count does not match columns x rows")
	ErrInvalidDimensions = errors.New("cyclorama: invalid dimensions")
	ErrUnknownPreset     = errors.New("cyclorama: unknown architectural preset")
	ErrInvalidColor      = errors.New("cyclorama: invalid color")
)

// Color is a 24-bit RGB color, written as "#rrggbb" in scene files.
type Color uint32

// RGB returns the channels in [0, 1].
func (c Color) RGB() (r, g, b float32) {
	return float32(c>>16&0xff) / 255, float32(c>>8&0xff) / 255, float32(c&0xff) / 255
}

// String returns the "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts "#rrggbb",
// "rrggbb" and "0xrrggbb".
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return fmt.Errorf("%w: %q", ErrInvalidColor, text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, text)
	}
	*c = Color(v)
	return nil
}

// Band is a colored fade band at the bottom or top edge of the canvas. The
// offsets are relative to that edge, in meters.
type Band struct {
	Color       Color   `json:"color" yaml:"color" toml:"color"`
	StartOffset float32 `json:"start_offset" yaml:"start_offset" toml:"start_offset"`
	EndOffset   float32 `json:"end_offset" yaml:"end_offset" toml:"end_offset"`
}

// Params are the declarative inputs for one scene.
type Params struct {
	Preset Preset `json:"preset" yaml:"preset" toml:"preset"`
	// Architecture replaces the preset dimensions when set.
	Architecture *Architecture `json:"architecture,omitempty" yaml:"architecture,omitempty" toml:"architecture,omitempty"`

	// PanoramaURLs lists the tiles row by row, top row first.
	PanoramaURLs []string `json:"panorama_urls" yaml:"panorama_urls" toml:"panorama_urls"`
	// ImageWidths are the pixel widths of the tiles in one row. Every row is
	// assumed to have the same total width.
	ImageWidths []int `json:"image_widths" yaml:"image_widths" toml:"image_widths"`
	// ImageHeights are the pixel heights of each row, top row first.
	ImageHeights []int `json:"image_heights" yaml:"image_heights" toml:"image_heights"`

	// HorizonRatio is the fraction of the canvas height, from its bottom
	// edge, placed at the stage floor. Values outside [0, 1] are allowed.
	HorizonRatio float32 `json:"horizon_ratio" yaml:"horizon_ratio" toml:"horizon_ratio"`
	// HeightScale corrects stitching distortion in some scans. 0 means 1.
	HeightScale float32 `json:"height_scale,omitempty" yaml:"height_scale,omitempty" toml:"height_scale,omitempty"`
	// InitialYaw is the camera azimuth when the scene opens, in radians.
	InitialYaw float32 `json:"initial_yaw" yaml:"initial_yaw" toml:"initial_yaw"`

	Ground Band `json:"ground" yaml:"ground" toml:"ground"`
	Sky    Band `json:"sky" yaml:"sky" toml:"sky"`

	// Figures stand on the stage among the visitors.
	Figures []FigureParams `json:"figures,omitempty" yaml:"figures,omitempty" toml:"figures,omitempty"`
}

// architecture resolves the preset or the explicit override.
func (p Params) architecture() (Architecture, error) {
	if p.Architecture != nil {
		return *p.Architecture, nil
	}
	return ArchitectureFor(p.Preset)
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	if p.Architecture != nil {
		a := *p.Architecture
		p.Architecture = &a
	}
	p.PanoramaURLs = slices.Clone(p.PanoramaURLs)
	p.ImageWidths = slices.Clone(p.ImageWidths)
	p.ImageHeights = slices.Clone(p.ImageHeights)
	if p.Figures != nil {
		figures := make([]FigureParams, len(p.Figures))
		for i, f := range p.Figures {
			figures[i] = f.clone()
		}
		p.Figures = figures
	}
	return p
}

// heightScale returns HeightScale with the zero value mapped to 1.
func (p Params) heightScale() float32 {
	if p.HeightScale == 0 {
		return 1
	}
	return p.HeightScale
}

func sumPixels(dims []int, what string) (int, error) {
	total := 0
	for i, d := range dims {
		if d <= 0 {
			return 0, fmt.Errorf("%w: %s[%d] = %d", ErrInvalidDimensions, what, i, d)
		}
		if total+d < total {
			return 0, fmt.Errorf("%w: %s overflows", ErrInvalidDimensions, what)
		}
		total += d
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: no %s", ErrInvalidDimensions, what)
	}
	return total, nil
}
