package cyclorama

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// Descriptor is the resolved geometry of one scene. Build returns a fresh
// value; the texture lists are private copies exposed through accessors so a
// descriptor cannot change after it is built.
type Descriptor struct {
	Preset Preset `json:"preset" yaml:"preset"`

	PanoramaRadius float32 `json:"panorama_radius" yaml:"panorama_radius"`
	PanoramaHeight float32 `json:"panorama_height" yaml:"panorama_height"`
	// PanoramaY is the height of the canvas bottom edge.
	PanoramaY float32 `json:"panorama_y" yaml:"panorama_y"`

	GroundYStart float32 `json:"ground_y_start" yaml:"ground_y_start"`
	GroundYEnd   float32 `json:"ground_y_end" yaml:"ground_y_end"`
	SkyYStart    float32 `json:"sky_y_start" yaml:"sky_y_start"`
	SkyYEnd      float32 `json:"sky_y_end" yaml:"sky_y_end"`

	// FloorY and RoofY close the rotunda below and above everything else.
	FloorY float32 `json:"floor_y" yaml:"floor_y"`
	RoofY  float32 `json:"roof_y" yaml:"roof_y"`

	StageRadius          float32 `json:"stage_radius" yaml:"stage_radius"`
	StageHeight          float32 `json:"stage_height" yaml:"stage_height"`
	UmbrellaRadius       float32 `json:"umbrella_radius" yaml:"umbrella_radius"`
	CeilingHeight        float32 `json:"ceiling_height" yaml:"ceiling_height"`
	RailingHeight        float32 `json:"railing_height" yaml:"railing_height"`
	RailingCount         int     `json:"railing_count" yaml:"railing_count"`
	RailingRadius        float32 `json:"railing_radius" yaml:"railing_radius"`
	RailingOnStageRadius float32 `json:"railing_on_stage_radius" yaml:"railing_on_stage_radius"`

	GroundColor Color   `json:"ground_color" yaml:"ground_color"`
	SkyColor    Color   `json:"sky_color" yaml:"sky_color"`
	InitialYaw  float32 `json:"initial_yaw" yaml:"initial_yaw"`

	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`

	urls       []string
	urlHeights []int
	figures    []FigureParams
}

// Build derives the scene geometry from its parameters. It is pure: the
// same params always give an identical descriptor.
func Build(p Params) (Descriptor, error) {
	arch, err := p.architecture()
	if err != nil {
		return Descriptor{}, err
	}
	if err := arch.validate(); err != nil {
		return Descriptor{}, err
	}
	if len(p.PanoramaURLs) == 0 {
		return Descriptor{}, ErrNoTextures
	}

	imageWidth, err := sumPixels(p.ImageWidths, "image width")
	if err != nil {
		return Descriptor{}, err
	}
	imageHeight, err := sumPixels(p.ImageHeights, "image height")
	if err != nil {
		return Descriptor{}, err
	}

	columns, rows := len(p.ImageWidths), len(p.ImageHeights)
	if len(p.PanoramaURLs) != columns*rows {
		return Descriptor{}, fmt.Errorf("%w: %d textures for %d columns x %d rows",
			ErrTileCount, len(p.PanoramaURLs), columns, rows)
	}

	scale := p.heightScale()
	if !finitePositive(scale) {
		return Descriptor{}, fmt.Errorf("%w: height scale %v", ErrInvalidDimensions, scale)
	}
	for i, f := range p.Figures {
		if err := f.validate(i); err != nil {
			return Descriptor{}, err
		}
	}

	// The canvas circumference spans the full image width, so its height
	// follows from the image aspect ratio.
	height := math.TwoPi * arch.PanoramaRadius * (float32(imageHeight) / float32(imageWidth)) * scale
	if !finitePositive(height) {
		return Descriptor{}, fmt.Errorf("%w: panorama height %v", ErrInvalidDimensions, height)
	}
	y := arch.StageHeight - height*p.HorizonRatio
	top := y + height

	d := Descriptor{
		Preset: p.Preset,

		PanoramaRadius: arch.PanoramaRadius,
		PanoramaHeight: height,
		PanoramaY:      y,

		GroundYStart: y + p.Ground.StartOffset,
		GroundYEnd:   y + p.Ground.EndOffset,
		SkyYStart:    top + p.Sky.StartOffset,
		SkyYEnd:      top + p.Sky.EndOffset,

		StageRadius:          arch.StageRadius,
		StageHeight:          arch.StageHeight,
		UmbrellaRadius:       arch.UmbrellaRadius,
		CeilingHeight:        arch.CeilingHeight,
		RailingHeight:        arch.RailingHeight,
		RailingCount:         arch.RailingCount,
		RailingRadius:        arch.RailingRadius,
		RailingOnStageRadius: arch.RailingOnStageRadius,

		GroundColor: p.Ground.Color,
		SkyColor:    p.Sky.Color,
		InitialYaw:  p.InitialYaw,

		Columns: columns,
		Rows:    rows,

		urls:       append([]string(nil), p.PanoramaURLs...),
		urlHeights: append([]int(nil), p.ImageHeights...),
		figures:    p.Clone().Figures,
	}
	d.FloorY = min(0, y, d.GroundYStart, d.GroundYEnd)
	d.RoofY = max(arch.StageHeight+arch.CeilingHeight, top, d.SkyYStart, d.SkyYEnd)

	return d, nil
}

// PanoramaURLs returns the tile texture identifiers, top row first.
func (d Descriptor) PanoramaURLs() []string {
	return append([]string(nil), d.urls...)
}

// PanoramaURLHeights returns the pixel height of each tile row.
func (d Descriptor) PanoramaURLHeights() []int {
	return append([]int(nil), d.urlHeights...)
}

// Figures returns the figures standing on the stage.
func (d Descriptor) Figures() []FigureParams {
	return Params{Figures: d.figures}.Clone().Figures
}

// EyeY returns the world height of an eye standing on the stage.
func (d Descriptor) EyeY(eyeHeight float32) float32 {
	return d.StageHeight + eyeHeight
}

// Equal reports whether two descriptors are identical field for field.
func (d Descriptor) Equal(other Descriptor) bool {
	return reflect.DeepEqual(d, other)
}

// descriptorFields drops the marshaler methods so the documents below can
// include the fields without recursing.
type descriptorFields Descriptor

// MarshalJSON implements json.Marshaler. The texture lists are included.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		descriptorFields
		PanoramaURLs       []string       `json:"panorama_urls"`
		PanoramaURLHeights []int          `json:"panorama_url_heights"`
		Figures            []FigureParams `json:"figures,omitempty"`
	}{descriptorFields(d), d.urls, d.urlHeights, d.figures})
}

// MarshalYAML implements yaml.Marshaler.
func (d Descriptor) MarshalYAML() (any, error) {
	return struct {
		Fields             descriptorFields `yaml:",inline"`
		PanoramaURLs       []string         `yaml:"panorama_urls"`
		PanoramaURLHeights []int            `yaml:"panorama_url_heights"`
		Figures            []FigureParams   `yaml:"figures,omitempty"`
	}{descriptorFields(d), d.urls, d.urlHeights, d.figures}, nil
}

func finitePositive(v float32) bool {
	return v > 0 && !math32.IsInf(v, 1)
}
