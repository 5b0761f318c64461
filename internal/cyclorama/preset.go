// Package cyclorama derives the geometry of a panorama rotunda from a scene's
// photographic and architectural parameters.
//
// The numbers produced here are handed to the renderer unchanged; this
// package never builds meshes itself.
package cyclorama

import "fmt"

// Preset names a historical rotunda design.
type Preset string

const (
	// GrandCircle is a large rotunda with a raised central platform, after
	// the great circle of Barker's Leicester Square building.
	GrandCircle Preset = "grand-circle"
	// UpperCircle is the smaller upper rotunda of the same building, viewed
	// from a higher platform.
	UpperCircle Preset = "upper-circle"
	// SmallVenue is a touring or temporary installation; its dimensions scale
	// with the panorama radius.
	SmallVenue Preset = "small-venue"
)

// Presets lists every known preset.
func Presets() []Preset {
	return []Preset{GrandCircle, UpperCircle, SmallVenue}
}

// Architecture holds the fixed physical dimensions of a rotunda, in meters.
type Architecture struct {
	PanoramaRadius float32 `json:"panorama_radius" yaml:"panorama_radius" toml:"panorama_radius"`
	StageRadius    float32 `json:"stage_radius" yaml:"stage_radius" toml:"stage_radius"`
	StageHeight    float32 `json:"stage_height" yaml:"stage_height" toml:"stage_height"`
	UmbrellaRadius float32 `json:"umbrella_radius" yaml:"umbrella_radius" toml:"umbrella_radius"`
	// CeilingHeight is measured from the stage floor to the umbrella.
	CeilingHeight float32 `json:"ceiling_height" yaml:"ceiling_height" toml:"ceiling_height"`

	RailingHeight        float32 `json:"railing_height" yaml:"railing_height" toml:"railing_height"`
	RailingCount         int     `json:"railing_count" yaml:"railing_count" toml:"railing_count"`
	RailingRadius        float32 `json:"railing_radius" yaml:"railing_radius" toml:"railing_radius"`
	RailingOnStageRadius float32 `json:"railing_on_stage_radius" yaml:"railing_on_stage_radius" toml:"railing_on_stage_radius"`
}

const smallVenueRadius = 5.0

// ArchitectureFor returns the dimensions of a preset.
func ArchitectureFor(p Preset) (Architecture, error) {
	switch p {
	case GrandCircle:
		return Architecture{
			PanoramaRadius:       13.7,
			StageRadius:          4.6,
			StageHeight:          3.0,
			UmbrellaRadius:       7.6,
			CeilingHeight:        3.2,
			RailingHeight:        1.0,
			RailingCount:         24,
			RailingRadius:        0.03,
			RailingOnStageRadius: 4.5,
		}, nil
	case UpperCircle:
		return Architecture{
			PanoramaRadius:       8.0,
			StageRadius:          2.5,
			StageHeight:          2.5,
			UmbrellaRadius:       4.5,
			CeilingHeight:        2.8,
			RailingHeight:        1.0,
			RailingCount:         16,
			RailingRadius:        0.03,
			RailingOnStageRadius: 2.4,
		}, nil
	case SmallVenue:
		r := float32(smallVenueRadius)
		return Architecture{
			PanoramaRadius:       r,
			StageRadius:          0.3 * r,
			StageHeight:          1.5,
			UmbrellaRadius:       0.55 * r,
			CeilingHeight:        2.5,
			RailingHeight:        0.9,
			RailingCount:         12,
			RailingRadius:        0.025,
			RailingOnStageRadius: 0.3*r - 0.1,
		}, nil
	default:
		return Architecture{}, fmt.Errorf("%w: %q", ErrUnknownPreset, p)
	}
}

// validate checks the dimensions a renderer cannot draw.
func (a Architecture) validate() error {
	if a.PanoramaRadius <= 0 {
		return fmt.Errorf("%w: panorama radius %v", ErrInvalidDimensions, a.PanoramaRadius)
	}
	if a.StageRadius < 0 || a.StageHeight < 0 || a.UmbrellaRadius < 0 || a.CeilingHeight < 0 {
		return fmt.Errorf("%w: negative stage dimension", ErrInvalidDimensions)
	}
	if a.RailingCount < 0 {
		return fmt.Errorf("%w: railing count %d", ErrInvalidDimensions, a.RailingCount)
	}
	return nil
}
