package cyclorama

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cyclorama/pkg/math"
)

// Mesh constants shared by every rotunda.
const (
	// WallGap pushes the opaque ground and sky walls just behind the canvas.
	WallGap float32 = 0.05
	// FadeInset pulls the fade bands just in front of the canvas.
	FadeInset float32 = 0.01

	RotundaSegments = 60
	PostSegments    = 16
	TorusRadial     = 16
	TorusTubular    = 100

	UmbrellaThickness float32 = 0.1
	PlankWidth        float32 = 0.2
	PlankLift         float32 = 0.001
	PlankOpacity      float32 = 0.05

	StageColor   Color = 0x333343
	RailingColor Color = 0x222232
	PlankColor   Color = 0xffffff
	FigureColor  Color = 0xffffff
)

// Material describes how a primitive is shaded. Alpha fades linearly from
// AlphaBottom to AlphaTop over the primitive's height.
type Material struct {
	Color       Color   `json:"color" yaml:"color"`
	Texture     string  `json:"texture,omitempty" yaml:"texture,omitempty"`
	AlphaBottom float32 `json:"alpha_bottom" yaml:"alpha_bottom"`
	AlphaTop    float32 `json:"alpha_top" yaml:"alpha_top"`
}

func solid(c Color) Material {
	return Material{Color: c, AlphaBottom: 1, AlphaTop: 1}
}

// Cylinder is a vertical cylinder or cylinder segment centred on Center.
type Cylinder struct {
	Center      math.Vec3 `json:"center" yaml:"center"`
	Radius      float32   `json:"radius" yaml:"radius"`
	Height      float32   `json:"height" yaml:"height"`
	ThetaStart  float32   `json:"theta_start" yaml:"theta_start"`
	ThetaLength float32   `json:"theta_length" yaml:"theta_length"`
	Segments    int       `json:"segments" yaml:"segments"`
	// OpenEnded omits the caps; Inward puts the visible faces on the inside.
	OpenEnded bool     `json:"open_ended" yaml:"open_ended"`
	Inward    bool     `json:"inward" yaml:"inward"`
	Material  Material `json:"material" yaml:"material"`
}

// Bottom returns the height of the lower edge.
func (c Cylinder) Bottom() float32 { return c.Center.Y - c.Height/2 }

// Top returns the height of the upper edge.
func (c Cylinder) Top() float32 { return c.Center.Y + c.Height/2 }

// Plane is a horizontal square closing the rotunda.
type Plane struct {
	Y        float32  `json:"y" yaml:"y"`
	Size     float32  `json:"size" yaml:"size"`
	FacingUp bool     `json:"facing_up" yaml:"facing_up"`
	Material Material `json:"material" yaml:"material"`
}

// Torus lies flat at Center.
type Torus struct {
	Center          math.Vec3 `json:"center" yaml:"center"`
	Radius          float32   `json:"radius" yaml:"radius"`
	Tube            float32   `json:"tube" yaml:"tube"`
	RadialSegments  int       `json:"radial_segments" yaml:"radial_segments"`
	TubularSegments int       `json:"tubular_segments" yaml:"tubular_segments"`
	Material        Material  `json:"material" yaml:"material"`
}

// Line is a single segment.
type Line struct {
	From     math.Vec3 `json:"from" yaml:"from"`
	To       math.Vec3 `json:"to" yaml:"to"`
	Material Material  `json:"material" yaml:"material"`
}

// Surround is the colored wall above or below the canvas: an opaque
// cylinder, a fade band over the canvas edge and a closing plane.
type Surround struct {
	Wall Cylinder `json:"wall" yaml:"wall"`
	Fade Cylinder `json:"fade" yaml:"fade"`
	Cap  Plane    `json:"cap" yaml:"cap"`
}

// Stage is the viewing platform and its fittings.
type Stage struct {
	Platform Cylinder   `json:"platform" yaml:"platform"`
	Umbrella Cylinder   `json:"umbrella" yaml:"umbrella"`
	Railing  Torus      `json:"railing" yaml:"railing"`
	Posts    []Cylinder `json:"posts" yaml:"posts"`
	Planks   []Line     `json:"planks" yaml:"planks"`
}

// Layout lists every primitive a renderer needs to draw a scene.
type Layout struct {
	Panorama []Cylinder `json:"panorama" yaml:"panorama"`
	Ground   Surround   `json:"ground" yaml:"ground"`
	Sky      Surround   `json:"sky" yaml:"sky"`
	Stage    Stage      `json:"stage" yaml:"stage"`
	Figures  []Figure   `json:"figures,omitempty" yaml:"figures,omitempty"`
}

// BuildLayout turns a descriptor into mesh primitives.
func BuildLayout(d Descriptor) Layout {
	return Layout{
		Panorama: panoramaTiles(d),
		Ground:   ground(d),
		Sky:      sky(d),
		Stage:    stage(d),
		Figures:  figures(d),
	}
}

func panoramaTiles(d Descriptor) []Cylinder {
	tiles := d.Tiles()
	if len(tiles) == 0 {
		return nil
	}
	// Each tile gets its share of the full circle's segments.
	segments := max(1, int(math32.Ceil(float32(RotundaSegments)/float32(d.Columns))))

	out := make([]Cylinder, len(tiles))
	for i, t := range tiles {
		out[i] = Cylinder{
			Center:      math.Vec3{Y: t.CenterY()},
			Radius:      d.PanoramaRadius,
			Height:      t.Height,
			ThetaStart:  t.ThetaStart,
			ThetaLength: t.ThetaLength,
			Segments:    segments,
			OpenEnded:   true,
			Inward:      true,
			Material:    Material{Texture: t.URL, AlphaBottom: 1, AlphaTop: 1},
		}
	}
	return out
}

// band returns an inward ring spanning from..to; the height may be negative
// when offsets run backwards, which renderers draw as a flipped band.
func band(radius, from, to float32, m Material) Cylinder {
	return Cylinder{
		Center:      math.Vec3{Y: (from + to) / 2},
		Radius:      radius,
		Height:      to - from,
		ThetaLength: math.TwoPi,
		Segments:    RotundaSegments,
		OpenEnded:   true,
		Inward:      true,
		Material:    m,
	}
}

func ground(d Descriptor) Surround {
	c := d.GroundColor
	return Surround{
		Wall: band(d.PanoramaRadius+WallGap, d.FloorY, d.GroundYStart, solid(c)),
		Fade: band(d.PanoramaRadius-FadeInset, d.GroundYStart, d.GroundYEnd,
			Material{Color: c, AlphaBottom: 1, AlphaTop: 0}),
		Cap: Plane{Y: d.FloorY, Size: 2 * (d.PanoramaRadius + WallGap), FacingUp: true, Material: solid(c)},
	}
}

func sky(d Descriptor) Surround {
	c := d.SkyColor
	return Surround{
		Wall: band(d.PanoramaRadius+WallGap, d.SkyYStart, d.RoofY, solid(c)),
		Fade: band(d.PanoramaRadius-FadeInset, d.SkyYStart, d.SkyYEnd,
			Material{Color: c, AlphaBottom: 0, AlphaTop: 1}),
		Cap: Plane{Y: d.RoofY, Size: 2 * (d.PanoramaRadius + WallGap), Material: solid(c)},
	}
}

func stage(d Descriptor) Stage {
	s := Stage{
		Platform: Cylinder{
			Center:      math.Vec3{Y: d.StageHeight / 2},
			Radius:      d.StageRadius,
			Height:      d.StageHeight,
			ThetaLength: math.TwoPi,
			Segments:    RotundaSegments,
			Material:    solid(StageColor),
		},
		Umbrella: Cylinder{
			Center:      math.Vec3{Y: d.StageHeight + d.CeilingHeight},
			Radius:      d.UmbrellaRadius,
			Height:      UmbrellaThickness,
			ThetaLength: math.TwoPi,
			Segments:    RotundaSegments,
			Material:    solid(StageColor),
		},
		Railing: Torus{
			Center:          math.Vec3{Y: d.StageHeight + d.RailingHeight},
			Radius:          d.RailingOnStageRadius,
			Tube:            d.RailingRadius,
			RadialSegments:  TorusRadial,
			TubularSegments: TorusTubular,
			Material:        solid(RailingColor),
		},
	}

	for i := 0; i < d.RailingCount; i++ {
		theta := float32(i) / float32(d.RailingCount) * math.TwoPi
		s.Posts = append(s.Posts, Cylinder{
			Center: math.Vec3{
				X: math32.Sin(theta) * d.RailingOnStageRadius,
				Y: d.StageHeight + d.RailingHeight/2,
				Z: math32.Cos(theta) * d.RailingOnStageRadius,
			},
			Radius:      d.RailingRadius,
			Height:      d.RailingHeight,
			ThetaLength: math.TwoPi,
			Segments:    PostSegments,
			Material:    solid(RailingColor),
		})
	}

	s.Planks = planks(d.StageRadius, d.StageHeight+PlankLift)
	return s
}

// planks covers the stage disc with parallel lines along Z, PlankWidth apart.
func planks(radius, y float32) []Line {
	if radius <= 0 {
		return nil
	}
	// Step by index so rounding never drops the last line.
	n := int(math32.Floor(2*radius/PlankWidth + 1e-4))
	m := Material{Color: PlankColor, AlphaBottom: PlankOpacity, AlphaTop: PlankOpacity}

	lines := make([]Line, 0, n+1)
	for i := 0; i <= n; i++ {
		x := -radius + float32(i)*PlankWidth
		z := math32.Sqrt(max(0, radius*radius-x*x))
		lines = append(lines, Line{
			From:     math.Vec3{X: x, Y: y, Z: -z},
			To:       math.Vec3{X: x, Y: y, Z: z},
			Material: m,
		})
	}
	return lines
}
