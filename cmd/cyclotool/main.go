// cyclotool is a CLI utility for inspecting scene catalogs and the geometry
// derived from them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cyclorama/internal/catalog"
	"github.com/Faultbox/cyclorama/internal/config"
	"github.com/Faultbox/cyclorama/internal/cyclorama"
	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/gesture"
	"github.com/Faultbox/cyclorama/internal/engine/input"
	"github.com/Faultbox/cyclorama/internal/viewer"
	"github.com/Faultbox/cyclorama/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "list", "ls":
		err = cmdList(args)
	case "validate":
		err = cmdValidate(args)
	case "geometry", "geo":
		err = cmdScene(args, "geometry", func(d cyclorama.Descriptor) any { return d })
	case "tiles":
		err = cmdScene(args, "tiles", func(d cyclorama.Descriptor) any { return d.Tiles() })
	case "layout":
		err = cmdScene(args, "layout", func(d cyclorama.Descriptor) any { return cyclorama.BuildLayout(d) })
	case "presets":
		err = cmdPresets(args)
	case "drag":
		err = cmdDrag(args)
	case "replay":
		err = cmdReplay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cyclotool - panorama rotunda scene utility

Usage:
  cyclotool <command> [options]

Commands:
  list [-catalog f]                       List scenes
  validate [-catalog f]                   Build every scene and report errors
  geometry [-catalog f] [-json] <scene>   Print the scene descriptor
  tiles [-catalog f] [-json] <scene>      Print tile placements
  layout [-catalog f] [-json] <scene>     Print mesh primitives
  presets [-json]                         Print the architectural presets
  drag [camera flags] x0 y0 x1 y1         Map a drag to a yaw/pitch delta
  replay [-catalog f] <script.yaml>       Run recorded input through a viewer

Examples:
  cyclotool list
  cyclotool presets
  cyclotool geometry -catalog scenes.toml hornor
  cyclotool drag -width 1280 -height 720 -fov 60 640 360 700 360
  cyclotool replay walk.yaml`)
}

// catalogFlag registers -catalog on fs and returns a loader for it.
func catalogFlag(fs *flag.FlagSet) func() (*catalog.Catalog, error) {
	path := fs.String("catalog", "", "Scene catalog (YAML or TOML); built-in when empty")
	return func() (*catalog.Catalog, error) {
		if *path == "" {
			return catalog.Default()
		}
		return catalog.Load(*path)
	}
}

func output(v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	load := catalogFlag(fs)
	fs.Parse(args)

	c, err := load()
	if err != nil {
		return err
	}
	for _, s := range c.Scenes() {
		fmt.Printf("%-28s %-7s %s\n", s.Key, s.Group, s.Title)
	}
	fmt.Printf("\nTotal: %d scenes\n", c.Len())
	return nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	load := catalogFlag(fs)
	fs.Parse(args)

	c, err := load()
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	fmt.Printf("%d scenes OK\n", c.Len())
	return nil
}

func cmdScene(args []string, name string, view func(cyclorama.Descriptor) any) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	load := catalogFlag(fs)
	asJSON := fs.Bool("json", false, "Print JSON instead of YAML")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cyclotool %s [-catalog f] [-json] <scene>", name)
	}
	c, err := load()
	if err != nil {
		return err
	}
	d, err := c.Geometry(fs.Arg(0))
	if err != nil {
		return err
	}
	return output(view(d), *asJSON)
}

func cmdDrag(args []string) error {
	fs := flag.NewFlagSet("drag", flag.ExitOnError)
	width := fs.Float64("width", 1280, "Viewport width")
	height := fs.Float64("height", 720, "Viewport height")
	fov := fs.Float64("fov", 75, "Vertical field of view in degrees")
	yaw := fs.Float64("yaw", -90, "Camera yaw in degrees")
	pitch := fs.Float64("pitch", 90, "Camera pitch in degrees from straight up, kept off the poles")
	zoom := fs.Float64("zoom", 1, "Zoom factor, 1..4")
	fs.Parse(args)

	if fs.NArg() != 4 {
		return fmt.Errorf("usage: cyclotool drag [flags] x0 y0 x1 y1")
	}
	var pts [4]float32
	for i := range pts {
		var v float64
		if _, err := fmt.Sscan(fs.Arg(i), &v); err != nil {
			return fmt.Errorf("coordinate %q: %w", fs.Arg(i), err)
		}
		pts[i] = float32(v)
	}

	vp := camera.Viewport{Width: float32(*width), Height: float32(*height)}
	cam := dragCamera(vp, float32(*fov), float32(*yaw), float32(*pitch), float32(*zoom))

	d, err := gesture.AngularDifference(cam, vp,
		gesture.ScreenPoint{X: pts[0], Y: pts[1]}, gesture.ScreenPoint{X: pts[2], Y: pts[3]})
	if err != nil {
		return err
	}
	fmt.Printf("yaw:   %+.5f rad (%+.3f°)\n", d.Yaw, math.RadToDeg(d.Yaw))
	fmt.Printf("pitch: %+.5f rad (%+.3f°)\n", d.Pitch, math.RadToDeg(d.Pitch))
	return nil
}

// dragCamera builds the camera a drag is measured against. Angles are in
// degrees; pitch and zoom are held to the controller limits.
func dragCamera(vp camera.Viewport, fov, yaw, pitch, zoom float32) *camera.Perspective {
	cam := camera.NewPerspective(math.DegToRad(fov), 1, 0.1, 1000)
	cam.SetViewport(vp)

	ctrl := camera.NewController()
	ctrl.State.Yaw = math.WrapAngle(math.DegToRad(yaw))
	ctrl.State.Pitch = math.Clamp(math.DegToRad(pitch), ctrl.MinPitch, ctrl.MaxPitch)
	ctrl.SetZoom(zoom)
	ctrl.Apply(cam)
	return cam
}

type presetInfo struct {
	Name         cyclorama.Preset       `json:"name" yaml:"name"`
	Architecture cyclorama.Architecture `json:"architecture" yaml:"architecture"`
}

func presetTable() ([]presetInfo, error) {
	var out []presetInfo
	for _, p := range cyclorama.Presets() {
		arch, err := cyclorama.ArchitectureFor(p)
		if err != nil {
			return nil, err
		}
		out = append(out, presetInfo{Name: p, Architecture: arch})
	}
	return out, nil
}

func cmdPresets(args []string) error {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of YAML")
	fs.Parse(args)

	table, err := presetTable()
	if err != nil {
		return err
	}
	return output(table, *asJSON)
}

// replayScript is a recorded viewer session.
type replayScript struct {
	Scene    string          `yaml:"scene"`
	Viewport camera.Viewport `yaml:"viewport"`
	Frames   []replayFrame   `yaml:"frames"`
}

type replayFrame struct {
	DT       float32       `yaml:"dt"`
	Sagittal float32       `yaml:"sagittal"`
	Frontal  float32       `yaml:"frontal"`
	Events   []input.Event `yaml:"events"`
}

type replayPose struct {
	Frame int       `yaml:"frame"`
	Yaw   float32   `yaml:"yaw"`
	Pitch float32   `yaml:"pitch"`
	Zoom  float32   `yaml:"zoom"`
	Eye   math.Vec3 `yaml:"eye"`
	Tile  string    `yaml:"tile,omitempty"`
}

func cmdReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	load := catalogFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cyclotool replay [-catalog f] <script.yaml>")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var script replayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("script: %w", err)
	}

	c, err := load()
	if err != nil {
		return err
	}
	d, err := c.Geometry(script.Scene)
	if err != nil {
		return err
	}

	cfg := config.Default().Viewer
	if script.Viewport.Valid() {
		cfg.Width, cfg.Height = int(script.Viewport.Width), int(script.Viewport.Height)
	}
	s := viewer.New(d, cfg, nil)

	poses := make([]replayPose, 0, len(script.Frames))
	for i, f := range script.Frames {
		for _, e := range f.Events {
			s.Push(e)
		}
		s.SetWalk(f.Sagittal, f.Frontal)
		if err := s.Update(f.DT); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		cam := s.Camera()
		pose := replayPose{Frame: i, Yaw: cam.Yaw, Pitch: cam.Pitch, Zoom: cam.Zoom, Eye: cam.Position}
		if tile, ok := s.Look(); ok {
			pose.Tile = tile.URL
		}
		poses = append(poses, pose)
	}
	return output(poses, false)
}
