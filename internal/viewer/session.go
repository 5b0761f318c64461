// Package viewer runs one person's visit to a rotunda: it feeds pointer
// events through the drag mapper into the camera controller, frame by frame.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cyclorama/internal/config"
	"github.com/Faultbox/cyclorama/internal/cyclorama"
	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/gesture"
	"github.com/Faultbox/cyclorama/internal/engine/input"
	"github.com/Faultbox/cyclorama/internal/engine/picking"
	"github.com/Faultbox/cyclorama/pkg/math"
)

const (
	// WheelZoomStep is the zoom change per unit of wheel delta.
	WheelZoomStep float32 = 0.1
	// WalkMargin keeps the eye this far inside the railing.
	WalkMargin float32 = 0.3
)

// Session is the state of one viewer inside one scene.
type Session struct {
	scene    cyclorama.Descriptor
	camera   *camera.Perspective
	ctrl     *camera.Controller
	tracker  *gesture.Tracker
	queue    *input.Queue
	viewport camera.Viewport
	log      *zap.Logger
}

// New places a viewer at the centre of the stage, facing the scene's
// initial yaw. A nil logger disables logging.
func New(scene cyclorama.Descriptor, cfg config.ViewerConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	vp := camera.Viewport{Width: float32(cfg.Width), Height: float32(cfg.Height)}

	ctrl := camera.NewController()
	ctrl.State.Yaw = math.WrapAngle(scene.InitialYaw)
	ctrl.EyeY = scene.EyeY(cfg.EyeHeight)
	ctrl.WalkRadius = max(0, scene.RailingOnStageRadius-WalkMargin)
	if cfg.MinZoom > 0 {
		ctrl.MinZoom = cfg.MinZoom
	}
	if cfg.MaxZoom > 0 {
		ctrl.MaxZoom = cfg.MaxZoom
	}
	if cfg.WalkSpeed > 0 {
		ctrl.WalkSpeed = cfg.WalkSpeed
	}

	cam := camera.NewPerspective(math.DegToRad(cfg.FOV), 1, cfg.Near, cfg.Far)
	cam.SetViewport(vp)
	ctrl.Apply(cam)

	s := &Session{
		scene:    scene,
		camera:   cam,
		ctrl:     ctrl,
		queue:    input.New(),
		viewport: vp,
		log:      log.Named("viewer"),
	}
	// Bounds are read through the session so resizes reach the tracker.
	s.tracker = gesture.NewTracker(cam, s.Viewport)
	return s
}

// Camera returns the session camera.
func (s *Session) Camera() *camera.Perspective { return s.camera }

// Controller returns the camera controller, for walking input and overrides.
func (s *Session) Controller() *camera.Controller { return s.ctrl }

// Viewport returns the current render surface size.
func (s *Session) Viewport() camera.Viewport { return s.viewport }

// Scene returns the scene geometry.
func (s *Session) Scene() cyclorama.Descriptor { return s.scene }

// Push queues an event for the next Update.
func (s *Session) Push(e input.Event) {
	s.queue.Push(e)
}

// SetWalk sets the walking input, each in -1..1.
func (s *Session) SetWalk(sagittal, frontal float32) {
	s.ctrl.State.Sagittal = math.Clamp(sagittal, -1, 1)
	s.ctrl.State.Frontal = math.Clamp(frontal, -1, 1)
}

// Update processes queued events and advances the controller by dt seconds.
func (s *Session) Update(dt float32) error {
	defer s.queue.Reset()

	for _, e := range s.queue.Events() {
		switch e.Type {
		case input.EventResize:
			s.viewport = camera.Viewport{Width: e.Width, Height: e.Height}
			s.camera.SetViewport(s.viewport)
			s.log.Debug("resize", zap.Float32("width", e.Width), zap.Float32("height", e.Height))
		case input.EventWheel:
			s.ctrl.SetZoom(s.ctrl.State.Zoom - e.Delta*WheelZoomStep)
			s.ctrl.Apply(s.camera)
		default:
			delta, ok, err := s.tracker.Handle(e)
			if err != nil {
				return fmt.Errorf("viewer: %s event: %w", e.Type, err)
			}
			if !ok {
				continue
			}
			s.ctrl.Rotate(delta.Yaw, delta.Pitch)
			// The next move must be measured against the turned camera.
			s.ctrl.Apply(s.camera)
		}
	}

	s.ctrl.Step(dt)
	s.ctrl.Apply(s.camera)
	return nil
}

// Look returns the panorama tile at the centre of the view.
func (s *Session) Look() (cyclorama.TilePlacement, bool) {
	ray := picking.ScreenToRay(s.camera, s.viewport, s.viewport.Width/2, s.viewport.Height/2)
	hit, ok := ray.IntersectCylinder(s.scene.PanoramaRadius)
	if !ok {
		return cyclorama.TilePlacement{}, false
	}
	return s.scene.TileAt(cyclorama.ThetaAt(hit), hit.Y)
}
