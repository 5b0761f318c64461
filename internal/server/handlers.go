package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Faultbox/cyclorama/internal/catalog"
	"github.com/Faultbox/cyclorama/internal/config"
	"github.com/Faultbox/cyclorama/internal/cyclorama"
	"github.com/Faultbox/cyclorama/internal/engine/camera"
	"github.com/Faultbox/cyclorama/internal/engine/gesture"
	"github.com/Faultbox/cyclorama/internal/engine/picking"
	"github.com/Faultbox/cyclorama/internal/viewer"
	"github.com/Faultbox/cyclorama/pkg/math"
)

const maxBodyBytes = 64 << 10

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store  *catalog.Store
	viewer config.ViewerConfig
}

// NewHandlers creates handlers reading scenes from store.
func NewHandlers(store *catalog.Store, vc config.ViewerConfig) *Handlers {
	return &Handlers{store: store, viewer: vc}
}

// CameraState is a camera pose as exchanged with clients. FOV is in degrees;
// zero FOV or zoom fall back to the viewer defaults.
type CameraState struct {
	Yaw      float32   `json:"yaw"`
	Pitch    float32   `json:"pitch"`
	FOV      float32   `json:"fov,omitempty"`
	Zoom     float32   `json:"zoom,omitempty"`
	Position math.Vec3 `json:"position"`
}

// GestureRequest is the body of POST /gesture.
type GestureRequest struct {
	Camera   CameraState         `json:"camera"`
	Viewport camera.Viewport     `json:"viewport"`
	Start    gesture.ScreenPoint `json:"start"`
	End      gesture.ScreenPoint `json:"end"`
}

// GestureResponse carries the angular delta and the pose after applying it.
type GestureResponse struct {
	gesture.AngularDelta
	Camera CameraState `json:"camera"`
}

// PickRequest is the body of POST /scenes/{key}/pick.
type PickRequest struct {
	Camera   CameraState         `json:"camera"`
	Viewport camera.Viewport     `json:"viewport"`
	Point    gesture.ScreenPoint `json:"point"`
}

// PickResponse describes what lies under a screen point.
type PickResponse struct {
	Hit     bool                     `json:"hit"`
	Surface string                   `json:"surface,omitempty"` // panorama, ground or sky
	Point   math.Vec3                `json:"point"`
	Theta   float32                  `json:"theta"`
	Tile    *cyclorama.TilePlacement `json:"tile,omitempty"`
	// Floor is set when the ray lands on the stage floor first.
	Floor *math.Vec3 `json:"floor,omitempty"`
}

type sceneSummary struct {
	Key       string        `json:"key"`
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle,omitempty"`
	Group     catalog.Group `json:"group"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Source    string        `json:"source,omitempty"`
}

type viewerResponse struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	FOV          float32 `json:"fov"`
	Near         float32 `json:"near"`
	Far          float32 `json:"far"`
	EyeHeight    float32 `json:"eye_height"`
	DefaultScene string  `json:"default_scene"`
	MinZoom      float32 `json:"min_zoom"`
	MaxZoom      float32 `json:"max_zoom"`
	WalkSpeed    float32 `json:"walk_speed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return false
	}
	return true
}

// descriptor builds the geometry of the scene named in the path, writing the
// error response itself when it cannot.
func (h *Handlers) descriptor(w http.ResponseWriter, r *http.Request) (cyclorama.Descriptor, bool) {
	d, err := h.store.Catalog().Geometry(r.PathValue("key"))
	switch {
	case errors.Is(err, catalog.ErrSceneNotFound):
		writeError(w, http.StatusNotFound, err)
		return d, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return d, false
	}
	return d, true
}

// controller returns a controller with the viewer's limits.
func (h *Handlers) controller() *camera.Controller {
	c := camera.NewController()
	c.MinZoom = h.viewer.MinZoom
	c.MaxZoom = h.viewer.MaxZoom
	c.WalkSpeed = h.viewer.WalkSpeed
	return c
}

// perspective builds a camera from a client pose. Pitch and zoom are
// clamped to the controller limits.
func (h *Handlers) perspective(s CameraState, vp camera.Viewport) *camera.Perspective {
	fov := s.FOV
	if fov <= 0 {
		fov = h.viewer.FOV
	}
	aspect := float32(1)
	if vp.Valid() {
		aspect = vp.Aspect()
	}

	ctrl := h.controller()
	ctrl.State.Yaw = math.WrapAngle(s.Yaw)
	ctrl.State.Pitch = math.Clamp(s.Pitch, ctrl.MinPitch, ctrl.MaxPitch)
	ctrl.SetZoom(max(s.Zoom, 1))
	ctrl.Position = s.Position.XZ()
	ctrl.EyeY = s.Position.Y

	cam := camera.NewPerspective(math.DegToRad(fov), aspect, h.viewer.Near, h.viewer.Far)
	ctrl.Apply(cam)
	return cam
}

func cameraState(cam *camera.Perspective) CameraState {
	return CameraState{
		Yaw:      cam.Yaw,
		Pitch:    cam.Pitch,
		FOV:      math.RadToDeg(cam.FovY),
		Zoom:     cam.Zoom,
		Position: cam.Position,
	}
}

// HandleViewer returns the viewer defaults from config.
func (h *Handlers) HandleViewer(w http.ResponseWriter, r *http.Request) {
	v := h.viewer
	writeJSON(w, http.StatusOK, viewerResponse{
		Width:        v.Width,
		Height:       v.Height,
		FOV:          v.FOV,
		Near:         v.Near,
		Far:          v.Far,
		EyeHeight:    v.EyeHeight,
		DefaultScene: v.DefaultScene,
		MinZoom:      v.MinZoom,
		MaxZoom:      v.MaxZoom,
		WalkSpeed:    v.WalkSpeed,
	})
}

// HandleScenes lists the catalog.
func (h *Handlers) HandleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := h.store.Catalog().Scenes()
	out := make([]sceneSummary, len(scenes))
	for i, s := range scenes {
		out[i] = sceneSummary{
			Key:       s.Key,
			Title:     s.Title,
			Subtitle:  s.Subtitle,
			Group:     s.Group,
			Thumbnail: s.Thumbnail,
			Source:    s.Source,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleScene returns one catalog record.
func (h *Handlers) HandleScene(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Catalog().Scene(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleGeometry returns the scene descriptor.
func (h *Handlers) HandleGeometry(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.descriptor(w, r); ok {
		writeJSON(w, http.StatusOK, d)
	}
}

// HandleTiles returns the tile placements.
func (h *Handlers) HandleTiles(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.descriptor(w, r); ok {
		writeJSON(w, http.StatusOK, d.Tiles())
	}
}

// HandleLayout returns the mesh primitives.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.descriptor(w, r); ok {
		writeJSON(w, http.StatusOK, cyclorama.BuildLayout(d))
	}
}

// HandleCamera returns the opening pose for a scene: at the stage centre,
// eye height above the floor, facing the scene's initial yaw.
func (h *Handlers) HandleCamera(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}
	ctrl := h.controller()
	ctrl.State.Yaw = math.WrapAngle(d.InitialYaw)
	ctrl.EyeY = d.EyeY(h.viewer.EyeHeight)

	cam := camera.NewPerspective(math.DegToRad(h.viewer.FOV),
		float32(h.viewer.Width)/float32(h.viewer.Height), h.viewer.Near, h.viewer.Far)
	ctrl.Apply(cam)

	writeJSON(w, http.StatusOK, struct {
		CameraState
		WalkRadius float32 `json:"walk_radius"`
	}{cameraState(cam), max(0, d.RailingOnStageRadius-viewer.WalkMargin)})
}

// HandleGesture maps a drag between two screen points to an angular delta
// and applies it to the given pose.
func (h *Handlers) HandleGesture(w http.ResponseWriter, r *http.Request) {
	var req GestureRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cam := h.perspective(req.Camera, req.Viewport)
	delta, err := gesture.AngularDifference(cam, req.Viewport, req.Start, req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctrl := h.controller()
	ctrl.State.Yaw, ctrl.State.Pitch, ctrl.State.Zoom = cam.Yaw, cam.Pitch, cam.Zoom
	ctrl.Position, ctrl.EyeY = cam.Position.XZ(), cam.Position.Y
	ctrl.Rotate(delta.Yaw, delta.Pitch)
	ctrl.Apply(cam)

	writeJSON(w, http.StatusOK, GestureResponse{AngularDelta: delta, Camera: cameraState(cam)})
}

// HandlePick reports the panorama tile or stage floor point under a screen
// position.
func (h *Handlers) HandlePick(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}
	var req PickRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Viewport.Valid() {
		writeError(w, http.StatusBadRequest, gesture.ErrEmptyViewport)
		return
	}

	cam := h.perspective(req.Camera, req.Viewport)
	ray := picking.ScreenToRay(cam, req.Viewport, req.Point.X, req.Point.Y)

	var resp PickResponse
	if x, z, ok := ray.IntersectPlaneY(d.StageHeight); ok && x*x+z*z <= d.StageRadius*d.StageRadius {
		resp.Floor = &math.Vec3{X: x, Y: d.StageHeight, Z: z}
	}

	hit, ok := ray.IntersectCylinder(d.PanoramaRadius)
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Hit = true
	resp.Point = hit
	resp.Theta = cyclorama.ThetaAt(hit)
	switch {
	case hit.Y < d.PanoramaY:
		resp.Surface = "ground"
	case hit.Y > d.PanoramaY+d.PanoramaHeight:
		resp.Surface = "sky"
	default:
		resp.Surface = "panorama"
		if tile, ok := d.TileAt(resp.Theta, hit.Y); ok {
			resp.Tile = &tile
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
