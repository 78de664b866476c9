package components

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a view the host can render from. The active view is the first
// camera whose object is active in the hierarchy.
type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}
	eye := g.WorldPosition()
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, g.Forward()),
		Up:         g.Up(),
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// ActiveCamera returns the first camera in s whose object is active.
func ActiveCamera(s *engine.Scene) *Camera {
	for _, cam := range engine.FindComponents[*Camera](s) {
		if g := cam.GetGameObject(); g != nil && g.ActiveInHierarchy() {
			return cam
		}
	}
	return nil
}
