package camera

import (
	"math"

	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of walking input. Forward and Right are in [-1, 1];
// Look is the mouse delta in pixels.
type Input struct {
	Forward float32
	Right   float32
	Look    rl.Vector2
}

// SampleInput reads WASD and the mouse.
func SampleInput() Input {
	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	in.Look = rl.GetMouseDelta()
	return in
}

// FPSCamera walks the player around the floor plane. There is no gravity or
// collision; the body follows so trigger volumes see the player.
type FPSCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	EyeHeight float32 // Height of camera above feet

	// Body is moved to the feet position every update.
	Body *engine.GameObject
}

func New(pos rl.Vector3) *FPSCamera {
	return &FPSCamera{
		Position:  pos,
		Yaw:       -90.0,
		Pitch:     -10.0,
		MoveSpeed: 4.0, // Units per second
		LookSpeed: 0.1,
		EyeHeight: 1.7,
	}
}

func (c *FPSCamera) Update(deltaTime float32, in Input) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch -= in.Look.Y * c.LookSpeed

	// Clamp pitch
	c.Pitch = min(max(c.Pitch, -89), 89)

	forward, right := c.directions()
	move := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))

	// Normalize diagonal movement so you don't go faster diagonally
	if l := rl.Vector3Length(move); l > 1 {
		move = rl.Vector3Scale(move, 1/l)
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(move, c.MoveSpeed*deltaTime))

	if c.Body != nil {
		c.Body.Transform.Position = c.Feet()
	}
}

// Feet is the point on the ground below the eye.
func (c *FPSCamera) Feet() rl.Vector3 {
	return rl.Vector3{X: c.Position.X, Y: c.Position.Y - c.EyeHeight, Z: c.Position.Z}
}

// directions returns the horizontal forward and right vectors.
func (c *FPSCamera) directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(math.Cos(yawRad)),
	}
	return
}

func (c *FPSCamera) GetRaylibCamera() rl.Camera3D {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	target := rl.Vector3{
		X: c.Position.X + float32(math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Position.Y + float32(math.Sin(pitchRad)),
		Z: c.Position.Z + float32(math.Sin(yawRad)*math.Cos(pitchRad)),
	}

	return rl.Camera3D{
		Position:   c.Position,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}
