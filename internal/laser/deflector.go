package laser

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const DefaultDeflectionAngle float32 = -45

// Deflector redirects any beam that reaches it along its own forward vector
// rotated by a fixed angle around its local up axis.
type Deflector struct {
	engine.BaseComponent
	// Tint recolors the beam after this deflector. A zero alpha keeps the
	// incoming color.
	Tint rl.Color

	angle float32
}

func NewDeflector(angle float32) *Deflector {
	d := &Deflector{}
	d.SetDeflectionAngle(angle)
	return d
}

// SetDeflectionAngle sets the angle in degrees, clamped to [-180, 180].
func (d *Deflector) SetDeflectionAngle(angle float32) {
	d.angle = clamp(angle, -180, 180)
}

func (d *Deflector) DeflectionAngle() float32 {
	return d.angle
}

// ExitDirection is the beam direction leaving this deflector. It does not depend on
// where the beam came from.
func (d *Deflector) ExitDirection() rl.Vector3 {
	g := d.GetGameObject()
	if g == nil {
		return ExitDirection(engine.WorldForward, engine.WorldUp, d.angle)
	}
	return ExitDirection(g.Forward(), g.Up(), d.angle)
}

// Center is the point the beam bends through.
func (d *Deflector) Center() rl.Vector3 {
	if g := d.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3{}
}

func (d *Deflector) Name() string {
	if g := d.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}

// ExitDirection rotates forward by angle degrees around up.
func ExitDirection(forward, up rl.Vector3, angle float32) rl.Vector3 {
	q := rl.QuaternionFromAxisAngle(rl.Vector3Normalize(up), angle*rl.Deg2rad)
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(forward, q))
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
