package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	WorldForward = rl.Vector3{X: 0, Y: 0, Z: 1}
	WorldUp      = rl.Vector3{X: 0, Y: 1, Z: 0}
	WorldRight   = rl.Vector3{X: 1, Y: 0, Z: 0}
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees, applied X then Y then Z
	Scale    rl.Vector3
}

// GetQuaternion converts the Euler rotation to a quaternion.
func (t Transform) GetQuaternion() rl.Quaternion {
	return rl.QuaternionFromEuler(
		t.Rotation.X*rl.Deg2rad,
		t.Rotation.Y*rl.Deg2rad,
		t.Rotation.Z*rl.Deg2rad,
	)
}

// SetQuaternion stores q as Euler degrees.
func (t *Transform) SetQuaternion(q rl.Quaternion) {
	e := rl.QuaternionToEuler(q)
	t.Rotation = rl.Vector3{X: e.X * rl.Rad2deg, Y: e.Y * rl.Rad2deg, Z: e.Z * rl.Rad2deg}
}

func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(WorldForward, t.GetQuaternion()))
}

func (t Transform) Up() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(WorldUp, t.GetQuaternion()))
}

func (t Transform) Right() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(WorldRight, t.GetQuaternion()))
}

// SetForward points +Z along dir with no roll, keeping world up as the reference.
func (t *Transform) SetForward(dir rl.Vector3) {
	dir = rl.Vector3Normalize(dir)
	if rl.Vector3Length(dir) == 0 {
		return
	}
	pitch := math.Asin(float64(clampUnit(-dir.Y)))
	yaw := math.Atan2(float64(dir.X), float64(dir.Z))
	t.Rotation = rl.Vector3{
		X: float32(pitch) * rl.Rad2deg,
		Y: float32(yaw) * rl.Rad2deg,
		Z: 0,
	}
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
