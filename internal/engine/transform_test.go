package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestTransformIdentityAxes(t *testing.T) {
	tr := Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}

	if !nearVec(tr.Forward(), WorldForward) {
		t.Errorf("Expected forward %v, got %v", WorldForward, tr.Forward())
	}
	if !nearVec(tr.Up(), WorldUp) {
		t.Errorf("Expected up %v, got %v", WorldUp, tr.Up())
	}
	if !nearVec(tr.Right(), WorldRight) {
		t.Errorf("Expected right %v, got %v", WorldRight, tr.Right())
	}
}

func TestTransformYawQuarterTurn(t *testing.T) {
	tr := Transform{Rotation: rl.Vector3{Y: 90}}

	if !nearVec(tr.Forward(), rl.Vector3{X: 1}) {
		t.Errorf("Yaw 90 should face +X, got %v", tr.Forward())
	}
	if !nearVec(tr.Up(), WorldUp) {
		t.Errorf("Yaw should keep up, got %v", tr.Up())
	}
}

func TestTransformZUpFacingX(t *testing.T) {
	// X first lays +Z onto -Y and +Y onto +Z, then Z turns -Y into +X.
	tr := Transform{Rotation: rl.Vector3{X: 90, Z: 90}}

	if !nearVec(tr.Forward(), rl.Vector3{X: 1}) {
		t.Errorf("Expected forward +X, got %v", tr.Forward())
	}
	if !nearVec(tr.Up(), rl.Vector3{Z: 1}) {
		t.Errorf("Expected up +Z, got %v", tr.Up())
	}
}

func TestTransformSetForward(t *testing.T) {
	dirs := []rl.Vector3{
		{X: 1},
		{X: -1},
		{Z: -1},
		rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1, Z: 1}),
	}
	for _, dir := range dirs {
		var tr Transform
		tr.SetForward(dir)
		if !nearVec(tr.Forward(), dir) {
			t.Errorf("SetForward(%v) produced forward %v", dir, tr.Forward())
		}
	}
}

func TestTransformSetForwardIgnoresZero(t *testing.T) {
	tr := Transform{Rotation: rl.Vector3{Y: 45}}
	tr.SetForward(rl.Vector3{})
	if tr.Rotation.Y != 45 {
		t.Error("SetForward with a zero vector should leave the rotation unchanged")
	}
}
