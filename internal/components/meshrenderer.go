package components

import (
	"math"

	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

func (m MeshType) String() string {
	switch m {
	case MeshSphere:
		return "sphere"
	case MeshPlane:
		return "plane"
	default:
		return "cube"
	}
}

// ParseMeshType maps a scene file name to a mesh type; unknown names are cubes.
func ParseMeshType(name string) MeshType {
	switch name {
	case "sphere":
		return MeshSphere
	case "plane":
		return MeshPlane
	default:
		return MeshCube
	}
}

// MeshRenderer draws a primitive in the object's pose. Color is the renderer tint
// that highlights may swap.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}

	pushObjectMatrix(g)
	defer rl.PopMatrix()

	switch m.MeshType {
	case MeshCube:
		rl.DrawCube(rl.Vector3{}, m.Size.X, m.Size.Y, m.Size.Z, m.Color)
	case MeshSphere:
		rl.DrawSphere(rl.Vector3{}, m.Size.X, m.Color)
	case MeshPlane:
		rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: m.Size.X, Y: m.Size.Z}, m.Color)
	}
}

// pushObjectMatrix pushes the object's world transform onto the rlgl stack.
func pushObjectMatrix(g *engine.GameObject) {
	pos := g.WorldPosition()
	scale := g.WorldScale()
	axis, angle := axisAngle(g.WorldQuaternion())

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	if angle != 0 {
		rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	}
	rl.Scalef(scale.X, scale.Y, scale.Z)
}

func axisAngle(q rl.Quaternion) (rl.Vector3, float32) {
	q = rl.QuaternionNormalize(q)
	if q.W > 1 {
		q.W = 1
	}
	angle := 2 * float32(math.Acos(float64(q.W)))
	s := float32(math.Sqrt(float64(1 - q.W*q.W)))
	if s < 0.0001 {
		return rl.Vector3{X: 1}, 0
	}
	return rl.Vector3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}, angle
}
