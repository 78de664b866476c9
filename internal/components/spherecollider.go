package components

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	if g == nil {
		return s.Offset
	}
	return rl.Vector3Add(g.WorldPosition(), s.Offset)
}

// GetWorldRadius scales the radius by the largest world scale axis.
func (s *SphereCollider) GetWorldRadius() float32 {
	g := s.GetGameObject()
	if g == nil {
		return s.Radius
	}
	scale := g.WorldScale()
	m := max(abs(scale.X), abs(scale.Y), abs(scale.Z))
	return s.Radius * m
}

func (s *SphereCollider) Shape() physics.Shape {
	return physics.Sphere{Center: s.GetCenter(), Radius: s.GetWorldRadius()}
}

func (s *SphereCollider) RaycastSelf(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	return raycastShape(s, s.Shape(), origin, direction, maxDistance)
}

func (s *SphereCollider) Extent() float32 {
	return s.Shape().Bounds().Extent()
}

func (s *SphereCollider) Bounds() (rl.Vector3, rl.Vector3) {
	b := s.Shape().Bounds()
	return b.Min, b.Max
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
