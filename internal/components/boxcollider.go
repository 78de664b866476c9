package components

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an oriented box following its object's world pose and scale.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Offset
	}
	offset := rl.Vector3Multiply(b.Offset, g.WorldScale())
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3RotateByQuaternion(offset, g.WorldQuaternion()))
}

// GetWorldSize returns the collider size scaled by the object's world scale
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Size
	}
	return rl.Vector3Multiply(b.Size, g.WorldScale())
}

func (b *BoxCollider) OBB() physics.OBB {
	rotation := rl.QuaternionIdentity()
	if g := b.GetGameObject(); g != nil {
		rotation = g.WorldQuaternion()
	}
	return physics.NewOBB(b.GetCenter(), b.GetWorldSize(), rotation)
}

func (b *BoxCollider) Shape() physics.Shape {
	return b.OBB()
}

func (b *BoxCollider) RaycastSelf(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	return raycastShape(b, b.OBB(), origin, direction, maxDistance)
}

func (b *BoxCollider) Extent() float32 {
	return b.OBB().Bounds().Extent()
}

func (b *BoxCollider) Bounds() (rl.Vector3, rl.Vector3) {
	bounds := b.OBB().Bounds()
	return bounds.Min, bounds.Max
}

func raycastShape(col engine.Collider, shape physics.Shape, origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	direction = rl.Vector3Normalize(direction)
	if rl.Vector3Length(direction) == 0 {
		return engine.RaycastResult{}, false
	}
	hit, ok := shape.Raycast(origin, direction, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: col.GetGameObject(),
		Collider:   col,
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
		Inside:     hit.Inside,
	}, true
}
