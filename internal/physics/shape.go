package physics

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is a world-space collision volume.
type Shape interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32) (Hit, bool)
	Bounds() AABB
}

// ShapeCollider is a collider component that exposes its world-space volume for
// overlap tests.
type ShapeCollider interface {
	engine.Collider
	Shape() Shape
}

// Overlaps reports whether two shapes intersect. Unknown shape types fall back to
// their bounding boxes.
func Overlaps(a, b Shape) bool {
	switch sa := a.(type) {
	case OBB:
		switch sb := b.(type) {
		case OBB:
			return sa.IntersectsOBB(sb)
		case Sphere:
			return sa.IntersectsSphere(sb)
		}
	case Sphere:
		switch sb := b.(type) {
		case OBB:
			return sb.IntersectsSphere(sa)
		case Sphere:
			return sa.IntersectsSphere(sb)
		}
	}
	return a.Bounds().Intersects(b.Bounds())
}
