package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// Raycast intersects a normalized ray with the sphere. Rays starting inside report
// the exit point.
func (s Sphere) Raycast(origin, direction rl.Vector3, maxDistance float32) (Hit, bool) {
	oc := rl.Vector3Subtract(origin, s.Center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return Hit{}, false
	}

	root := float32(math.Sqrt(float64(discriminant)))
	t := (-b - root) / (2 * a)
	if t < 0 {
		t = (-b + root) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return Hit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, s.Center))

	return Hit{Point: point, Normal: normal, Distance: t, Inside: c < 0}, true
}

func (s Sphere) IntersectsSphere(o Sphere) bool {
	r := s.Radius + o.Radius
	d := rl.Vector3Subtract(s.Center, o.Center)
	return rl.Vector3DotProduct(d, d) <= r*r
}

func (s Sphere) Bounds() AABB {
	r := absf(s.Radius)
	ext := rl.Vector3{X: r, Y: r, Z: r}
	return AABB{Min: rl.Vector3Subtract(s.Center, ext), Max: rl.Vector3Add(s.Center, ext)}
}
