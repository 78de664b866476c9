package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, full size and world rotation.
func NewOBB(center, size rl.Vector3, rotation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2},
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rotation)),
		},
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return NewOBB(center, size, rl.QuaternionIdentity())
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}

	// Edge cross products
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Parallel edges give no axis
			if rl.Vector3Length(axis) > 0.0001 {
				axis = rl.Vector3Normalize(axis)
				if !overlapOnAxis(a, b, axis, t) {
					return false
				}
			}
		}
	}

	return true
}

func (o OBB) project(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	return absf(rl.Vector3DotProduct(t, axis)) <= a.project(axis)+b.project(axis)
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(s Sphere) bool {
	closest := o.ClosestPoint(s.Center)
	d := rl.Vector3Subtract(s.Center, closest)
	return rl.Vector3DotProduct(d, d) <= s.Radius*s.Radius
}

// ClosestPoint returns the point of the box nearest to p. Points inside map to themselves.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := o.toLocal(p)
	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], clampf(local[0], -o.HalfSize.X, o.HalfSize.X)))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], clampf(local[1], -o.HalfSize.Y, o.HalfSize.Y)))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], clampf(local[2], -o.HalfSize.Z, o.HalfSize.Z)))
	return result
}

func (o OBB) toLocal(p rl.Vector3) [3]float32 {
	d := rl.Vector3Subtract(p, o.Center)
	return [3]float32{
		rl.Vector3DotProduct(d, o.Axes[0]),
		rl.Vector3DotProduct(d, o.Axes[1]),
		rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// Raycast runs the slab test in the box's local frame. Rays starting inside the
// box report the exit point.
func (o OBB) Raycast(origin, direction rl.Vector3, maxDistance float32) (Hit, bool) {
	dir := [3]float32{
		rl.Vector3DotProduct(direction, o.Axes[0]),
		rl.Vector3DotProduct(direction, o.Axes[1]),
		rl.Vector3DotProduct(direction, o.Axes[2]),
	}
	half := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}
	t, axis, sign, inside, ok := slab(o.toLocal(origin), dir,
		[3]float32{-half[0], -half[1], -half[2]}, half, maxDistance)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3Scale(o.Axes[axis], sign),
		Distance: t,
		Inside:   inside,
	}, true
}

// Bounds returns the world-space AABB enclosing the box.
func (o OBB) Bounds() AABB {
	ext := rl.Vector3{
		X: o.project(rl.Vector3{X: 1}),
		Y: o.project(rl.Vector3{Y: 1}),
		Z: o.project(rl.Vector3{Z: 1}),
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
