package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// Extent is the half-diagonal length of the box.
func (a AABB) Extent() float32 {
	return rl.Vector3Length(rl.Vector3Subtract(a.Max, a.Min)) / 2
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Raycast intersects a normalized ray with the box. A ray starting inside the box
// reports the exit point. The normal is the outward normal of the face hit.
func (a AABB) Raycast(origin, direction rl.Vector3, maxDistance float32) (Hit, bool) {
	t, axis, sign, inside, ok := slab(
		[3]float32{origin.X, origin.Y, origin.Z},
		[3]float32{direction.X, direction.Y, direction.Z},
		[3]float32{a.Min.X, a.Min.Y, a.Min.Z},
		[3]float32{a.Max.X, a.Max.Y, a.Max.Z},
		maxDistance,
	)
	if !ok {
		return Hit{}, false
	}
	var n [3]float32
	n[axis] = sign
	return Hit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3{X: n[0], Y: n[1], Z: n[2]},
		Distance: t,
		Inside:   inside,
	}, true
}

// Hit is a ray intersection with a single shape.
type Hit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
	// Inside is set when the ray started inside the shape and Point is its exit.
	Inside bool
}

// slab runs the slab test in the box's own frame. It returns the distance along the
// ray, the axis of the face hit, the sign of its outward normal and whether the
// origin was inside.
func slab(origin, dir, min, max [3]float32, maxDistance float32) (float32, int, float32, bool, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)
	enterAxis, exitAxis := 0, 0
	var enterSign, exitSign float32 = -1, 1

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, 0, 0, false, false
			}
			continue
		}
		t1 := (min[i] - origin[i]) / dir[i]
		t2 := (max[i] - origin[i]) / dir[i]
		s1, s2 := float32(-1), float32(1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s1, s2 = s2, s1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis, enterSign = i, s1
		}
		if t2 < tmax {
			tmax = t2
			exitAxis, exitSign = i, s2
		}
		if tmin > tmax {
			return 0, 0, 0, false, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return 0, 0, 0, false, false
	}
	if tmin >= 0 {
		return tmin, enterAxis, enterSign, false, true
	}
	// Origin is inside the box
	if tmax > maxDistance {
		return 0, 0, 0, false, false
	}
	return tmax, exitAxis, exitSign, true, true
}
