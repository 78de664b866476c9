package physics

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raycast returns the closest hit among active objects whose layer is in mask.
// Colliders that contain the origin are not hit; use Collider.RaycastSelf to find
// where a ray leaves a shape.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	direction = rl.Vector3Normalize(direction)
	if rl.Vector3Length(direction) == 0 || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}

	var closest engine.RaycastResult
	closest.Distance = maxDistance
	hit := false

	for _, obj := range p.Objects {
		if !obj.ActiveInHierarchy() || !mask.Contains(obj.Layer) {
			continue
		}
		for _, col := range engine.GetComponents[engine.Collider](obj) {
			info, ok := col.RaycastSelf(origin, direction, maxDistance)
			if !ok || info.Inside || info.Distance > closest.Distance {
				continue
			}
			// Ties keep the first object in registration order
			if hit && info.Distance == closest.Distance {
				continue
			}
			closest = info
			closest.GameObject = obj
			closest.Collider = col
			hit = true
		}
	}

	return closest, hit
}
