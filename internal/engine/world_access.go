package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Collider   Collider // the collider that was hit
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
	// Inside marks a ray that started inside the collider; Point is where it leaves.
	Inside bool
}

// Collider is implemented by collider components. RaycastSelf intersects a ray with
// this collider only; rays starting inside the shape report the far side.
type Collider interface {
	Component
	RaycastSelf(origin, direction rl.Vector3, maxDistance float32) (RaycastResult, bool)
	// Extent is the half-diagonal of the world-space bounds.
	Extent() float32
	Bounds() (min, max rl.Vector3)
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask) (RaycastResult, bool)
}
