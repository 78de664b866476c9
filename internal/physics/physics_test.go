package physics

import (
	"testing"

	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shapeCollider wraps a fixed shape so the world can be tested without the
// components package.
type shapeCollider struct {
	engine.BaseComponent
	shape Shape
}

func (c *shapeCollider) Shape() Shape { return c.shape }

func (c *shapeCollider) RaycastSelf(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	hit, ok := c.shape.Raycast(origin, direction, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: c.GetGameObject(),
		Collider:   c,
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
		Inside:     hit.Inside,
	}, true
}

func (c *shapeCollider) Extent() float32 { return c.shape.Bounds().Extent() }

func (c *shapeCollider) Bounds() (rl.Vector3, rl.Vector3) {
	b := c.shape.Bounds()
	return b.Min, b.Max
}

type recorder struct {
	engine.BaseComponent
	entered []string
	exited  []string
}

func (r *recorder) OnCollisionEnter(other *engine.GameObject) { r.entered = append(r.entered, other.Name) }
func (r *recorder) OnCollisionExit(other *engine.GameObject)  { r.exited = append(r.exited, other.Name) }

func boxObject(name string, center rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = center
	g.AddComponent(&shapeCollider{shape: NewAABBasOBB(center, rl.Vector3{X: 1, Y: 1, Z: 1})})
	return g
}

func vecNear(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestAABBRaycastFrontFace(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 4.5, hit.Distance, 1e-5)
	vecNear(t, rl.Vector3{X: 4.5}, hit.Point)
	vecNear(t, rl.Vector3{X: -1}, hit.Normal)
}

func TestAABBRaycastFromInsideReportsExit(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Y: 1}, 100)
	require.True(t, ok)
	vecNear(t, rl.Vector3{Y: 1}, hit.Point)
	vecNear(t, rl.Vector3{Y: 1}, hit.Normal)
	assert.True(t, hit.Inside)

	outside, ok := box.Raycast(rl.Vector3{Y: -5}, rl.Vector3{Y: 1}, 100)
	require.True(t, ok)
	assert.False(t, outside.Inside)
}

func TestAABBRaycastRespectsMaxDistance(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})

	_, ok := box.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 4)
	assert.False(t, ok)
	_, ok = box.Raycast(rl.Vector3{}, rl.Vector3{X: -1}, 100)
	assert.False(t, ok, "box behind the ray")
}

func TestOBBRaycastRotated(t *testing.T) {
	// 45 degrees around Y: the corner faces the ray
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 45*rl.Deg2rad)
	box := NewOBB(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1}, q)

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 5-0.70710678, hit.Distance, 1e-4)
}

func TestOBBRaycastFromCenterExitsAlongDirection(t *testing.T) {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, 90*rl.Deg2rad)
	box := NewOBB(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1}, q)

	hit, ok := box.Raycast(rl.Vector3{X: 5}, rl.Vector3{Y: 1}, 100)
	require.True(t, ok)
	vecNear(t, rl.Vector3{X: 5, Y: 0.5}, hit.Point)
	vecNear(t, rl.Vector3{Y: 1}, hit.Normal)
}

func TestOBBBoundsOfRotatedBox(t *testing.T) {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 45*rl.Deg2rad)
	b := NewOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, q).Bounds()
	assert.InDelta(t, 1.41421356, b.Max.X, 1e-4)
	assert.InDelta(t, 1, b.Max.Y, 1e-4)
}

func TestSphereRaycast(t *testing.T) {
	s := Sphere{Center: rl.Vector3{Z: 10}, Radius: 2}

	hit, ok := s.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 8, hit.Distance, 1e-4)
	vecNear(t, rl.Vector3{Z: -1}, hit.Normal)

	assert.False(t, hit.Inside)

	inside, ok := s.Raycast(rl.Vector3{Z: 10}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 2, inside.Distance, 1e-4)
	assert.True(t, inside.Inside)
}

func TestOverlaps(t *testing.T) {
	a := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	b := NewAABBasOBB(rl.Vector3{X: 0.9}, rl.Vector3{X: 1, Y: 1, Z: 1})
	c := NewAABBasOBB(rl.Vector3{X: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})

	assert.True(t, Overlaps(a, b))
	assert.False(t, Overlaps(a, c))
	assert.True(t, Overlaps(a, Sphere{Center: rl.Vector3{Y: 1}, Radius: 0.6}))
	assert.True(t, Overlaps(Sphere{Radius: 1}, Sphere{Center: rl.Vector3{X: 1.5}, Radius: 1}))
	assert.False(t, Overlaps(Sphere{Radius: 1}, c))
}

func TestWorldRaycastNearestHit(t *testing.T) {
	w := NewPhysicsWorld()
	far := boxObject("far", rl.Vector3{X: 10})
	near := boxObject("near", rl.Vector3{X: 5})
	w.AddObject(far)
	w.AddObject(near)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 2}, 100, engine.AllLayers)
	require.True(t, ok)
	assert.Same(t, near, hit.GameObject)
	assert.InDelta(t, 4.5, hit.Distance, 1e-4)
}

func TestWorldRaycastFiltersLayersAndInactive(t *testing.T) {
	w := NewPhysicsWorld()
	near := boxObject("near", rl.Vector3{X: 5})
	near.Layer = 3
	mid := boxObject("mid", rl.Vector3{X: 7})
	mid.Active = false
	far := boxObject("far", rl.Vector3{X: 10})
	w.AddObject(near)
	w.AddObject(mid)
	w.AddObject(far)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, engine.AllLayers.Without(3))
	require.True(t, ok)
	assert.Same(t, far, hit.GameObject)

	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, engine.NoLayers)
	assert.False(t, ok)
}

func TestWorldRaycastSkipsCollidersAroundOrigin(t *testing.T) {
	w := NewPhysicsWorld()
	around := boxObject("around", rl.Vector3{})
	far := boxObject("far", rl.Vector3{X: 5})
	w.AddObject(around)
	w.AddObject(far)

	hit, ok := w.Raycast(rl.Vector3{X: 0.2}, rl.Vector3{X: 1}, 100, engine.AllLayers)
	require.True(t, ok)
	assert.Same(t, far, hit.GameObject)
	assert.InDelta(t, 4.3, hit.Distance, 1e-4)

	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: -1}, 100, engine.AllLayers)
	assert.False(t, ok, "only the containing box lies behind")

	// The collider itself still reports where the ray leaves it.
	self, ok := engine.GetComponent[*shapeCollider](around).RaycastSelf(rl.Vector3{}, rl.Vector3{X: -1}, 100)
	require.True(t, ok)
	assert.True(t, self.Inside)
	vecNear(t, rl.Vector3{X: -0.5}, self.Point)
}

func TestWorldRaycastZeroDirection(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(boxObject("box", rl.Vector3{}))

	_, ok := w.Raycast(rl.Vector3{X: -5}, rl.Vector3{}, 100, engine.AllLayers)
	assert.False(t, ok)
}

func TestAddObjectRequiresCollider(t *testing.T) {
	w := NewPhysicsWorld()
	assert.False(t, w.AddObject(engine.NewGameObject("empty")))

	box := boxObject("box", rl.Vector3{})
	assert.True(t, w.AddObject(box))
	assert.True(t, w.AddObject(box))
	assert.Len(t, w.Objects, 1)
}

func TestStepDispatchesEnterAndExit(t *testing.T) {
	w := NewPhysicsWorld()
	door := boxObject("door", rl.Vector3{})
	rec := &recorder{}
	door.AddComponent(rec)

	player := engine.NewGameObject("player")
	body := &shapeCollider{shape: Sphere{Center: rl.Vector3{X: 0.8}, Radius: 0.5}}
	player.AddComponent(body)

	w.AddObject(door)
	w.AddObject(player)

	w.Step()
	assert.Equal(t, []string{"player"}, rec.entered)
	assert.True(t, w.IsOverlapping(player, door))

	w.Step()
	assert.Len(t, rec.entered, 1, "enter fires once per overlap")

	body.shape = Sphere{Center: rl.Vector3{X: 5}, Radius: 0.5}
	w.Step()
	assert.Equal(t, []string{"player"}, rec.exited)
	assert.False(t, w.IsOverlapping(door, player))
}

func TestRemoveObjectDropsOverlaps(t *testing.T) {
	w := NewPhysicsWorld()
	a := boxObject("a", rl.Vector3{})
	b := boxObject("b", rl.Vector3{X: 0.5})
	rec := &recorder{}
	a.AddComponent(rec)
	w.AddObject(a)
	w.AddObject(b)
	w.Step()

	w.RemoveObject(b)
	w.Step()
	assert.Empty(t, rec.exited)
	assert.Len(t, w.Objects, 1)
}
