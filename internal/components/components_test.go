package components

import (
	"testing"

	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxColliderImplementsShapeCollider(t *testing.T) {
	var _ physics.ShapeCollider = (*BoxCollider)(nil)
	var _ physics.ShapeCollider = (*SphereCollider)(nil)
}

func TestBoxColliderFollowsPoseAndScale(t *testing.T) {
	g := engine.NewGameObject("tower")
	g.Transform.Position = rl.Vector3{X: 5}
	g.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	g.AddComponent(box)

	hit, ok := box.RaycastSelf(rl.Vector3{}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	assert.Same(t, g, hit.GameObject)
	assert.InDelta(t, 4, hit.Distance, 1e-4)

	min, max := box.Bounds()
	assert.InDelta(t, 4, min.X, 1e-4)
	assert.InDelta(t, 6, max.X, 1e-4)
	assert.InDelta(t, 1.7320508, box.Extent(), 1e-4)
}

func TestBoxColliderOffsetRotatesWithObject(t *testing.T) {
	g := engine.NewGameObject("tower")
	g.Transform.Rotation = rl.Vector3{Y: 90}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	box.Offset = rl.Vector3{Z: 1}
	g.AddComponent(box)

	c := box.GetCenter()
	assert.InDelta(t, 1, c.X, 1e-4)
	assert.InDelta(t, 0, c.Z, 1e-4)
}

func TestBoxColliderSelfRaycastFromCenter(t *testing.T) {
	g := engine.NewGameObject("tower")
	g.Transform.Position = rl.Vector3{X: 5}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	g.AddComponent(box)

	hit, ok := box.RaycastSelf(rl.Vector3{X: 5}, rl.Vector3{Y: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.Point.Y, 1e-4)

	_, ok = box.RaycastSelf(rl.Vector3{X: 5}, rl.Vector3{}, 100)
	assert.False(t, ok)
}

func TestSphereColliderScale(t *testing.T) {
	g := engine.NewGameObject("ball")
	g.Transform.Scale = rl.Vector3{X: 1, Y: 3, Z: 1}
	s := NewSphereCollider(0.5)
	g.AddComponent(s)

	assert.InDelta(t, 1.5, s.GetWorldRadius(), 1e-5)
	hit, ok := s.RaycastSelf(rl.Vector3{X: -5}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 3.5, hit.Distance, 1e-4)
}

func TestOutlineHighlightable(t *testing.T) {
	o := NewOutline()
	var h engine.Highlightable = o
	h.SetColor(rl.Green)
	h.SetWidth(8)
	h.SetEnabled(true)

	assert.Equal(t, rl.Green, o.Color)
	assert.Equal(t, float32(8), o.Width)
	assert.True(t, o.Enabled)
}

func TestMaterialHighlightSwapsAndRestores(t *testing.T) {
	g := engine.NewGameObject("tower")
	mr := NewMeshRenderer(MeshCube, rl.Gray, rl.Vector3{X: 1, Y: 1, Z: 1})
	mh := NewMaterialHighlight(rl.Yellow)
	g.AddComponent(mr)
	g.AddComponent(mh)

	mh.SetEnabled(true)
	assert.Equal(t, rl.Yellow, mr.Color)
	assert.True(t, mh.Enabled())

	mh.SetColor(rl.Orange)
	assert.Equal(t, rl.Orange, mr.Color)

	mh.SetEnabled(true)
	mh.SetEnabled(false)
	assert.Equal(t, rl.Gray, mr.Color)
	assert.False(t, mh.Enabled())
}

func TestMaterialHighlightWithoutRendererIsNoop(t *testing.T) {
	g := engine.NewGameObject("bare")
	mh := NewMaterialHighlight(rl.Yellow)
	g.AddComponent(mh)

	mh.SetEnabled(true)
	assert.False(t, mh.Enabled())
}

func TestAnimatorRecordsTriggers(t *testing.T) {
	a := NewAnimator()
	var seen []string
	a.OnTrigger.AddListener(func(name string) { seen = append(seen, name) })

	a.SetTrigger("OpenDoor")
	a.SetTrigger("StartFade")
	a.SetBool("isFinished", true)

	assert.Equal(t, 1, a.TriggerCount("OpenDoor"))
	assert.True(t, a.GetBool("isFinished"))
	assert.Equal(t, []string{"OpenDoor", "StartFade"}, seen)
	assert.Equal(t, []string{"OpenDoor", "StartFade"}, a.ConsumeTriggers())
	assert.Empty(t, a.ConsumeTriggers())
}

func TestActivatorTogglesTargets(t *testing.T) {
	scene := engine.NewScene("test")
	root := engine.NewGameObject("root")
	a := engine.NewGameObject("a")
	b := engine.NewGameObject("b")
	scene.AddGameObject(root)
	scene.AddGameObject(a)
	scene.AddGameObject(b)

	act := NewActivator(engine.RefTo(a), engine.RefTo(b), engine.GameObjectRef{})
	root.AddComponent(act)

	act.SetActive(false)
	assert.False(t, root.Active)
	assert.False(t, a.Active)
	assert.False(t, b.Active)
	assert.False(t, act.IsActive())

	act.SetActive(true)
	assert.True(t, a.Active && b.Active && root.Active)
}

func TestActiveCamera(t *testing.T) {
	scene := engine.NewScene("test")
	first := engine.NewGameObject("first")
	first.AddComponent(NewCamera())
	first.Active = false
	second := engine.NewGameObject("second")
	second.Transform.Position = rl.Vector3{Y: 2}
	cam := NewCamera()
	second.AddComponent(cam)
	scene.AddGameObject(first)
	scene.AddGameObject(second)

	require.Same(t, cam, ActiveCamera(scene))
	rc := cam.GetRaylibCamera()
	assert.Equal(t, float32(2), rc.Position.Y)
	assert.InDelta(t, 1, rc.Target.Z, 1e-5)
}

func TestParseMeshType(t *testing.T) {
	for _, m := range []MeshType{MeshCube, MeshSphere, MeshPlane} {
		assert.Equal(t, m, ParseMeshType(m.String()))
	}
	assert.Equal(t, MeshCube, ParseMeshType("teapot"))
}
