package laser

import (
	"testing"

	"laserpuzzle/internal/components"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

var unitCube = rl.Vector3{X: 1, Y: 1, Z: 1}

// Rotations used throughout: facingX points +Z forward to +X with +Y up,
// facingXUpZ points forward to +X with +Z up.
var (
	facingX    = rl.Vector3{Y: 90}
	facingXUpZ = rl.Vector3{X: 90, Z: 90}
)

type fixture struct {
	scene   *engine.Scene
	physics *physics.PhysicsWorld
}

func newFixture() *fixture {
	return &fixture{
		scene:   engine.NewScene("test"),
		physics: physics.NewPhysicsWorld(),
	}
}

// box adds a unit-cube object at pos carrying comps.
func (f *fixture) box(name string, pos, rot rl.Vector3, comps ...engine.Component) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.Transform.Rotation = rot
	g.AddComponent(components.NewBoxCollider(unitCube))
	for _, c := range comps {
		g.AddComponent(c)
	}
	f.scene.AddGameObject(g)
	f.physics.AddObject(g)
	return g
}

func (f *fixture) emitter(pos, rot rl.Vector3, settings EmitterSettings) *Emitter {
	g := engine.NewGameObject("emitter")
	g.Transform.Position = pos
	g.Transform.Rotation = rot
	e := NewEmitter(settings)
	e.Caster = f.physics
	g.AddComponent(e)
	f.scene.AddGameObject(g)
	return e
}

func (f *fixture) solver() *Solver {
	return &Solver{
		Caster:          f.physics,
		MaxDistance:     DefaultMaxDistance,
		MaxDeflections:  DefaultMaxDeflections,
		Mask:            engine.AllLayers,
		TotalDeflectors: len(engine.FindComponents[*Deflector](f.scene)),
	}
}

type highlightRecorder struct {
	color   rl.Color
	width   float32
	enabled bool
	calls   int
}

func (h *highlightRecorder) SetColor(c rl.Color)     { h.color = c }
func (h *highlightRecorder) SetWidth(w float32)      { h.width = w }
func (h *highlightRecorder) SetEnabled(enabled bool) { h.enabled = enabled; h.calls++ }

type activeRecorder struct {
	active bool
}

func (a *activeRecorder) SetActive(active bool) { a.active = active }

func vecNear(t *testing.T, want, got rl.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-3, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, 1e-3, msgAndArgs...)
}
