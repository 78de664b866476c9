package world

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/laser"
	"laserpuzzle/internal/logging"
	"laserpuzzle/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var _ engine.WorldAccess = (*World)(nil)

// World owns a scene and the physics world that answers its ray queries and
// trigger overlaps.
type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld
	Puzzle  *Puzzle

	started bool
	log     *zap.Logger
}

func New(name string) *World {
	w := &World{
		Scene:   engine.NewScene(name),
		Physics: physics.NewPhysicsWorld(),
		log:     logging.L().Named("world"),
	}
	w.Scene.World = w
	return w
}

// Add puts g and its children into the scene and registers every collider with physics.
func (w *World) Add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
	for _, child := range g.Children {
		w.Add(child)
	}
}

// Start starts every object once. Objects spawned afterwards start on spawn.
func (w *World) Start() {
	if w.started {
		return
	}
	w.started = true
	// Tower controllers move their towers in Start, so they start before any
	// emitter traces.
	for _, tc := range engine.FindComponents[*laser.TowerController](w.Scene) {
		if g := tc.GetGameObject(); g != nil {
			g.Start()
		}
	}
	w.Scene.Start()
	w.log.Info("world started", zap.String("scene", w.Scene.Name), zap.Int("objects", len(w.Scene.GameObjects)))
}

// Update runs one frame: scene components first, then trigger overlaps.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Physics.Step()
}

// GetCollidableObjects returns all GameObjects that carry a collider
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if engine.GetComponent[engine.Collider](g) != nil {
			result = append(result, g)
		}
	}
	return result
}

func (w *World) SpawnObject(g *engine.GameObject) {
	w.Add(g)
	if w.started {
		g.Start()
		for _, child := range g.Children {
			child.Start()
		}
	}
}

func (w *World) Destroy(g *engine.GameObject) {
	var drop func(obj *engine.GameObject)
	drop = func(obj *engine.GameObject) {
		for _, child := range obj.Children {
			drop(child)
		}
		w.Physics.RemoveObject(obj)
	}
	drop(g)
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	w.Scene.RemoveGameObject(g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, mask)
}

// Unload stops every host-driven controller and clears the scene.
func (w *World) Unload() {
	if w.Puzzle != nil {
		w.Puzzle.Dispose()
	}
	for _, g := range append([]*engine.GameObject(nil), w.Scene.GameObjects...) {
		if g.Parent == nil {
			w.Destroy(g)
		}
	}
	w.started = false
}
