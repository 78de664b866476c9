package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64    // runtime identity, unique per process
	ID         uuid.UUID // persistent identity, stored in scene files
	Name       string
	Tags       []string
	Layer      Layer
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		ID:     uuid.New(),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.started {
		c.Start()
	}
}

// GetComponent returns the first component assignable to T, or the zero value.
// T may be a concrete pointer type or an interface such as Collider.
func GetComponent[T any](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component assignable to T.
func GetComponents[T any](g *GameObject) []T {
	if g == nil {
		return nil
	}
	var result []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SetActive implements Activatable so cameras, prompt canvases and puzzle roots
// can be toggled by controllers that only know the capability.
func (g *GameObject) SetActive(active bool) {
	g.Active = active
}

// ActiveInHierarchy reports whether this object and all of its parents are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for obj := g; obj != nil; obj = obj.Parent {
		if !obj.Active {
			return false
		}
	}
	return true
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3RotateByQuaternion(scaled, g.Parent.WorldQuaternion())
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldQuaternion() rl.Quaternion {
	local := g.Transform.GetQuaternion()
	if g.Parent == nil {
		return local
	}
	return rl.QuaternionMultiply(g.Parent.WorldQuaternion(), local)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// Forward returns the world-space +Z axis of this object.
func (g *GameObject) Forward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(WorldForward, g.WorldQuaternion()))
}

// Up returns the world-space +Y axis of this object.
func (g *GameObject) Up() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(WorldUp, g.WorldQuaternion()))
}
