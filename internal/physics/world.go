package physics

import (
	"cmp"
	"slices"

	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	"go.uber.org/zap"
)

// CollisionPair represents two objects whose colliders overlap
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair orders a pair by UID so (a,b) and (b,a) share a key
func makePair(a, b *engine.GameObject) CollisionPair {
	if a.UID > b.UID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// PhysicsWorld answers ray queries and reports collider overlaps as trigger
// callbacks. It never moves objects.
type PhysicsWorld struct {
	Objects []*engine.GameObject

	activeCollisions  map[CollisionPair]bool // overlaps from last step
	currentCollisions map[CollisionPair]bool // overlaps this step
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Objects:           make([]*engine.GameObject, 0),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
	}
}

// AddObject registers g if it carries at least one collider.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) bool {
	if len(engine.GetComponents[engine.Collider](g)) == 0 {
		return false
	}
	if slices.Contains(p.Objects, g) {
		return true
	}
	p.Objects = append(p.Objects, g)
	return true
}

// RemoveObject unregisters g. Overlaps it was part of end without exit callbacks.
func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	for i, obj := range p.Objects {
		if obj == g {
			p.Objects = append(p.Objects[:i], p.Objects[i+1:]...)
			break
		}
	}
	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
}

// Step detects overlaps between active colliders and dispatches OnCollisionEnter
// and OnCollisionExit to handlers on both objects.
func (p *PhysicsWorld) Step() {
	p.currentCollisions = make(map[CollisionPair]bool, len(p.activeCollisions))

	for i := 0; i < len(p.Objects); i++ {
		a := p.Objects[i]
		if !a.ActiveInHierarchy() {
			continue
		}
		for j := i + 1; j < len(p.Objects); j++ {
			b := p.Objects[j]
			if !b.ActiveInHierarchy() {
				continue
			}
			if overlapping(a, b) {
				p.currentCollisions[makePair(a, b)] = true
			}
		}
	}

	p.dispatchCollisionCallbacks()
}

func overlapping(a, b *engine.GameObject) bool {
	for _, ca := range engine.GetComponents[engine.Collider](a) {
		for _, cb := range engine.GetComponents[engine.Collider](b) {
			sa, okA := ca.(ShapeCollider)
			sb, okB := cb.(ShapeCollider)
			if okA && okB {
				if Overlaps(sa.Shape(), sb.Shape()) {
					return true
				}
				continue
			}
			minA, maxA := ca.Bounds()
			minB, maxB := cb.Bounds()
			if (AABB{Min: minA, Max: maxA}).Intersects(AABB{Min: minB, Max: maxB}) {
				return true
			}
		}
	}
	return false
}

// dispatchCollisionCallbacks sends enter callbacks for new pairs and exit callbacks
// for ended ones, in UID order.
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	for _, pair := range sortedPairs(p.currentCollisions) {
		if !p.activeCollisions[pair] {
			logging.L().Named("physics").Debug("overlap begin",
				zap.String("a", pair.A.Name), zap.String("b", pair.B.Name))
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}

	for _, pair := range sortedPairs(p.activeCollisions) {
		if !p.currentCollisions[pair] {
			logging.L().Named("physics").Debug("overlap end",
				zap.String("a", pair.A.Name), zap.String("b", pair.B.Name))
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
		}
	}

	p.activeCollisions = p.currentCollisions
}

// IsOverlapping reports whether a and b overlapped at the last Step.
func (p *PhysicsWorld) IsOverlapping(a, b *engine.GameObject) bool {
	return p.activeCollisions[makePair(a, b)]
}

func sortedPairs(set map[CollisionPair]bool) []CollisionPair {
	pairs := make([]CollisionPair, 0, len(set))
	for pair := range set {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(x, y CollisionPair) int {
		if x.A.UID != y.A.UID {
			return cmp.Compare(x.A.UID, y.A.UID)
		}
		return cmp.Compare(x.B.UID, y.B.UID)
	})
	return pairs
}

func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}
