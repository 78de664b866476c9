package laser

import (
	"encoding/binary"
	"math"

	"laserpuzzle/internal/engine"

	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultMaxDistance    float32 = 100
	DefaultMaxDeflections         = 10

	// ExitOffset pushes the next ray past the deflector it just left.
	ExitOffset float32 = 0.01
	// exitProbeDistance bounds the ray cast against a deflector's own collider.
	exitProbeDistance float32 = 100
	// maxIgnoredHits bounds how many times one segment may pass through the ignored object.
	maxIgnoredHits = 4
)

// Outcome is how a traced beam ended.
type Outcome int

const (
	HitReceiver Outcome = iota
	HitOpaque
	MaxRangeExceeded
	MaxDeflectionsExceeded
)

func (o Outcome) String() string {
	switch o {
	case HitReceiver:
		return "HitReceiver"
	case HitOpaque:
		return "HitOpaque"
	case MaxRangeExceeded:
		return "MaxRangeExceeded"
	case MaxDeflectionsExceeded:
		return "MaxDeflectionsExceeded"
	default:
		return "Unknown"
	}
}

// RayCaster finds the nearest surface along a ray.
type RayCaster interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool)
}

// Segment is one straight piece of a beam. Deflector is the deflector whose exit
// produced it, nil before the first deflection.
type Segment struct {
	Start     rl.Vector3
	End       rl.Vector3
	Deflector *Deflector
}

type TraceResult struct {
	Points []rl.Vector3
	// Deflectors holds each deflector once, in the order first reached.
	Deflectors []*Deflector
	// Deflections counts every redirection, repeats included.
	Deflections     int
	TotalDeflectors int
	Outcome         Outcome
	Receiver        *Receiver
	Fingerprint     uint64

	owners []*Deflector
}

// Segments returns consecutive point pairs.
func (r TraceResult) Segments() []Segment {
	if len(r.Points) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(r.Points)-1)
	for i := 0; i+1 < len(r.Points); i++ {
		var owner *Deflector
		if i < len(r.owners) {
			owner = r.owners[i]
		}
		segments = append(segments, Segment{Start: r.Points[i], End: r.Points[i+1], Deflector: owner})
	}
	return segments
}

// HitAll reports whether every deflector in the puzzle was reached.
func (r TraceResult) HitAll() bool {
	return len(r.Deflectors) == r.TotalDeflectors
}

func (r TraceResult) Contains(d *Deflector) bool {
	for _, hit := range r.Deflectors {
		if hit == d {
			return true
		}
	}
	return false
}

// Solver traces a beam through the scene. It holds no state between calls.
type Solver struct {
	Caster          RayCaster
	MaxDistance     float32
	MaxDeflections  int
	Mask            engine.LayerMask
	TotalDeflectors int
	// Ignore is skipped by every ray, normally the emitter itself.
	Ignore *engine.GameObject
}

// Solve traces a beam from origin along direction. The only side effect is the
// notification of a receiver the beam reaches.
func (s *Solver) Solve(origin, direction rl.Vector3) TraceResult {
	maxDistance := s.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	maxDeflections := max(s.MaxDeflections, 0)

	t := tracer{
		result:   TraceResult{TotalDeflectors: s.TotalDeflectors},
		position: origin,
		dir:      rl.Vector3Normalize(direction),
	}
	t.add(origin)

	if s.Caster == nil {
		t.add(rl.Vector3Add(origin, rl.Vector3Scale(t.dir, maxDistance)))
		return t.finish(MaxRangeExceeded)
	}

	for t.result.Deflections < maxDeflections {
		hit, ok := s.cast(t.position, t.dir, maxDistance)
		if !ok {
			t.add(rl.Vector3Add(t.position, rl.Vector3Scale(t.dir, maxDistance)))
			return t.finish(MaxRangeExceeded)
		}
		t.add(hit.Point)

		if d := engine.GetComponent[*Deflector](hit.GameObject); d != nil {
			t.deflect(d, hit)
			continue
		}

		if r := engine.GetComponent[*Receiver](hit.GameObject); r != nil {
			t.result.Receiver = r
			result := t.finish(HitReceiver)
			r.Evaluate(result.Deflectors, result.TotalDeflectors)
			return result
		}

		return t.finish(HitOpaque)
	}

	return t.finish(MaxDeflectionsExceeded)
}

func (s *Solver) cast(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	hit, ok := s.Caster.Raycast(origin, direction, maxDistance, s.Mask)
	travelled := float32(0)
	for i := 0; ok && s.Ignore != nil && hit.GameObject == s.Ignore && i < maxIgnoredHits; i++ {
		travelled += hit.Distance + ExitOffset
		if travelled >= maxDistance {
			return engine.RaycastResult{}, false
		}
		start := rl.Vector3Add(hit.Point, rl.Vector3Scale(direction, ExitOffset))
		hit, ok = s.Caster.Raycast(start, direction, maxDistance-travelled, s.Mask)
	}
	if ok && s.Ignore != nil && hit.GameObject == s.Ignore {
		return engine.RaycastResult{}, false
	}
	if ok {
		hit.Distance += travelled
	}
	return hit, ok
}

type tracer struct {
	result   TraceResult
	position rl.Vector3
	dir      rl.Vector3
	current  *Deflector
}

func (t *tracer) add(p rl.Vector3) {
	t.result.Points = append(t.result.Points, p)
	t.result.owners = append(t.result.owners, t.current)
}

func (t *tracer) deflect(d *Deflector, hit engine.RaycastResult) {
	if !t.result.Contains(d) {
		t.result.Deflectors = append(t.result.Deflectors, d)
	}

	exit := d.ExitDirection()
	center := d.Center()
	t.current = d
	t.add(center)

	exitPoint, ok := exitThrough(hit, center, exit)
	if !ok {
		extent := float32(0)
		if col := colliderOf(hit); col != nil {
			extent = col.Extent()
		}
		exitPoint = rl.Vector3Add(center, rl.Vector3Scale(exit, extent))
	}
	t.add(exitPoint)

	t.position = rl.Vector3Add(exitPoint, rl.Vector3Scale(exit, ExitOffset))
	t.dir = exit
	t.result.Deflections++
}

func (t *tracer) finish(outcome Outcome) TraceResult {
	t.result.Outcome = outcome
	t.result.Fingerprint = fingerprint(t.result)
	return t.result
}

func colliderOf(hit engine.RaycastResult) engine.Collider {
	if hit.Collider != nil {
		return hit.Collider
	}
	return engine.GetComponent[engine.Collider](hit.GameObject)
}

// exitThrough casts from the deflector center against the collider that was hit.
func exitThrough(hit engine.RaycastResult, center, exit rl.Vector3) (rl.Vector3, bool) {
	col := colliderOf(hit)
	if col == nil {
		return rl.Vector3{}, false
	}
	r, ok := col.RaycastSelf(center, exit, exitProbeDistance)
	if !ok {
		return rl.Vector3{}, false
	}
	return r.Point, true
}

func fingerprint(r TraceResult) uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float32) {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(f))
		_, _ = h.Write(buf[:4])
	}
	for _, p := range r.Points {
		writeFloat(p.X)
		writeFloat(p.Y)
		writeFloat(p.Z)
	}
	// Names rather than runtime UIDs keep the value stable across loads.
	for _, d := range r.Deflectors {
		if g := d.GetGameObject(); g != nil {
			_, _ = h.WriteString(g.Name)
		}
		_, _ = h.Write([]byte{0})
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(r.Outcome))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
