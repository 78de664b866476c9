package laser

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// ResolvePolicy decides when an active beam is traced again.
type ResolvePolicy int

const (
	// ResolveEveryFrame traces on every tick while active.
	ResolveEveryFrame ResolvePolicy = iota
	// ResolveOnChange traces on activation and after MarkDirty.
	ResolveOnChange
)

func (p ResolvePolicy) String() string {
	if p == ResolveOnChange {
		return "on-change"
	}
	return "every-frame"
}

// ParseResolvePolicy accepts "on-change"; anything else is every-frame.
func ParseResolvePolicy(s string) ResolvePolicy {
	if s == "on-change" {
		return ResolveOnChange
	}
	return ResolveEveryFrame
}

type EmitterSettings struct {
	MaxDistance    float32
	Mask           engine.LayerMask
	Width          float32
	Color          rl.Color
	MaxDeflections int
	Enabled        bool
	// Continuous keeps the beam on. Otherwise it pulses once per CycleTime for ActiveTime.
	Continuous  bool
	CycleTime   float32
	ActiveTime  float32
	ShrinkDelay float32
	Resolve     ResolvePolicy
}

func DefaultEmitterSettings() EmitterSettings {
	return EmitterSettings{
		MaxDistance:    DefaultMaxDistance,
		Mask:           engine.AllLayers,
		Width:          0.1,
		Color:          rl.Red,
		MaxDeflections: DefaultMaxDeflections,
		Enabled:        true,
		Continuous:     false,
		CycleTime:      5,
		ActiveTime:     0.5,
		ShrinkDelay:    0.1,
		Resolve:        ResolveEveryFrame,
	}
}

// Normalize clamps out-of-range values.
func (s *EmitterSettings) Normalize() {
	if s.MaxDistance <= 0 {
		s.MaxDistance = DefaultMaxDistance
	}
	s.MaxDeflections = max(s.MaxDeflections, 0)
	s.Width = max(s.Width, 0)
	s.CycleTime = max(s.CycleTime, 0)
	s.ActiveTime = max(s.ActiveTime, 0)
	s.ShrinkDelay = max(s.ShrinkDelay, 0)
}

// BeamSegment is a segment with the color it is drawn in.
type BeamSegment struct {
	Start rl.Vector3
	End   rl.Vector3
	Color rl.Color
}

// Emitter fires a beam along its object's forward vector, either continuously
// or in pulses.
type Emitter struct {
	engine.BaseComponent
	Settings EmitterSettings
	// Caster defaults to the scene's world.
	Caster RayCaster
	// TotalDeflectors overrides the scene count when non-negative.
	TotalDeflectors int

	OnResolved engine.EventWithArg[TraceResult]

	active      bool
	dirty       bool
	timer       float32
	activeTimer float32
	total       int
	result      TraceResult
	log         *zap.Logger
}

func NewEmitter(settings EmitterSettings) *Emitter {
	settings.Normalize()
	return &Emitter{
		Settings:        settings,
		TotalDeflectors: -1,
	}
}

// Start counts the scene's deflectors and applies the initial emission state.
func (e *Emitter) Start() {
	e.Settings.Normalize()
	e.total = e.TotalDeflectors
	g := e.GetGameObject()
	if e.total < 0 {
		var scene *engine.Scene
		if g != nil {
			scene = g.Scene
		}
		e.total = len(engine.FindComponents[*Deflector](scene))
	}
	e.logger().Info("emitter started", zap.Int("deflectors", e.total))

	if e.Settings.Enabled && e.Settings.Continuous {
		e.active = true
		e.resolve()
	} else {
		e.deactivate()
	}
}

// Update ticks the emitter from the scene loop.
func (e *Emitter) Update(deltaTime float32) {
	e.Tick(deltaTime)
}

func (e *Emitter) Tick(deltaTime float32) {
	s := &e.Settings
	if !s.Enabled {
		if e.active {
			e.deactivate()
		}
		return
	}

	if s.Continuous {
		if !e.active {
			e.active = true
			e.resolve()
		} else {
			e.refresh()
		}
		return
	}

	e.timer += deltaTime
	if e.active && e.timer >= s.ActiveTime {
		e.deactivate()
		e.activeTimer = 0
	} else if !e.active && e.timer >= s.CycleTime {
		e.timer = 0
		e.activeTimer = 0
		e.active = true
		e.resolve()
	}

	if e.active {
		e.activeTimer += deltaTime
		e.refresh()
	}
}

// Activate turns the beam on now and restarts the pulse cycle.
func (e *Emitter) Activate() {
	if !e.Settings.Enabled {
		return
	}
	e.active = true
	e.timer = 0
	e.activeTimer = 0
	e.resolve()
}

// ForceDeactivate turns the beam off and drops the traced path.
func (e *Emitter) ForceDeactivate() {
	e.deactivate()
}

// MarkDirty asks for a new trace on the next tick.
func (e *Emitter) MarkDirty() {
	e.dirty = true
}

func (e *Emitter) SetEnabled(enabled bool) {
	e.Settings.Enabled = enabled
}

func (e *Emitter) SetContinuous(continuous bool) {
	e.Settings.Continuous = continuous
}

func (e *Emitter) IsActive() bool {
	return e.active
}

// CurrentWidth is the beam width after the pulse shrink effect.
func (e *Emitter) CurrentWidth() float32 {
	s := e.Settings
	if e.activeTimer <= s.ShrinkDelay {
		return s.Width
	}
	shrink := s.ActiveTime - s.ShrinkDelay
	if shrink <= 0 {
		return 0
	}
	progress := clamp((e.activeTimer-s.ShrinkDelay)/shrink, 0, 1)
	return s.Width * (1 - progress)
}

// Result is the last trace. It is empty while inactive.
func (e *Emitter) Result() TraceResult {
	return e.result
}

func (e *Emitter) Points() []rl.Vector3 {
	return append([]rl.Vector3(nil), e.result.Points...)
}

func (e *Emitter) HitDeflectors() []*Deflector {
	return append([]*Deflector(nil), e.result.Deflectors...)
}

func (e *Emitter) TotalDeflectorCount() int {
	return e.total
}

// Segments returns the beam for drawing. Segments after a tinted deflector take
// its tint.
func (e *Emitter) Segments() []BeamSegment {
	segments := e.result.Segments()
	out := make([]BeamSegment, 0, len(segments))
	for _, seg := range segments {
		c := e.Settings.Color
		if seg.Deflector != nil && seg.Deflector.Tint.A != 0 {
			c = seg.Deflector.Tint
		}
		out = append(out, BeamSegment{Start: seg.Start, End: seg.End, Color: c})
	}
	return out
}

func (e *Emitter) Stop() {
	e.deactivate()
}

func (e *Emitter) Dispose() {
	e.deactivate()
	e.OnResolved.RemoveAllListeners()
}

func (e *Emitter) refresh() {
	if e.Settings.Resolve == ResolveEveryFrame || e.dirty {
		e.resolve()
	}
}

func (e *Emitter) deactivate() {
	e.active = false
	e.dirty = false
	e.result = TraceResult{}
}

func (e *Emitter) resolve() {
	e.dirty = false
	if !e.active {
		e.result = TraceResult{}
		return
	}
	g := e.GetGameObject()
	if g == nil {
		return
	}

	solver := Solver{
		Caster:          e.caster(),
		MaxDistance:     e.Settings.MaxDistance,
		MaxDeflections:  e.Settings.MaxDeflections,
		Mask:            e.Settings.Mask,
		TotalDeflectors: e.total,
		Ignore:          g,
	}
	previous := e.result.Fingerprint
	e.result = solver.Solve(g.WorldPosition(), g.Forward())

	if e.result.Fingerprint != previous {
		e.logger().Debug("laser path changed",
			zap.Stringer("outcome", e.result.Outcome),
			zap.Int("points", len(e.result.Points)),
			zap.Int("deflectors", len(e.result.Deflectors)),
			zap.Uint64("fingerprint", e.result.Fingerprint))
	}
	e.OnResolved.Invoke(e.result)
}

func (e *Emitter) caster() RayCaster {
	if e.Caster != nil {
		return e.Caster
	}
	if g := e.GetGameObject(); g != nil && g.Scene != nil && g.Scene.World != nil {
		return g.Scene.World
	}
	return nil
}

func (e *Emitter) logger() *zap.Logger {
	if e.log == nil {
		name := ""
		if g := e.GetGameObject(); g != nil {
			name = g.Name
		}
		e.log = logging.L().Named("laser").With(zap.String("emitter", name))
	}
	return e.log
}
