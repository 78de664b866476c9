package playerstate

import (
	"errors"
	"fmt"
	"slices"

	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	"go.uber.org/zap"
)

const (
	Moving      = "Moving"
	LaserPuzzle = "LaserPuzzle"
	CubePuzzle  = "CubePuzzle"
)

// Fade animator parameters and stage times in seconds.
const (
	FadeTrigger  = "StartFade"
	FinishedBool = "isFinished"

	CameraSwitchAt float32 = 1.0
	RootSwitchAt   float32 = 1.5
	FinishAt       float32 = 2.0
)

var ErrUnknownState = errors.New("unknown player state")

// View is what a state shows: one camera and the objects that belong to it.
type View struct {
	Camera engine.Activatable
	Roots  []engine.Activatable
}

// ViewRefs declares a view by object references, resolved at Start.
type ViewRefs struct {
	Camera engine.GameObjectRef
	Roots  []engine.GameObjectRef
}

// Machine switches the player between states behind a screen fade.
type Machine struct {
	engine.BaseComponent
	// Fade plays the fade animation. FadeRef names an object carrying one.
	Fade    engine.Animator
	FadeRef engine.GameObjectRef
	Refs    map[string]ViewRefs

	OnStateChanged engine.EventWithArg[string]

	views   map[string]View
	current string
	target  string
	pending *Sequence
	log     *zap.Logger
}

func NewMachine(fade engine.Animator) *Machine {
	return &Machine{
		Fade:    fade,
		views:   make(map[string]View),
		current: Moving,
	}
}

// Register binds a view to a state, replacing any previous one.
func (m *Machine) Register(state string, view View) {
	if m.views == nil {
		m.views = make(map[string]View)
	}
	m.views[state] = view
}

// States returns the registered states in sorted order.
func (m *Machine) States() []string {
	states := make([]string, 0, len(m.views))
	for s := range m.views {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Start resolves declared views and shows the Moving view at once.
func (m *Machine) Start() {
	m.log = logging.L().Named("playerstate")
	m.resolveRefs()
	m.cancelPending()
	m.current = Moving
	m.showCamera(Moving)
	m.showRoots(Moving)
	m.log.Info("player state machine started", zap.Strings("states", m.States()))
}

// Update ticks the machine from the scene loop.
func (m *Machine) Update(deltaTime float32) {
	m.Tick(deltaTime)
}

func (m *Machine) Tick(deltaTime float32) {
	if m.pending == nil {
		return
	}
	m.pending.Tick(deltaTime)
	if m.pending != nil && m.pending.Done() {
		m.pending = nil
	}
}

// Request starts the fade sequence to state, cancelling any sequence in flight.
func (m *Machine) Request(state string) error {
	if _, ok := m.views[state]; !ok {
		return fmt.Errorf("request %q: %w", state, ErrUnknownState)
	}
	if state == m.current && m.pending == nil {
		return nil
	}
	m.cancelPending()

	m.target = state
	m.logger().Debug("player state requested", zap.String("from", m.current), zap.String("to", state))
	m.pending = NewSequence(
		Stage{At: 0, Run: func() {
			if m.Fade != nil {
				m.Fade.SetBool(FinishedBool, false)
				m.Fade.SetTrigger(FadeTrigger)
			}
		}},
		Stage{At: CameraSwitchAt, Run: func() { m.showCamera(state) }},
		Stage{At: RootSwitchAt, Run: func() { m.showRoots(state) }},
		Stage{At: FinishAt, Run: func() { m.commit(state) }},
	)
	m.pending.Tick(0)
	return nil
}

// Cancel stops a pending sequence where it is.
func (m *Machine) Cancel() {
	m.cancelPending()
}

func (m *Machine) Current() string {
	return m.current
}

// Pending returns the requested state while a sequence is running.
func (m *Machine) Pending() (string, bool) {
	if m.pending == nil {
		return "", false
	}
	return m.target, true
}

func (m *Machine) Stop() {
	m.cancelPending()
}

func (m *Machine) Dispose() {
	m.cancelPending()
	m.OnStateChanged.RemoveAllListeners()
}

func (m *Machine) commit(state string) {
	if m.Fade != nil {
		m.Fade.SetBool(FinishedBool, true)
	}
	previous := m.current
	m.current = state
	m.pending = nil
	m.logger().Info("player state changed", zap.String("from", previous), zap.String("to", state))
	m.OnStateChanged.Invoke(state)
}

func (m *Machine) cancelPending() {
	if m.pending != nil {
		m.pending.Cancel()
		m.pending = nil
	}
}

func (m *Machine) showCamera(state string) {
	for _, name := range m.States() {
		if name != state && m.views[name].Camera != nil {
			m.views[name].Camera.SetActive(false)
		}
	}
	if cam := m.views[state].Camera; cam != nil {
		cam.SetActive(true)
	}
}

func (m *Machine) showRoots(state string) {
	for _, name := range m.States() {
		if name == state {
			continue
		}
		for _, root := range m.views[name].Roots {
			root.SetActive(false)
		}
	}
	for _, root := range m.views[state].Roots {
		root.SetActive(true)
	}
}

func (m *Machine) resolveRefs() {
	g := m.GetGameObject()
	if g == nil {
		return
	}
	if m.Fade == nil {
		if obj := m.FadeRef.Get(g.Scene); obj != nil {
			m.Fade = engine.GetComponent[engine.Animator](obj)
		}
	}
	for state, refs := range m.Refs {
		if _, ok := m.views[state]; ok {
			continue
		}
		var view View
		if cam := refs.Camera.Get(g.Scene); cam != nil {
			view.Camera = cam
		}
		for _, ref := range refs.Roots {
			if root := ref.Get(g.Scene); root != nil {
				view.Roots = append(view.Roots, root)
			}
		}
		m.Register(state, view)
	}
}

func (m *Machine) logger() *zap.Logger {
	if m.log == nil {
		m.log = logging.L().Named("playerstate")
	}
	return m.log
}
