package laser

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type TowerSettings struct {
	MoveSpeed      float32
	MinZ           float32
	MaxZ           float32
	HighlightColor rl.Color
	HighlightWidth float32
}

func DefaultTowerSettings() TowerSettings {
	return TowerSettings{
		MoveSpeed:      1,
		MinZ:           -0.5,
		MaxZ:           0.5,
		HighlightColor: rl.Yellow,
		HighlightWidth: 5,
	}
}

// Normalize swaps an inverted Z range and clamps negative values.
func (s *TowerSettings) Normalize() {
	if s.MinZ > s.MaxZ {
		s.MinZ, s.MaxZ = s.MaxZ, s.MinZ
	}
	s.MoveSpeed = max(s.MoveSpeed, 0)
	s.HighlightWidth = max(s.HighlightWidth, 0)
}

// TowerController selects one deflector tower at a time and slides it along Z.
type TowerController struct {
	engine.BaseComponent
	Settings TowerSettings

	// Towers are the controlled objects. TowerRefs fill it at Start when empty.
	Towers    []*engine.GameObject
	TowerRefs []engine.GameObjectRef
	// Highlights is parallel to Towers; nil entries are skipped.
	Highlights []engine.Highlightable

	OnSelectionChanged engine.EventWithArg[int]
	OnMoved            engine.EventWithArg[int]

	selected int
	axis     float32
}

func NewTowerController(settings TowerSettings, towers ...*engine.GameObject) *TowerController {
	settings.Normalize()
	return &TowerController{
		Settings: settings,
		Towers:   towers,
		selected: -1,
	}
}

// Start moves every tower to MinZ and selects the first one.
func (t *TowerController) Start() {
	t.Settings.Normalize()
	t.resolveTowers()

	for _, tower := range t.Towers {
		tower.Transform.Position.Z = t.Settings.MinZ
	}
	for i := range t.Towers {
		if h := t.highlight(i); h != nil {
			h.SetEnabled(false)
		}
	}

	t.selected = -1
	if len(t.Towers) > 0 {
		t.Select(0)
	}
	logging.L().Named("laser").Info("tower controller started", zap.Int("towers", len(t.Towers)))
}

// Update applies the held move input.
func (t *TowerController) Update(deltaTime float32) {
	if t.axis != 0 {
		t.AdjustPosition(t.axis, deltaTime)
	}
}

// Select changes the selection to i, clamped to the tower range.
func (t *TowerController) Select(i int) {
	if len(t.Towers) == 0 {
		return
	}
	i = min(max(i, 0), len(t.Towers)-1)
	if i == t.selected {
		return
	}

	if h := t.highlight(t.selected); h != nil {
		h.SetEnabled(false)
	}
	t.selected = i
	if h := t.highlight(i); h != nil {
		h.SetColor(t.Settings.HighlightColor)
		h.SetWidth(t.Settings.HighlightWidth)
		h.SetEnabled(true)
	}

	logging.L().Named("laser").Debug("tower selected",
		zap.Int("index", i), zap.String("tower", t.Towers[i].Name))
	t.OnSelectionChanged.Invoke(i)
}

func (t *TowerController) SelectPrevious() {
	t.Select(max(0, t.selected-1))
}

func (t *TowerController) SelectNext() {
	t.Select(min(len(t.Towers)-1, t.selected+1))
}

// SetAxis stores the held move input, clamped to [-1, 1].
func (t *TowerController) SetAxis(v float32) {
	t.axis = clamp(v, -1, 1)
}

func (t *TowerController) Axis() float32 {
	return t.axis
}

// AdjustPosition moves the selected tower along Z by axis*MoveSpeed*dt within
// [MinZ, MaxZ].
func (t *TowerController) AdjustPosition(axis, deltaTime float32) {
	if t.selected < 0 || t.selected >= len(t.Towers) {
		return
	}
	tower := t.Towers[t.selected]
	old := tower.Transform.Position.Z
	z := clamp(old+axis*t.Settings.MoveSpeed*deltaTime, t.Settings.MinZ, t.Settings.MaxZ)
	if z == old {
		return
	}
	tower.Transform.Position.Z = z
	t.OnMoved.Invoke(t.selected)
}

func (t *TowerController) Selected() int {
	return t.selected
}

func (t *TowerController) SelectedTower() *engine.GameObject {
	if t.selected < 0 || t.selected >= len(t.Towers) {
		return nil
	}
	return t.Towers[t.selected]
}

// Stop releases the held input and clears every highlight.
func (t *TowerController) Stop() {
	t.axis = 0
	for i := range t.Towers {
		if h := t.highlight(i); h != nil {
			h.SetEnabled(false)
		}
	}
}

func (t *TowerController) Dispose() {
	t.Stop()
	t.OnSelectionChanged.RemoveAllListeners()
	t.OnMoved.RemoveAllListeners()
}

func (t *TowerController) highlight(i int) engine.Highlightable {
	if i < 0 || i >= len(t.Highlights) {
		return nil
	}
	return t.Highlights[i]
}

func (t *TowerController) resolveTowers() {
	if len(t.Towers) > 0 || len(t.TowerRefs) == 0 {
		return
	}
	g := t.GetGameObject()
	if g == nil {
		return
	}
	for _, ref := range t.TowerRefs {
		if tower := ref.Get(g.Scene); tower != nil {
			t.Towers = append(t.Towers, tower)
		}
	}
}
