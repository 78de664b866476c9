package termview

import (
	"path/filepath"
	"strings"
	"testing"

	"laserpuzzle/internal/control"
	"laserpuzzle/internal/playerstate"
	"laserpuzzle/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One mirror on a slider: two W presses bring it onto the beam, which it
// turns into the receiver.
const sliderScene = `{
  "name": "slider",
  "objects": [
    {"name": "Emitter", "position": [0, 0.5, 0], "rotation": [0, 90, 0],
     "components": [{"type": "Script", "name": "LaserEmitter", "props": {"continuous": true, "resolve": "on-change"}}]},
    {"id": "7c000000-0000-4000-8000-000000000001", "name": "Mirror", "position": [4, 0.5, 0], "rotation": [0, -90, 0],
     "components": [
       {"type": "BoxCollider", "size": [1, 1, 1]},
       {"type": "Outline"},
       {"type": "Script", "name": "Deflector", "props": {"deflectionAngle": 90}}]},
    {"name": "Receiver", "position": [4, 0.5, 6],
     "components": [
       {"type": "BoxCollider", "size": [1, 1, 1]},
       {"type": "Script", "name": "LaserReceiver"}]},
    {"name": "Slider",
     "components": [{"type": "Script", "name": "TowerController",
       "props": {"minZ": -2, "maxZ": 0, "moveSpeed": 10, "towers": ["7c000000-0000-4000-8000-000000000001"]}}]}
  ]
}`

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newView(t *testing.T, w *world.World) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t)
	w.Start()
	return New(screen, w, control.New(w.Puzzle)), screen
}

func loadData(t *testing.T, data string) *world.World {
	t.Helper()
	w := world.New("term")
	require.NoError(t, w.LoadSceneData([]byte(data)))
	w.Assemble()
	return w
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func press(v *View, r rune) bool {
	return v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestCellKeepsSceneOnScreen(t *testing.T) {
	v, screen := newView(t, loadData(t, sliderScene))
	w, h := screen.Size()

	for _, p := range []rl.Vector3{{X: -1, Z: -3}, {X: 5, Z: 7}} {
		x, y := v.Cell(p)
		assert.True(t, x >= 0 && x < w, "x=%d", x)
		assert.True(t, y >= 0 && y < h-statusRows, "y=%d", y)
	}

	// +X is to the right, +Z is up.
	x0, y0 := v.Cell(rl.Vector3{})
	x1, y1 := v.Cell(rl.Vector3{X: 1, Z: 1})
	assert.Greater(t, x1, x0)
	assert.Less(t, y1, y0)
	assert.InDelta(t, 2*v.sz, v.sx, 1e-6)
}

func TestDrawShowsObjectsAndBeam(t *testing.T) {
	v, screen := newView(t, loadData(t, sliderScene))
	v.Draw()

	ex, ey := v.Cell(rl.Vector3{X: 0, Z: 0})
	assert.Equal(t, 'E', runeAt(screen, ex, ey))
	assert.Equal(t, '─', runeAt(screen, ex+1, ey), "beam leaves the emitter along +X")
	rx, ry := v.Cell(rl.Vector3{X: 4, Z: 6})
	assert.Equal(t, 'R', runeAt(screen, rx, ry))
	mx, my := v.Cell(rl.Vector3{X: 4, Z: -2})
	assert.Equal(t, 'D', runeAt(screen, mx, my))

	_, h := screen.Size()
	status := row(screen, h-2)
	assert.Contains(t, status, playerstate.LaserPuzzle)
	assert.Contains(t, status, "tower 1 Mirror")
	assert.Contains(t, status, "MaxRangeExceeded 0/1")
	assert.NotContains(t, status, "SOLVED")
}

func TestKeysSolveThePuzzle(t *testing.T) {
	v, screen := newView(t, loadData(t, sliderScene))
	tower := v.World.Puzzle.Towers[0].Towers[0]

	assert.True(t, press(v, 'w'))
	assert.InDelta(t, -1, tower.Transform.Position.Z, 1e-5)
	assert.True(t, press(v, 'w'))
	assert.InDelta(t, 0, tower.Transform.Position.Z, 1e-5)
	v.World.Update(0.033)
	require.True(t, v.World.Puzzle.Solved())

	v.Draw()
	_, h := screen.Size()
	assert.Contains(t, row(screen, h-2), "SOLVED")

	assert.True(t, press(v, 'c'))
	assert.False(t, v.World.Puzzle.Emitters[0].Settings.Continuous)
	assert.True(t, press(v, 'r'))
	assert.False(t, v.World.Puzzle.Solved())
}

func TestQuitKeys(t *testing.T) {
	v, _ := newView(t, loadData(t, sliderScene))
	assert.False(t, press(v, 'q'))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, v.HandleEvent(tcell.NewEventResize(100, 40)))
}

func TestWalkingInShippedScene(t *testing.T) {
	w, err := world.Load(filepath.Join("..", "..", "assets", "scenes", "laser.json"))
	require.NoError(t, err)
	v, screen := newView(t, w)
	require.NotNil(t, v.Player)
	assert.Equal(t, playerstate.Moving, v.Controller.Mode())

	start := v.Player.Transform.Position
	assert.True(t, press(v, 'd'))
	assert.True(t, press(v, 'w'))
	assert.Equal(t, rl.Vector3{X: start.X + WalkStep, Y: start.Y, Z: start.Z + WalkStep}, v.Player.Transform.Position)
	assert.Equal(t, 0, v.Controller.Puzzle.Towers[0].Selected(), "walking keys do not reach the towers")

	v.Draw()
	px, py := v.Cell(v.Player.WorldPosition())
	assert.Equal(t, '@', runeAt(screen, px, py))
	_, h := screen.Size()
	assert.Contains(t, row(screen, h-2), playerstate.Moving)
}
