package playerstate

import (
	"testing"

	"laserpuzzle/internal/components"
	"laserpuzzle/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toggle struct {
	active bool
	calls  int
}

func (t *toggle) SetActive(active bool) {
	t.active = active
	t.calls++
}

type rig struct {
	m          *Machine
	fade       *components.Animator
	playerCam  *toggle
	player     *toggle
	puzzleCam  *toggle
	puzzleRoot *toggle
}

func newRig() *rig {
	r := &rig{
		fade:       components.NewAnimator(),
		playerCam:  &toggle{},
		player:     &toggle{},
		puzzleCam:  &toggle{active: true},
		puzzleRoot: &toggle{active: true},
	}
	r.m = NewMachine(r.fade)
	r.m.Register(Moving, View{Camera: r.playerCam, Roots: []engine.Activatable{r.player}})
	r.m.Register(LaserPuzzle, View{Camera: r.puzzleCam, Roots: []engine.Activatable{r.puzzleRoot}})
	r.m.Register(CubePuzzle, View{})
	r.m.Start()
	return r
}

func TestStartShowsMovingView(t *testing.T) {
	r := newRig()
	assert.Equal(t, Moving, r.m.Current())
	assert.True(t, r.playerCam.active)
	assert.True(t, r.player.active)
	assert.False(t, r.puzzleCam.active)
	assert.False(t, r.puzzleRoot.active)
	assert.Equal(t, []string{CubePuzzle, LaserPuzzle, Moving}, r.m.States())
}

func TestRequestRunsStagedFade(t *testing.T) {
	r := newRig()
	var changed []string
	r.m.OnStateChanged.AddListener(func(s string) { changed = append(changed, s) })

	require.NoError(t, r.m.Request(LaserPuzzle))
	assert.Equal(t, 1, r.fade.TriggerCount(FadeTrigger), "fade starts immediately")
	assert.False(t, r.fade.GetBool(FinishedBool))
	pending, ok := r.m.Pending()
	assert.True(t, ok)
	assert.Equal(t, LaserPuzzle, pending)

	r.m.Tick(0.75)
	assert.True(t, r.playerCam.active, "cameras switch at 1s")

	r.m.Tick(0.25)
	assert.False(t, r.playerCam.active)
	assert.True(t, r.puzzleCam.active)
	assert.True(t, r.player.active, "roots switch at 1.5s")

	r.m.Tick(0.5)
	assert.False(t, r.player.active)
	assert.True(t, r.puzzleRoot.active)
	assert.Equal(t, Moving, r.m.Current(), "not committed before 2s")

	r.m.Tick(0.5)
	assert.Equal(t, LaserPuzzle, r.m.Current())
	assert.True(t, r.fade.GetBool(FinishedBool))
	assert.Equal(t, []string{LaserPuzzle}, changed)
	_, ok = r.m.Pending()
	assert.False(t, ok)
}

func TestSingleLargeTickRunsAllStages(t *testing.T) {
	r := newRig()
	require.NoError(t, r.m.Request(LaserPuzzle))
	r.m.Tick(5)
	assert.Equal(t, LaserPuzzle, r.m.Current())
	assert.True(t, r.puzzleRoot.active)
}

func TestNewRequestCancelsPending(t *testing.T) {
	r := newRig()
	require.NoError(t, r.m.Request(LaserPuzzle))
	r.m.Tick(1.2)
	require.True(t, r.puzzleCam.active)

	require.NoError(t, r.m.Request(Moving))
	assert.Equal(t, 2, r.fade.TriggerCount(FadeTrigger))

	r.m.Tick(2)
	assert.Equal(t, Moving, r.m.Current())
	assert.True(t, r.playerCam.active)
	assert.False(t, r.puzzleCam.active)
	assert.False(t, r.puzzleRoot.active, "cancelled sequence never showed the puzzle root")
}

func TestCancelStopsStages(t *testing.T) {
	r := newRig()
	require.NoError(t, r.m.Request(LaserPuzzle))
	r.m.Cancel()
	r.m.Tick(3)

	assert.Equal(t, Moving, r.m.Current())
	assert.False(t, r.puzzleCam.active)
	assert.False(t, r.fade.GetBool(FinishedBool))
}

func TestRequestCurrentStateIsNoop(t *testing.T) {
	r := newRig()
	require.NoError(t, r.m.Request(Moving))
	assert.Zero(t, r.fade.TriggerCount(FadeTrigger))
	_, ok := r.m.Pending()
	assert.False(t, ok)
}

func TestRequestUnknownState(t *testing.T) {
	r := newRig()
	err := r.m.Request("Flying")
	assert.ErrorIs(t, err, ErrUnknownState)
	_, ok := r.m.Pending()
	assert.False(t, ok)
}

func TestViewsFromRefs(t *testing.T) {
	scene := engine.NewScene("test")
	fadeObj := engine.NewGameObject("fade")
	fade := components.NewAnimator()
	fadeObj.AddComponent(fade)
	playerCam := engine.NewGameObject("player camera")
	puzzleCam := engine.NewGameObject("puzzle camera")
	puzzle := engine.NewGameObject("puzzle")
	owner := engine.NewGameObject("state control")
	for _, g := range []*engine.GameObject{fadeObj, playerCam, puzzleCam, puzzle, owner} {
		scene.AddGameObject(g)
	}

	m := NewMachine(nil)
	m.FadeRef = engine.RefTo(fadeObj)
	m.Refs = map[string]ViewRefs{
		Moving:      {Camera: engine.RefTo(playerCam)},
		LaserPuzzle: {Camera: engine.RefTo(puzzleCam), Roots: []engine.GameObjectRef{engine.RefTo(puzzle)}},
	}
	owner.AddComponent(m)
	scene.Start()

	assert.True(t, playerCam.Active)
	assert.False(t, puzzleCam.Active)
	assert.False(t, puzzle.Active)

	require.NoError(t, m.Request(LaserPuzzle))
	scene.Update(2)
	assert.Equal(t, LaserPuzzle, m.Current())
	assert.True(t, puzzle.Active)
	assert.Equal(t, 1, fade.TriggerCount(FadeTrigger))
}

func TestDispose(t *testing.T) {
	r := newRig()
	r.m.OnStateChanged.AddListener(func(string) {})
	require.NoError(t, r.m.Request(LaserPuzzle))
	r.m.Dispose()
	assert.Equal(t, 0, r.m.OnStateChanged.GetListenerCount())
	_, ok := r.m.Pending()
	assert.False(t, ok)
}
