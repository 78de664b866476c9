package game

import (
	"testing"

	"laserpuzzle/internal/components"
	"laserpuzzle/internal/control"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/interact"
	"laserpuzzle/internal/playerstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoorSwingsOpenOnTrigger(t *testing.T) {
	s := engine.NewScene("doors")
	door := engine.NewGameObject("Door")
	door.Transform.Rotation.Y = 30
	anim := components.NewAnimator()
	door.AddComponent(anim)
	door.AddComponent(interact.NewDoor())
	s.AddGameObject(door)

	a := newAnimations(s)
	require.Len(t, a.doors, 1)

	a.Update(0.1)
	assert.Equal(t, float32(30), door.Transform.Rotation.Y, "closed until triggered")

	anim.SetTrigger(interact.OpenDoorTrigger)
	a.Update(0.5)
	assert.InDelta(t, 90, door.Transform.Rotation.Y, 1e-4)
	a.Update(1)
	assert.InDelta(t, 120, door.Transform.Rotation.Y, 1e-4)
	assert.Empty(t, anim.ConsumeTriggers())
}

func TestFadeFollowsStateSwitchStages(t *testing.T) {
	s := engine.NewScene("fade")
	obj := engine.NewGameObject("Fade")
	anim := components.NewAnimator()
	obj.AddComponent(anim)
	s.AddGameObject(obj)

	a := newAnimations(s)
	assert.Zero(t, a.fade.Alpha())

	anim.SetTrigger(playerstate.FadeTrigger)
	a.Update(0)
	a.Update(playerstate.CameraSwitchAt / 2)
	assert.InDelta(t, 0.5, a.fade.Alpha(), 1e-4)
	a.Update(playerstate.CameraSwitchAt / 2)
	assert.InDelta(t, 1, a.fade.Alpha(), 1e-4)
	a.Update(playerstate.FinishAt)
	assert.Zero(t, a.fade.Alpha())
}

func TestStatusLines(t *testing.T) {
	lines := statusLines(control.Status{
		Mode:      playerstate.LaserPuzzle,
		Tower:     1,
		TowerName: "TowerB",
		Die:       -1,
		Firing:    true,
		Outcome:   "HitReceiver",
		Hits:      2,
		Total:     2,
		Solved:    true,
	})
	assert.Equal(t, []string{
		"State: LaserPuzzle",
		"Tower 2: TowerB",
		"Beam: HitReceiver (2/2)",
		"SOLVED",
	}, lines)

	lines = statusLines(control.Status{Mode: playerstate.Moving, Pending: playerstate.CubePuzzle, Tower: -1, Die: -1})
	assert.Equal(t, []string{"State: Moving -> CubePuzzle", "Beam: off"}, lines)
}
