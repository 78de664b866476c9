package game

import (
	"laserpuzzle/internal/components"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/interact"
	"laserpuzzle/internal/playerstate"
)

const (
	doorOpenAngle float32 = 90  // degrees
	doorOpenSpeed float32 = 120 // degrees per second
)

// doorSwing turns a door about Y once its animator fires the open trigger.
type doorSwing struct {
	obj    *engine.GameObject
	closed float32
	angle  float32
	target float32
}

func (s *doorSwing) Update(deltaTime float32) {
	if s.angle == s.target {
		return
	}
	step := doorOpenSpeed * deltaTime
	if s.angle < s.target {
		s.angle = min(s.angle+step, s.target)
	} else {
		s.angle = max(s.angle-step, s.target)
	}
	s.obj.Transform.Rotation.Y = s.closed + s.angle
}

// fade is the full-screen black fade behind a player state switch. It darkens
// until the camera swap and clears by the time the switch commits.
type fade struct {
	t       float32
	running bool
}

func (f *fade) Start() {
	f.t = 0
	f.running = true
}

func (f *fade) Update(deltaTime float32) {
	if !f.running {
		return
	}
	f.t += deltaTime
	if f.t >= playerstate.FinishAt {
		f.running = false
	}
}

// Alpha is the overlay opacity in [0, 1].
func (f *fade) Alpha() float32 {
	if !f.running {
		return 0
	}
	if f.t < playerstate.CameraSwitchAt {
		return f.t / playerstate.CameraSwitchAt
	}
	if f.t < playerstate.RootSwitchAt {
		return 1
	}
	return max(0, 1-(f.t-playerstate.RootSwitchAt)/(playerstate.FinishAt-playerstate.RootSwitchAt))
}

// animations plays the host side of every scene animator: door swings and the
// state fade.
type animations struct {
	animators []*components.Animator
	doors     map[*components.Animator]*doorSwing
	fade      fade
}

func newAnimations(s *engine.Scene) *animations {
	a := &animations{
		animators: engine.FindComponents[*components.Animator](s),
		doors:     make(map[*components.Animator]*doorSwing),
	}
	for _, d := range engine.FindComponents[*interact.Door](s) {
		g := d.GetGameObject()
		anim := engine.GetComponent[*components.Animator](g)
		if anim == nil && g.Parent != nil {
			g = g.Parent
			anim = engine.GetComponent[*components.Animator](g)
		}
		if anim != nil {
			a.doors[anim] = &doorSwing{obj: g, closed: g.Transform.Rotation.Y}
		}
	}
	return a
}

func (a *animations) Update(deltaTime float32) {
	for _, anim := range a.animators {
		for _, trigger := range anim.ConsumeTriggers() {
			switch trigger {
			case interact.OpenDoorTrigger:
				if s, ok := a.doors[anim]; ok {
					s.target = doorOpenAngle
				}
			case playerstate.FadeTrigger:
				a.fade.Start()
			}
		}
	}
	for _, s := range a.doors {
		s.Update(deltaTime)
	}
	a.fade.Update(deltaTime)
}
