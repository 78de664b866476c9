package interact

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	"go.uber.org/zap"
)

const OpenDoorTrigger = "OpenDoor"

// Door opens through its animator when the player interacts from inside its trigger.
type Door struct {
	engine.BaseComponent
	// Prompt is the "press to open" canvas. PromptRef is resolved at Start when nil.
	Prompt    engine.Activatable
	PromptRef engine.GameObjectRef
	// Animator defaults to one on this object or its parent.
	Animator engine.Animator

	OnOpened engine.Event

	inRange bool
	open    bool
}

func NewDoor() *Door {
	return &Door{}
}

func (d *Door) Start() {
	g := d.GetGameObject()
	if d.Animator == nil && g != nil {
		d.Animator = engine.GetComponent[engine.Animator](g)
		if d.Animator == nil && g.Parent != nil {
			d.Animator = engine.GetComponent[engine.Animator](g.Parent)
		}
		if d.Animator == nil {
			logging.L().Named("interact").Warn("door has no animator", zap.String("door", g.Name))
		}
	}
	if d.Prompt == nil && g != nil {
		if prompt := d.PromptRef.Get(g.Scene); prompt != nil {
			d.Prompt = prompt
		}
	}
	d.showPrompt(false)
}

func (d *Door) OnCollisionEnter(other *engine.GameObject) {
	if !other.HasTag(PlayerTag) {
		return
	}
	d.inRange = true
	if !d.open {
		d.showPrompt(true)
	}
}

func (d *Door) OnCollisionExit(other *engine.GameObject) {
	if !other.HasTag(PlayerTag) {
		return
	}
	d.inRange = false
	d.showPrompt(false)
}

// Interact opens the door when the player is in range and it is closed.
func (d *Door) Interact() {
	if !d.inRange || d.open {
		return
	}
	if d.Animator == nil {
		logging.L().Named("interact").Warn("cannot open door without animator", zap.String("door", d.name()))
		return
	}
	d.Animator.SetTrigger(OpenDoorTrigger)
	d.open = true
	d.showPrompt(false)
	logging.L().Named("interact").Info("door opened", zap.String("door", d.name()))
	d.OnOpened.Invoke()
}

// ResetDoor closes the door, showing the prompt again if the player is still near.
func (d *Door) ResetDoor() {
	d.open = false
	if d.inRange {
		d.showPrompt(true)
	}
}

// Stop hides the prompt.
func (d *Door) Stop() {
	d.showPrompt(false)
}

func (d *Door) IsOpen() bool {
	return d.open
}

func (d *Door) InRange() bool {
	return d.inRange
}

func (d *Door) showPrompt(show bool) {
	if d.Prompt != nil {
		d.Prompt.SetActive(show)
	}
}

func (d *Door) name() string {
	if g := d.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}
