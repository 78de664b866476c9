package interact

import "laserpuzzle/internal/engine"

// PlayerTag marks the object whose trigger overlaps drive interactions.
const PlayerTag = "Player"

// Interactable turns player proximity into enter/exit events and exposes an
// interact action.
type Interactable struct {
	engine.BaseComponent
	OnInteract engine.Event
	OnEnter    engine.Event
	OnExit     engine.Event

	touching bool
}

func NewInteractable() *Interactable {
	return &Interactable{}
}

// PlayerTouch fires OnEnter once until InteractExit is called.
func (i *Interactable) PlayerTouch() {
	if i.touching {
		return
	}
	i.touching = true
	i.OnEnter.Invoke()
}

func (i *Interactable) InteractExit() {
	i.touching = false
	i.OnExit.Invoke()
}

func (i *Interactable) Interact() {
	i.OnInteract.Invoke()
}

func (i *Interactable) IsPlayerTouching() bool {
	return i.touching
}

func (i *Interactable) OnCollisionEnter(other *engine.GameObject) {
	if other.HasTag(PlayerTag) {
		i.PlayerTouch()
	}
}

func (i *Interactable) OnCollisionExit(other *engine.GameObject) {
	if other.HasTag(PlayerTag) {
		i.InteractExit()
	}
}
