package components

import "laserpuzzle/internal/engine"

var _ engine.Activatable = (*Activator)(nil)

// Activator toggles a group of objects together. Targets are resolved against the
// owning object's scene at call time, so they may be declared before they load.
type Activator struct {
	engine.BaseComponent
	Targets []engine.GameObjectRef
	active  bool
}

func NewActivator(targets ...engine.GameObjectRef) *Activator {
	return &Activator{Targets: targets}
}

func (a *Activator) SetActive(active bool) {
	a.active = active
	g := a.GetGameObject()
	if g == nil {
		return
	}
	g.SetActive(active)
	for _, ref := range a.Targets {
		if target := ref.Get(g.Scene); target != nil {
			target.SetActive(active)
		}
	}
}

func (a *Activator) IsActive() bool {
	return a.active
}
