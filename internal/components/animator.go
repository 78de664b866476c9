package components

import (
	"laserpuzzle/internal/engine"
)

var _ engine.Animator = (*Animator)(nil)

// Animator records parameter changes for the host animation system. Each trigger
// is queued until the host consumes it.
type Animator struct {
	engine.BaseComponent
	OnTrigger engine.EventWithArg[string]

	pending []string
	bools   map[string]bool
	fired   map[string]int
}

func NewAnimator() *Animator {
	return &Animator{
		bools: make(map[string]bool),
		fired: make(map[string]int),
	}
}

func (a *Animator) SetTrigger(name string) {
	if a.fired == nil {
		a.fired = make(map[string]int)
	}
	a.pending = append(a.pending, name)
	a.fired[name]++
	a.OnTrigger.Invoke(name)
}

func (a *Animator) SetBool(name string, value bool) {
	if a.bools == nil {
		a.bools = make(map[string]bool)
	}
	a.bools[name] = value
}

func (a *Animator) GetBool(name string) bool {
	return a.bools[name]
}

// TriggerCount returns how many times name has been set since creation.
func (a *Animator) TriggerCount(name string) int {
	return a.fired[name]
}

// ConsumeTriggers returns the queued triggers in order and clears the queue.
func (a *Animator) ConsumeTriggers() []string {
	out := a.pending
	a.pending = nil
	return out
}
