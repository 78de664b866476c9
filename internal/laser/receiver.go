package laser

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Receiver latches solved once a beam reaches it with enough deflectors behind it.
// Only Reset clears it.
type Receiver struct {
	engine.BaseComponent
	RequireAllDeflectors bool
	ActivatedColor       rl.Color

	// Feedback shows ActivatedColor while solved.
	Feedback engine.Highlightable
	// Effect is shown while solved. EffectRef is resolved at Start when Effect is nil.
	Effect    engine.Activatable
	EffectRef engine.GameObjectRef

	OnSolved  engine.EventWithArg[int]
	OnPartial engine.EventWithArg[int]
	OnReset   engine.Event

	solved bool
}

func NewReceiver() *Receiver {
	return &Receiver{
		RequireAllDeflectors: true,
		ActivatedColor:       rl.Green,
	}
}

func (r *Receiver) Start() {
	if r.Effect == nil {
		if g := r.GetGameObject(); g != nil {
			if effect := r.EffectRef.Get(g.Scene); effect != nil {
				r.Effect = effect
			}
		}
	}
	if r.Effect != nil {
		r.Effect.SetActive(false)
	}
}

// Evaluate is called by a beam that reached this receiver after passing through
// hits. It returns the solved state and does nothing once solved.
func (r *Receiver) Evaluate(hits []*Deflector, total int) bool {
	if r.solved {
		return true
	}

	log := logging.L().Named("laser")
	allHit := len(hits) == total
	if r.RequireAllDeflectors && !allHit {
		log.Info("receiver reached without all deflectors",
			zap.String("receiver", r.name()),
			zap.Int("hit", len(hits)),
			zap.Int("total", total))
		r.OnPartial.Invoke(len(hits))
		return false
	}

	r.solved = true
	if r.Feedback != nil {
		r.Feedback.SetColor(r.ActivatedColor)
		r.Feedback.SetEnabled(true)
	}
	if r.Effect != nil {
		r.Effect.SetActive(true)
	}

	if allHit {
		log.Info("puzzle solved", zap.String("receiver", r.name()), zap.Int("deflectors", total))
	} else {
		log.Info("receiver activated", zap.String("receiver", r.name()), zap.Int("hit", len(hits)))
	}
	r.OnSolved.Invoke(len(hits))
	return true
}

// Reset clears the solved state and its feedback.
func (r *Receiver) Reset() {
	r.solved = false
	if r.Feedback != nil {
		r.Feedback.SetEnabled(false)
	}
	if r.Effect != nil {
		r.Effect.SetActive(false)
	}
	logging.L().Named("laser").Debug("receiver reset", zap.String("receiver", r.name()))
	r.OnReset.Invoke()
}

func (r *Receiver) IsSolved() bool {
	return r.solved
}

func (r *Receiver) Dispose() {
	r.OnSolved.RemoveAllListeners()
	r.OnPartial.RemoveAllListeners()
	r.OnReset.RemoveAllListeners()
}

func (r *Receiver) name() string {
	if g := r.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}
