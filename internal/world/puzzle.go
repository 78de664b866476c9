package world

import (
	"laserpuzzle/internal/dice"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/interact"
	"laserpuzzle/internal/laser"
	"laserpuzzle/internal/playerstate"

	"go.uber.org/zap"
)

// Puzzle is the set of puzzle controllers found in a scene, wired together.
type Puzzle struct {
	Emitters      []*laser.Emitter
	Receivers     []*laser.Receiver
	Towers        []*laser.TowerController
	Dice          []*dice.Die
	Doors         []*interact.Door
	Starters      []*interact.PuzzleStarter
	Interactables []*interact.Interactable
	Player        *playerstate.Machine

	// OnSolved fires once when every receiver has been solved.
	OnSolved engine.Event

	solved bool
}

// Assemble finds the puzzle controllers in the scene and binds their collaborators:
// highlights on towers, dice and receivers, tower moves to emitter re-resolution,
// and puzzle starters to the player state machine. Call it before Start.
func (w *World) Assemble() *Puzzle {
	s := w.Scene
	p := &Puzzle{
		Emitters:      engine.FindComponents[*laser.Emitter](s),
		Receivers:     engine.FindComponents[*laser.Receiver](s),
		Towers:        engine.FindComponents[*laser.TowerController](s),
		Dice:          engine.FindComponents[*dice.Die](s),
		Doors:         engine.FindComponents[*interact.Door](s),
		Starters:      engine.FindComponents[*interact.PuzzleStarter](s),
		Interactables: engine.FindComponents[*interact.Interactable](s),
	}
	if machines := engine.FindComponents[*playerstate.Machine](s); len(machines) > 0 {
		p.Player = machines[0]
	}

	for _, tc := range p.Towers {
		if len(tc.Towers) == 0 {
			for _, ref := range tc.TowerRefs {
				if tower := ref.Get(s); tower != nil {
					tc.Towers = append(tc.Towers, tower)
				}
			}
		}
		if len(tc.Highlights) == 0 {
			tc.Highlights = make([]engine.Highlightable, len(tc.Towers))
			for i, tower := range tc.Towers {
				tc.Highlights[i] = highlightOf(tower)
			}
		}
		tc.OnMoved.AddListener(func(int) { p.markDirty() })
	}

	for _, d := range p.Dice {
		if d.Highlight == nil {
			d.Highlight = highlightOf(d.GetGameObject())
		}
	}

	for _, r := range p.Receivers {
		if r.Feedback == nil {
			r.Feedback = highlightOf(r.GetGameObject())
		}
		r.OnSolved.AddListener(func(int) { p.checkSolved() })
		r.OnReset.AddListener(func() { p.solved = false })
	}

	if p.Player != nil {
		for _, starter := range p.Starters {
			if starter.Player == nil {
				starter.Player = p.Player
			}
		}
	}

	w.Puzzle = p
	w.log.Info("puzzle assembled",
		zap.Int("emitters", len(p.Emitters)),
		zap.Int("receivers", len(p.Receivers)),
		zap.Int("towerControllers", len(p.Towers)),
		zap.Int("dice", len(p.Dice)),
		zap.Int("doors", len(p.Doors)))
	return p
}

// Solved reports whether there is at least one receiver and all are solved.
func (p *Puzzle) Solved() bool {
	if len(p.Receivers) == 0 {
		return false
	}
	for _, r := range p.Receivers {
		if !r.IsSolved() {
			return false
		}
	}
	return true
}

// Reset clears every receiver and asks the emitters to trace again.
func (p *Puzzle) Reset() {
	for _, r := range p.Receivers {
		r.Reset()
	}
	p.solved = false
	p.markDirty()
}

// Resolve traces every emitter that is currently firing, ignoring the resolve policy.
func (p *Puzzle) Resolve() {
	p.markDirty()
	for _, e := range p.Emitters {
		if e.IsActive() {
			e.Tick(0)
		}
	}
}

// Dispose stops and releases every host-driven controller.
func (p *Puzzle) Dispose() {
	for _, e := range p.Emitters {
		e.Dispose()
	}
	for _, tc := range p.Towers {
		tc.Dispose()
	}
	for _, r := range p.Receivers {
		r.Dispose()
	}
	for _, d := range p.Doors {
		d.Stop()
	}
	if p.Player != nil {
		p.Player.Dispose()
	}
	p.OnSolved.RemoveAllListeners()
}

func (p *Puzzle) markDirty() {
	for _, e := range p.Emitters {
		e.MarkDirty()
	}
}

func (p *Puzzle) checkSolved() {
	if p.solved || !p.Solved() {
		return
	}
	p.solved = true
	p.OnSolved.Invoke()
}

// highlightOf returns the first highlight component on g, or nil.
func highlightOf(g *engine.GameObject) engine.Highlightable {
	return engine.GetComponent[engine.Highlightable](g)
}
