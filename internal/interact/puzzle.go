package interact

import (
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	"go.uber.org/zap"
)

// StateRequester switches the player into another state, such as a puzzle view.
type StateRequester interface {
	Request(state string) error
}

// PuzzleStarter shows a prompt near a puzzle and switches the player into it.
type PuzzleStarter struct {
	engine.BaseComponent
	// State is the player state requested by StartPuzzle.
	State     string
	Prompt    engine.Activatable
	PromptRef engine.GameObjectRef
	Player    StateRequester

	inRange bool
}

func NewPuzzleStarter(state string) *PuzzleStarter {
	return &PuzzleStarter{State: state}
}

func (p *PuzzleStarter) Start() {
	if p.Prompt == nil {
		if g := p.GetGameObject(); g != nil {
			if prompt := p.PromptRef.Get(g.Scene); prompt != nil {
				p.Prompt = prompt
			}
		}
	}
	p.HideUI()
}

func (p *PuzzleStarter) DisplayUI() {
	if p.Prompt != nil {
		p.Prompt.SetActive(true)
	}
}

func (p *PuzzleStarter) HideUI() {
	if p.Prompt != nil {
		p.Prompt.SetActive(false)
	}
}

func (p *PuzzleStarter) OnCollisionEnter(other *engine.GameObject) {
	if other.HasTag(PlayerTag) {
		p.inRange = true
		p.DisplayUI()
	}
}

func (p *PuzzleStarter) OnCollisionExit(other *engine.GameObject) {
	if other.HasTag(PlayerTag) {
		p.inRange = false
		p.HideUI()
	}
}

func (p *PuzzleStarter) InRange() bool {
	return p.inRange
}

// StartPuzzle requests the configured state and hides the prompt.
func (p *PuzzleStarter) StartPuzzle() error {
	if p.Player == nil {
		logging.L().Named("interact").Warn("puzzle starter has no player state machine", zap.String("state", p.State))
		return nil
	}
	if err := p.Player.Request(p.State); err != nil {
		return err
	}
	p.HideUI()
	return nil
}
