package control

import (
	"laserpuzzle/internal/dice"
	"laserpuzzle/internal/laser"
	"laserpuzzle/internal/logging"
	"laserpuzzle/internal/playerstate"
	"laserpuzzle/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	DefaultDieHighlightWidth float32 = 4
)

var DefaultDieHighlightColor = rl.SkyBlue

// Controller applies player commands to an assembled puzzle. What a command
// does depends on the player state: walking only interacts, the laser view
// drives the first tower controller and the cube view turns dice.
type Controller struct {
	Puzzle *world.Puzzle
	// Nudge is the time step a discrete up/down press moves a tower by.
	// Zero leaves tower movement to SetAxis.
	Nudge float32

	DieHighlightColor rl.Color
	DieHighlightWidth float32

	die  int
	mode string
	log  *zap.Logger
}

func New(p *world.Puzzle) *Controller {
	c := &Controller{
		Puzzle:            p,
		DieHighlightColor: DefaultDieHighlightColor,
		DieHighlightWidth: DefaultDieHighlightWidth,
		log:               logging.L().Named("control"),
	}
	c.mode = c.Mode()
	if p.Player != nil {
		p.Player.OnStateChanged.AddListener(c.enter)
	}
	c.enter(c.mode)
	return c
}

// Mode is the player state commands are interpreted in. Without a state
// machine the puzzle is always in view: towers first, dice otherwise.
func (c *Controller) Mode() string {
	if c.Puzzle.Player != nil {
		return c.Puzzle.Player.Current()
	}
	if len(c.Puzzle.Towers) == 0 && len(c.Puzzle.Dice) > 0 {
		return playerstate.CubePuzzle
	}
	return playerstate.LaserPuzzle
}

// Apply runs one command and reports whether it changed anything.
func (c *Controller) Apply(a Action) bool {
	switch a {
	case ActionActivate:
		return c.activate()
	case ActionReset:
		c.Puzzle.Reset()
		c.log.Info("puzzle reset")
		return true
	case ActionToggleContinuous:
		return c.toggleContinuous()
	case ActionInteract:
		return c.interact()
	case ActionLeave:
		return c.leave()
	}

	switch c.Mode() {
	case playerstate.LaserPuzzle:
		return c.applyLaser(a)
	case playerstate.CubePuzzle:
		return c.applyCube(a)
	}
	return false
}

// SetAxis forwards held move input to the towers while the laser view is up.
func (c *Controller) SetAxis(v float32) {
	if c.Mode() != playerstate.LaserPuzzle {
		v = 0
	}
	if tc := c.towers(); tc != nil {
		tc.SetAxis(v)
	}
}

func (c *Controller) applyLaser(a Action) bool {
	tc := c.towers()
	if tc == nil {
		return false
	}
	before := tc.Selected()
	switch a {
	case ActionSelectPrevious:
		tc.SelectPrevious()
	case ActionSelectNext:
		tc.SelectNext()
	case ActionUp, ActionDown:
		if c.Nudge <= 0 || tc.SelectedTower() == nil {
			return false
		}
		z := tc.SelectedTower().Transform.Position.Z
		axis := float32(1)
		if a == ActionDown {
			axis = -1
		}
		tc.AdjustPosition(axis, c.Nudge)
		return tc.SelectedTower().Transform.Position.Z != z
	default:
		return false
	}
	return tc.Selected() != before
}

func (c *Controller) applyCube(a Action) bool {
	d := c.SelectedDie()
	if d == nil {
		return false
	}
	switch a {
	case ActionSelectPrevious:
		return c.selectDie(c.die - 1)
	case ActionSelectNext:
		return c.selectDie(c.die + 1)
	case ActionUp:
		d.Increment()
	case ActionDown:
		d.Decrement()
	default:
		return false
	}
	return true
}

func (c *Controller) activate() bool {
	fired := false
	for _, e := range c.Puzzle.Emitters {
		if !e.Settings.Enabled {
			continue
		}
		e.Activate()
		fired = true
	}
	return fired
}

// Continuous reports whether the first emitter fires without pausing.
func (c *Controller) Continuous() bool {
	if len(c.Puzzle.Emitters) == 0 {
		return false
	}
	return c.Puzzle.Emitters[0].Settings.Continuous
}

// SetContinuous switches every emitter between continuous and pulsed firing.
func (c *Controller) SetContinuous(on bool) bool {
	if len(c.Puzzle.Emitters) == 0 || on == c.Continuous() {
		return false
	}
	for _, e := range c.Puzzle.Emitters {
		e.SetContinuous(on)
	}
	c.log.Info("emitter mode changed", zap.Bool("continuous", on))
	return true
}

func (c *Controller) toggleContinuous() bool {
	return c.SetContinuous(!c.Continuous())
}

// interact opens doors, starts puzzles and pokes interactables the player stands at.
func (c *Controller) interact() bool {
	if c.Mode() != playerstate.Moving {
		return false
	}
	acted := false
	for _, d := range c.Puzzle.Doors {
		if d.InRange() && !d.IsOpen() {
			d.Interact()
			acted = true
		}
	}
	for _, s := range c.Puzzle.Starters {
		if !s.InRange() {
			continue
		}
		if err := s.StartPuzzle(); err != nil {
			c.log.Warn("cannot start puzzle", zap.String("state", s.State), zap.Error(err))
			continue
		}
		acted = true
	}
	for _, i := range c.Puzzle.Interactables {
		if i.IsPlayerTouching() {
			i.Interact()
			acted = true
		}
	}
	return acted
}

func (c *Controller) leave() bool {
	m := c.Puzzle.Player
	if m == nil || m.Current() == playerstate.Moving {
		return false
	}
	if err := m.Request(playerstate.Moving); err != nil {
		c.log.Warn("cannot leave puzzle", zap.Error(err))
		return false
	}
	return true
}

// enter runs when the player state changes.
func (c *Controller) enter(state string) {
	previous := c.mode
	c.mode = state
	if previous == playerstate.LaserPuzzle && state != previous {
		if tc := c.towers(); tc != nil {
			tc.SetAxis(0)
		}
	}
	if d := c.SelectedDie(); d != nil {
		d.SetSelected(state == playerstate.CubePuzzle, c.DieHighlightColor, c.DieHighlightWidth)
	}
}

func (c *Controller) towers() *laser.TowerController {
	if len(c.Puzzle.Towers) == 0 {
		return nil
	}
	return c.Puzzle.Towers[0]
}

// SelectedDie returns the die turned by up/down in the cube view, or nil.
func (c *Controller) SelectedDie() *dice.Die {
	if c.die < 0 || c.die >= len(c.Puzzle.Dice) {
		return nil
	}
	return c.Puzzle.Dice[c.die]
}

func (c *Controller) selectDie(i int) bool {
	i = min(max(i, 0), len(c.Puzzle.Dice)-1)
	if i == c.die {
		return false
	}
	if d := c.SelectedDie(); d != nil {
		d.SetSelected(false, c.DieHighlightColor, c.DieHighlightWidth)
	}
	c.die = i
	c.SelectedDie().SetSelected(true, c.DieHighlightColor, c.DieHighlightWidth)
	return true
}
