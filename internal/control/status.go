package control

import (
	"laserpuzzle/internal/playerstate"
)

// Status is what the hosts show about the puzzle each frame.
type Status struct {
	Mode    string
	Pending string

	Tower     int
	TowerName string
	Die       int
	DieValue  int

	Firing     bool
	Continuous bool
	Outcome    string
	Hits       int
	Total      int
	Solved     bool
}

func (c *Controller) Status() Status {
	s := Status{
		Mode:       c.Mode(),
		Tower:      -1,
		Die:        -1,
		Continuous: c.Continuous(),
		Solved:     c.Puzzle.Solved(),
	}
	if m := c.Puzzle.Player; m != nil {
		if target, ok := m.Pending(); ok {
			s.Pending = target
		}
	}
	if tc := c.towers(); tc != nil {
		s.Tower = tc.Selected()
		if t := tc.SelectedTower(); t != nil {
			s.TowerName = t.Name
		}
	}
	if d := c.SelectedDie(); d != nil && s.Mode == playerstate.CubePuzzle {
		s.Die = c.die
		s.DieValue = d.Value()
	}
	if len(c.Puzzle.Emitters) > 0 {
		e := c.Puzzle.Emitters[0]
		s.Firing = e.IsActive()
		if s.Firing {
			r := e.Result()
			s.Outcome = r.Outcome.String()
			s.Hits = len(r.Deflectors)
		}
		s.Total = e.TotalDeflectorCount()
	}
	return s
}
