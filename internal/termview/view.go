// Package termview draws a puzzle scene top-down in a terminal and plays it
// with the same keys as the window host.
package termview

import (
	"context"
	"fmt"
	"math"
	"time"

	"laserpuzzle/internal/components"
	"laserpuzzle/internal/control"
	"laserpuzzle/internal/dice"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/feed"
	"laserpuzzle/internal/interact"
	"laserpuzzle/internal/laser"
	"laserpuzzle/internal/playerstate"
	"laserpuzzle/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"
)

const (
	// TowerNudge is how long one W/S press holds the move input, in seconds.
	TowerNudge float32 = 0.1
	// WalkStep is how far one walking key press moves the player.
	WalkStep float32 = 0.5

	frameTime = 33 * time.Millisecond
	margin    = 1
	// statusRows are kept free at the bottom for the status line.
	statusRows = 2
)

// View renders the XZ plane: X grows to the right, Z grows upwards.
type View struct {
	Screen     tcell.Screen
	World      *world.World
	Controller *control.Controller
	Player     *engine.GameObject

	// Feed, when set, gets the status after every tick.
	Feed *feed.Hub

	min, max rl.Vector3
	sx, sz   float32
}

// New sizes the view to the scene's bounds. The world must be started.
func New(screen tcell.Screen, w *world.World, c *control.Controller) *View {
	c.Nudge = TowerNudge
	v := &View{Screen: screen, World: w, Controller: c}
	if bodies := w.Scene.FindByTag(interact.PlayerTag); len(bodies) > 0 {
		v.Player = bodies[0]
	}
	v.fitBounds()
	v.Resize()
	return v
}

// fitBounds takes the extent of every object that shows up on the map.
func (v *View) fitBounds() {
	v.min = rl.Vector3{X: math.MaxFloat32, Z: math.MaxFloat32}
	v.max = rl.Vector3{X: -math.MaxFloat32, Z: -math.MaxFloat32}
	n := 0
	for _, g := range v.World.Scene.GameObjects {
		if _, ok := glyphOf(g); !ok {
			continue
		}
		p := g.WorldPosition()
		v.min.X = min(v.min.X, p.X)
		v.min.Z = min(v.min.Z, p.Z)
		v.max.X = max(v.max.X, p.X)
		v.max.Z = max(v.max.Z, p.Z)
		n++
	}
	if n == 0 {
		v.min, v.max = rl.Vector3{X: -1, Z: -1}, rl.Vector3{X: 1, Z: 1}
	}
	// Leave room for towers sliding past the outermost objects.
	v.min = rl.Vector3Subtract(v.min, rl.Vector3{X: 1, Z: 1})
	v.max = rl.Vector3Add(v.max, rl.Vector3{X: 1, Z: 1})
}

// Resize recomputes the scale for the current screen size. Terminal cells are
// about twice as tall as wide, so X gets twice the columns per unit.
func (v *View) Resize() {
	w, h := v.Screen.Size()
	cols := float32(max(w-2*margin, 1))
	rows := float32(max(h-2*margin-statusRows, 1))
	spanX := max(v.max.X-v.min.X, 1)
	spanZ := max(v.max.Z-v.min.Z, 1)
	v.sz = min(cols/(2*spanX), rows/spanZ)
	v.sx = 2 * v.sz
}

// Cell maps a world point to a screen cell.
func (v *View) Cell(p rl.Vector3) (x, y int) {
	x = margin + int(math.Round(float64((p.X-v.min.X)*v.sx)))
	y = margin + int(math.Round(float64((v.max.Z-p.Z)*v.sz)))
	return x, y
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			v.Controller.Apply(control.ActionLeave)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			v.key(ev.Rune())
		}
	case *tcell.EventResize:
		v.Resize()
		v.Screen.Sync()
	}
	return true
}

func (v *View) key(r rune) {
	a := control.KeyAction(r)
	if v.walking() {
		if v.walk(a) {
			return
		}
	}
	v.Controller.Apply(a)
}

func (v *View) walking() bool {
	return v.Player != nil && v.Controller.Mode() == playerstate.Moving
}

// walk moves the player body a step on the map; up is +Z.
func (v *View) walk(a control.Action) bool {
	var d rl.Vector3
	switch a {
	case control.ActionSelectPrevious:
		d.X = -WalkStep
	case control.ActionSelectNext:
		d.X = WalkStep
	case control.ActionUp:
		d.Z = WalkStep
	case control.ActionDown:
		d.Z = -WalkStep
	default:
		return false
	}
	v.Player.Transform.Position = rl.Vector3Add(v.Player.Transform.Position, d)
	return true
}

// Run polls the screen and ticks the world until ctx ends or the user quits.
func (v *View) Run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.Screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			v.World.Update(float32(now.Sub(last).Seconds()))
			last = now
			v.Draw()
			v.Screen.Show()
			if v.Feed != nil {
				v.Feed.Publish(v.Controller.Status())
			}
		}
	}
}

// Draw paints the map, the beams and the status line into the back buffer.
func (v *View) Draw() {
	v.Screen.Clear()
	for _, e := range v.World.Puzzle.Emitters {
		if e.IsActive() {
			v.drawBeam(e)
		}
	}
	for _, g := range v.World.Scene.GameObjects {
		if !g.ActiveInHierarchy() {
			continue
		}
		gl, ok := glyphOf(g)
		if !ok {
			continue
		}
		if d := engine.GetComponent[*dice.Die](g); d != nil {
			gl.r = rune('0' + d.Value())
		}
		x, y := v.Cell(g.WorldPosition())
		v.Screen.SetContent(x, y, gl.r, nil, v.styleOf(g, gl))
	}
	v.drawStatus()
}

func (v *View) drawBeam(e *laser.Emitter) {
	for _, seg := range e.Segments() {
		x0, y0 := v.Cell(seg.Start)
		x1, y1 := v.Cell(seg.End)
		st := tcell.StyleDefault.Foreground(tcellColor(seg.Color))
		r := beamRune(x1-x0, y1-y0)
		steps := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= steps; i++ {
			t := 0.0
			if steps > 0 {
				t = float64(i) / float64(steps)
			}
			x := x0 + int(math.Round(t*float64(x1-x0)))
			y := y0 + int(math.Round(t*float64(y1-y0)))
			v.Screen.SetContent(x, y, r, nil, st)
		}
	}
}

func (v *View) drawStatus() {
	_, h := v.Screen.Size()
	s := v.Controller.Status()
	line := fmt.Sprintf(" %s", s.Mode)
	if s.Pending != "" {
		line += " -> " + s.Pending
	}
	switch {
	case s.Die >= 0:
		line += fmt.Sprintf(" | die %d: %d", s.Die+1, s.DieValue)
	case s.Tower >= 0:
		line += fmt.Sprintf(" | tower %d %s", s.Tower+1, s.TowerName)
	}
	if s.Firing {
		line += fmt.Sprintf(" | %s %d/%d", s.Outcome, s.Hits, s.Total)
	} else {
		line += " | beam off"
	}
	if s.Continuous {
		line += " | continuous"
	}
	st := tcell.StyleDefault
	if s.Solved {
		line += " | SOLVED"
		st = st.Foreground(tcell.ColorGreen).Bold(true)
	}
	v.text(0, h-2, line, st)
	v.text(0, h-1, " a/d select  w/s move  space fire  r reset  c continuous  e interact  bksp leave  q quit", tcell.StyleDefault.Dim(true))
}

func (v *View) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		v.Screen.SetContent(x, y, r, nil, st)
		x++
	}
}

type glyph struct {
	r     rune
	color rl.Color
}

// glyphOf picks the map symbol for an object, or false when it is not drawn.
func glyphOf(g *engine.GameObject) (glyph, bool) {
	switch {
	case g.HasTag(interact.PlayerTag):
		return glyph{'@', rl.White}, true
	case engine.GetComponent[*laser.Emitter](g) != nil:
		return glyph{'E', rl.Red}, true
	case engine.GetComponent[*laser.Receiver](g) != nil:
		return glyph{'R', rl.Gray}, true
	case engine.GetComponent[*laser.Deflector](g) != nil:
		return glyph{'D', rl.LightGray}, true
	case engine.GetComponent[*dice.Die](g) != nil:
		return glyph{'0', rl.White}, true
	case engine.GetComponent[*interact.Door](g) != nil:
		return glyph{'#', rl.Brown}, true
	case engine.GetComponent[*interact.PuzzleStarter](g) != nil:
		return glyph{'?', rl.Yellow}, true
	}
	return glyph{}, false
}

func (v *View) styleOf(g *engine.GameObject, gl glyph) tcell.Style {
	st := tcell.StyleDefault.Foreground(tcellColor(gl.color))
	if r := engine.GetComponent[*laser.Receiver](g); r != nil && r.IsSolved() {
		return st.Foreground(tcellColor(r.ActivatedColor)).Bold(true)
	}
	if d := engine.GetComponent[*dice.Die](g); d != nil {
		if d == v.Controller.SelectedDie() && v.Controller.Mode() == playerstate.CubePuzzle {
			st = st.Reverse(true)
		}
		return st
	}
	if o := engine.GetComponent[*components.Outline](g); o != nil && o.Enabled {
		st = st.Reverse(true)
	}
	if mh := engine.GetComponent[*components.MaterialHighlight](g); mh != nil && mh.Enabled() {
		st = st.Reverse(true)
	}
	return st
}

func tcellColor(c rl.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func beamRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	}
	return '·'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
