package game

import (
	"fmt"

	"laserpuzzle/internal/control"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark    = rl.NewColor(24, 24, 32, 230)
	colorBgElement = rl.NewColor(40, 40, 55, 255)
	colorAccent    = rl.NewColor(90, 140, 230, 255)
	colorText      = rl.NewColor(220, 220, 230, 255)
	colorSolved    = rl.NewColor(90, 200, 120, 255)
)

const (
	panelX     float32 = 10
	panelY     float32 = 10
	panelW     float32 = 280
	rowH       float32 = 22
	panelTitle         = "Laser Puzzle"
)

type hud struct{}

func (hud) init() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// statusLines is the text shown in the status panel.
func statusLines(s control.Status) []string {
	mode := s.Mode
	if s.Pending != "" {
		mode = fmt.Sprintf("%s -> %s", s.Mode, s.Pending)
	}
	lines := []string{"State: " + mode}
	switch {
	case s.Die >= 0:
		lines = append(lines, fmt.Sprintf("Die %d shows %d", s.Die+1, s.DieValue))
	case s.Tower >= 0:
		lines = append(lines, fmt.Sprintf("Tower %d: %s", s.Tower+1, s.TowerName))
	}
	if s.Firing {
		lines = append(lines, fmt.Sprintf("Beam: %s (%d/%d)", s.Outcome, s.Hits, s.Total))
	} else {
		lines = append(lines, "Beam: off")
	}
	if s.Solved {
		lines = append(lines, "SOLVED")
	}
	return lines
}

func (g *Game) DrawUI() {
	s := g.Controller.Status()
	lines := statusLines(s)

	height := rowH*float32(len(lines)+3) + 16
	gui.Panel(rl.Rectangle{X: panelX, Y: panelY, Width: panelW, Height: height}, panelTitle)

	y := panelY + 30
	for _, line := range lines {
		gui.Label(rl.Rectangle{X: panelX + 10, Y: y, Width: panelW - 20, Height: rowH}, line)
		y += rowH
	}
	if s.Solved {
		rl.DrawRectangle(int32(panelX), int32(y), int32(panelW), 2, colorSolved)
	}

	y += 6
	if gui.Button(rl.Rectangle{X: panelX + 10, Y: y, Width: 100, Height: rowH}, "Reset") {
		g.Controller.Apply(control.ActionReset)
	}
	continuous := gui.CheckBox(rl.Rectangle{X: panelX + 130, Y: y + 3, Width: 16, Height: 16}, "Continuous", s.Continuous)
	if continuous != s.Continuous {
		g.Controller.SetContinuous(continuous)
	}

	help := "A/D select  W/S move  Space fire  R reset  C continuous  E interact  Backspace leave"
	screenH := int32(rl.GetScreenHeight())
	gui.StatusBar(rl.Rectangle{X: 0, Y: float32(screenH - 24), Width: float32(rl.GetScreenWidth()), Height: 24}, help)

	if a := g.anim.fade.Alpha(); a > 0 {
		rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), screenH, rl.Fade(rl.Black, a))
	}

	if g.DebugMode {
		rl.DrawFPS(int32(rl.GetScreenWidth())-100, 10)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), int32(rl.GetScreenWidth())-180, 35, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), int32(rl.GetScreenWidth())-180, 55, 16, rl.Green)
	}
}
