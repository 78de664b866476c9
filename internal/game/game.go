package game

import (
	"context"
	"time"

	"laserpuzzle/internal/camera"
	"laserpuzzle/internal/components"
	"laserpuzzle/internal/control"
	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/injector"
	"laserpuzzle/internal/interact"
	"laserpuzzle/internal/playerstate"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// beamSides is the cylinder tessellation used for laser segments.
const beamSides = 8

type Game struct {
	App        *injector.App
	Controller *control.Controller
	Player     *camera.FPSCamera
	DebugMode  bool

	anim *animations
	hud  hud
	log  *zap.Logger

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(app *injector.App) *Game {
	return &Game{
		App: app,
		log: app.Logger.Named("game"),
	}
}

func (g *Game) Run() {
	win := g.App.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(win.FPS)
	rl.SetExitKey(rl.KeyEscape)

	g.App.Start()
	g.Controller = control.New(g.App.Puzzle)
	g.anim = newAnimations(g.App.World.Scene)
	g.createPlayer()
	g.hud.init()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() {
		if err := g.App.ServeFeed(ctx); err != nil {
			g.log.Warn("status feed stopped", zap.Error(err))
		}
	}()

	g.log.Info("window opened",
		zap.Int32("width", win.Width),
		zap.Int32("height", win.Height),
		zap.String("scene", g.App.World.Scene.Name))

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// createPlayer puts the walking camera on the scene's player body, if any.
func (g *Game) createPlayer() {
	bodies := g.App.World.Scene.FindByTag(interact.PlayerTag)
	if len(bodies) == 0 {
		return
	}
	body := bodies[0]
	g.Player = camera.New(body.WorldPosition())
	g.Player.Position.Y += g.Player.EyeHeight
	// Face the body's forward (sin y, 0, cos y).
	g.Player.Yaw = 90 - body.Transform.Rotation.Y
	g.Player.Body = body
}

func (g *Game) walking() bool {
	return g.Player != nil && g.Controller.Mode() == playerstate.Moving
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if g.walking() {
		if !rl.IsCursorHidden() {
			rl.DisableCursor()
		}
		g.Player.Update(deltaTime, camera.SampleInput())
	} else if rl.IsCursorHidden() {
		rl.EnableCursor()
	}

	g.handleInput()
	g.App.World.Update(deltaTime)
	g.anim.Update(deltaTime)
	if g.App.Feed != nil {
		g.App.Feed.Publish(g.Controller.Status())
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// handleInput maps pressed keys to controller actions. WASD walk while the
// player is moving, so only the shared puzzle keys are read then.
func (g *Game) handleInput() {
	c := g.Controller
	for _, k := range pressKeys {
		if !rl.IsKeyPressed(k.key) {
			continue
		}
		if k.puzzleOnly && g.walking() {
			continue
		}
		c.Apply(k.action)
	}

	var axis float32
	if !g.walking() {
		if rl.IsKeyDown(rl.KeyW) {
			axis++
		}
		if rl.IsKeyDown(rl.KeyS) {
			axis--
		}
	}
	c.SetAxis(axis)
}

type keyAction struct {
	key        int32
	action     control.Action
	puzzleOnly bool
}

var pressKeys = []keyAction{
	{rl.KeyA, control.ActionSelectPrevious, true},
	{rl.KeyD, control.ActionSelectNext, true},
	{rl.KeyW, control.ActionUp, true},
	{rl.KeyS, control.ActionDown, true},
	{rl.KeySpace, control.ActionActivate, false},
	{rl.KeyR, control.ActionReset, false},
	{rl.KeyC, control.ActionToggleContinuous, false},
	{rl.KeyE, control.ActionInteract, false},
	{rl.KeyBackspace, control.ActionLeave, false},
}

// view picks the walking camera while moving, otherwise the scene's active camera.
func (g *Game) view() rl.Camera3D {
	if g.walking() {
		return g.Player.GetRaylibCamera()
	}
	if cam := components.ActiveCamera(g.App.World.Scene); cam != nil {
		return cam.GetRaylibCamera()
	}
	if g.Player != nil {
		return g.Player.GetRaylibCamera()
	}
	return rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 12, Z: -8},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(g.view())
	rl.DrawGrid(40, 1)
	g.drawScene()
	g.drawBeams()
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) drawScene() {
	for _, obj := range g.App.World.Scene.GameObjects {
		if !obj.ActiveInHierarchy() {
			continue
		}
		if mr := engine.GetComponent[*components.MeshRenderer](obj); mr != nil {
			mr.Draw()
		}
		if o := engine.GetComponent[*components.Outline](obj); o != nil {
			o.Draw()
		}
	}
}

func (g *Game) drawBeams() {
	for _, e := range g.App.Puzzle.Emitters {
		if !e.IsActive() {
			continue
		}
		radius := e.CurrentWidth() / 2
		if radius <= 0 {
			continue
		}
		for _, seg := range e.Segments() {
			rl.DrawCylinderEx(seg.Start, seg.End, radius, radius, beamSides, seg.Color)
		}
		if g.DebugMode {
			for _, p := range e.Points() {
				rl.DrawSphereWires(p, radius*2, 4, 4, rl.White)
			}
		}
	}
}
