package components

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var _ engine.Highlightable = (*Outline)(nil)

// Outline draws a wire box around the object while enabled.
type Outline struct {
	engine.BaseComponent
	Color   rl.Color
	Width   float32
	Enabled bool
}

func NewOutline() *Outline {
	return &Outline{Color: rl.Yellow, Width: 5}
}

func (o *Outline) SetColor(c rl.Color)     { o.Color = c }
func (o *Outline) SetWidth(w float32)      { o.Width = w }
func (o *Outline) SetEnabled(enabled bool) { o.Enabled = enabled }

// Draw renders the outline as nested wire boxes, one per width unit, around the
// object's renderer size.
func (o *Outline) Draw() {
	g := o.GetGameObject()
	if !o.Enabled || g == nil || !g.ActiveInHierarchy() {
		return
	}
	size := rl.Vector3{X: 1, Y: 1, Z: 1}
	if mr := engine.GetComponent[*MeshRenderer](g); mr != nil {
		size = mr.Size
	}

	pushObjectMatrix(g)
	defer rl.PopMatrix()

	layers := max(1, int(o.Width/2))
	for i := 0; i < layers; i++ {
		grow := 1.02 + float32(i)*0.01
		rl.DrawCubeWires(rl.Vector3{}, size.X*grow, size.Y*grow, size.Z*grow, o.Color)
	}
}
