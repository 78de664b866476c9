package components

import (
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var _ engine.Highlightable = (*MaterialHighlight)(nil)

// MaterialHighlight swaps the renderer tint for a highlight color while enabled and
// restores the original tint when disabled. Width has no effect.
type MaterialHighlight struct {
	engine.BaseComponent
	Color rl.Color

	enabled  bool
	original rl.Color
}

func NewMaterialHighlight(c rl.Color) *MaterialHighlight {
	return &MaterialHighlight{Color: c}
}

func (m *MaterialHighlight) SetColor(c rl.Color) {
	m.Color = c
	if m.enabled {
		if r := m.renderer(); r != nil {
			r.Color = c
		}
	}
}

func (m *MaterialHighlight) SetWidth(float32) {}

func (m *MaterialHighlight) SetEnabled(enabled bool) {
	if enabled == m.enabled {
		return
	}
	r := m.renderer()
	if r == nil {
		return
	}
	if enabled {
		m.original = r.Color
		r.Color = m.Color
	} else {
		r.Color = m.original
	}
	m.enabled = enabled
}

func (m *MaterialHighlight) Enabled() bool {
	return m.enabled
}

func (m *MaterialHighlight) renderer() *MeshRenderer {
	return engine.GetComponent[*MeshRenderer](m.GetGameObject())
}

// SavedColor returns the renderer tint the highlight replaced while enabled.
func (m *MaterialHighlight) SavedColor() (rl.Color, bool) {
	if !m.enabled {
		return rl.Color{}, false
	}
	return m.original, true
}
