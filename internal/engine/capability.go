package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Highlightable is a visual highlight (outline, material swap) bound to an object
// when the scene is composed.
type Highlightable interface {
	SetColor(c rl.Color)
	SetWidth(w float32)
	SetEnabled(enabled bool)
}

// Activatable is anything that can be shown or hidden: cameras, prompt canvases,
// puzzle roots, activation effects. *GameObject implements it.
type Activatable interface {
	SetActive(active bool)
}

// Animator is the host animation system as seen by scripts.
type Animator interface {
	SetTrigger(name string)
	SetBool(name string, value bool)
}
