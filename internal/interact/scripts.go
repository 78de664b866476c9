package interact

import "laserpuzzle/internal/engine"

const (
	InteractableScript  = "Interactable"
	DoorScript          = "Door"
	PuzzleStarterScript = "PuzzleStarter"
)

func init() {
	engine.RegisterScript(InteractableScript, func(engine.Props) engine.Component {
		return NewInteractable()
	}, func(c engine.Component) map[string]any {
		if _, ok := c.(*Interactable); !ok {
			return nil
		}
		return map[string]any{}
	})
	engine.RegisterScript(DoorScript, doorFactory, doorSerializer)
	engine.RegisterScript(PuzzleStarterScript, puzzleStarterFactory, puzzleStarterSerializer)
}

func doorFactory(p engine.Props) engine.Component {
	d := NewDoor()
	d.PromptRef = p.Ref("prompt")
	return d
}

func doorSerializer(c engine.Component) map[string]any {
	d, ok := c.(*Door)
	if !ok {
		return nil
	}
	props := map[string]any{}
	if d.PromptRef.IsValid() {
		props["prompt"] = d.PromptRef.String()
	}
	return props
}

func puzzleStarterFactory(p engine.Props) engine.Component {
	s := NewPuzzleStarter(p.String("state", ""))
	s.PromptRef = p.Ref("prompt")
	return s
}

func puzzleStarterSerializer(c engine.Component) map[string]any {
	s, ok := c.(*PuzzleStarter)
	if !ok {
		return nil
	}
	props := map[string]any{"state": s.State}
	if s.PromptRef.IsValid() {
		props["prompt"] = s.PromptRef.String()
	}
	return props
}
