package playerstate

import "laserpuzzle/internal/engine"

const MachineScript = "PlayerStateControl"

func init() {
	engine.RegisterScript(MachineScript, machineFactory, machineSerializer)
}

// machineFactory reads
//
//	{"fade": "<id>", "views": {"Moving": {"camera": "<id>", "roots": ["<id>"]}}}
func machineFactory(p engine.Props) engine.Component {
	m := NewMachine(nil)
	m.FadeRef = p.Ref("fade")
	views, _ := p["views"].(map[string]any)
	if len(views) == 0 {
		return m
	}
	m.Refs = make(map[string]ViewRefs, len(views))
	for state, raw := range views {
		view, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		vp := engine.Props(view)
		m.Refs[state] = ViewRefs{Camera: vp.Ref("camera"), Roots: vp.Refs("roots")}
	}
	return m
}

func machineSerializer(c engine.Component) map[string]any {
	m, ok := c.(*Machine)
	if !ok {
		return nil
	}
	props := map[string]any{}
	if m.FadeRef.IsValid() {
		props["fade"] = m.FadeRef.String()
	}
	if len(m.Refs) > 0 {
		views := make(map[string]any, len(m.Refs))
		for state, refs := range m.Refs {
			roots := make([]string, 0, len(refs.Roots))
			for _, r := range refs.Roots {
				roots = append(roots, r.String())
			}
			view := map[string]any{"roots": roots}
			if refs.Camera.IsValid() {
				view["camera"] = refs.Camera.String()
			}
			views[state] = view
		}
		props["views"] = views
	}
	return props
}
