package laser

import (
	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Script names used in scene files.
const (
	DeflectorScript       = "Deflector"
	ReceiverScript        = "LaserReceiver"
	EmitterScript         = "LaserEmitter"
	TowerControllerScript = "TowerController"
)

func init() {
	engine.RegisterScriptWithApplier(DeflectorScript, deflectorFactory, deflectorSerializer, deflectorApplier)
	engine.RegisterScript(ReceiverScript, receiverFactory, receiverSerializer)
	engine.RegisterScriptWithApplier(EmitterScript, emitterFactory, emitterSerializer, emitterApplier)
	engine.RegisterScript(TowerControllerScript, towerFactory, towerSerializer)
}

func colorProp(p engine.Props, key string, fallback rl.Color) rl.Color {
	if c, ok := assets.ParseColor(p.String(key, "")); ok {
		return c
	}
	return fallback
}

func refStrings(refs []engine.GameObjectRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.IsValid() {
			out = append(out, r.String())
		}
	}
	return out
}

func deflectorFactory(p engine.Props) engine.Component {
	d := NewDeflector(p.Float("deflectionAngle", DefaultDeflectionAngle))
	d.Tint = colorProp(p, "tint", rl.Color{})
	return d
}

func deflectorSerializer(c engine.Component) map[string]any {
	d, ok := c.(*Deflector)
	if !ok {
		return nil
	}
	props := map[string]any{"deflectionAngle": d.DeflectionAngle()}
	if d.Tint.A != 0 {
		props["tint"] = assets.ColorName(d.Tint)
	}
	return props
}

func deflectorApplier(c engine.Component, prop string, value any) bool {
	d, ok := c.(*Deflector)
	if !ok || prop != "deflectionAngle" {
		return false
	}
	v, ok := value.(float64)
	if !ok {
		return false
	}
	d.SetDeflectionAngle(float32(v))
	return true
}

func receiverFactory(p engine.Props) engine.Component {
	r := NewReceiver()
	r.RequireAllDeflectors = p.Bool("requireAllDeflectors", true)
	r.ActivatedColor = colorProp(p, "activatedColor", rl.Green)
	r.EffectRef = p.Ref("effect")
	return r
}

func receiverSerializer(c engine.Component) map[string]any {
	r, ok := c.(*Receiver)
	if !ok {
		return nil
	}
	props := map[string]any{
		"requireAllDeflectors": r.RequireAllDeflectors,
		"activatedColor":       assets.ColorName(r.ActivatedColor),
	}
	if r.EffectRef.IsValid() {
		props["effect"] = r.EffectRef.String()
	}
	return props
}

func emitterFactory(p engine.Props) engine.Component {
	def := DefaultEmitterSettings()
	s := EmitterSettings{
		MaxDistance:    p.Float("maxDistance", def.MaxDistance),
		Mask:           engine.LayerMask(p.Int("mask", int(def.Mask))),
		Width:          p.Float("width", def.Width),
		Color:          colorProp(p, "color", def.Color),
		MaxDeflections: p.Int("maxDeflections", def.MaxDeflections),
		Enabled:        p.Bool("enabled", def.Enabled),
		Continuous:     p.Bool("continuous", def.Continuous),
		CycleTime:      p.Float("cycleTime", def.CycleTime),
		ActiveTime:     p.Float("activeTime", def.ActiveTime),
		ShrinkDelay:    p.Float("shrinkDelay", def.ShrinkDelay),
		Resolve:        ParseResolvePolicy(p.String("resolve", def.Resolve.String())),
	}
	e := NewEmitter(s)
	e.TotalDeflectors = p.Int("totalDeflectors", -1)
	return e
}

func emitterSerializer(c engine.Component) map[string]any {
	e, ok := c.(*Emitter)
	if !ok {
		return nil
	}
	s := e.Settings
	props := map[string]any{
		"maxDistance":    s.MaxDistance,
		"width":          s.Width,
		"color":          assets.ColorName(s.Color),
		"maxDeflections": s.MaxDeflections,
		"enabled":        s.Enabled,
		"continuous":     s.Continuous,
		"cycleTime":      s.CycleTime,
		"activeTime":     s.ActiveTime,
		"shrinkDelay":    s.ShrinkDelay,
		"resolve":        s.Resolve.String(),
	}
	if s.Mask != engine.AllLayers {
		props["mask"] = int(s.Mask)
	}
	if e.TotalDeflectors >= 0 {
		props["totalDeflectors"] = e.TotalDeflectors
	}
	return props
}

func emitterApplier(c engine.Component, prop string, value any) bool {
	e, ok := c.(*Emitter)
	if !ok {
		return false
	}
	switch prop {
	case "enabled", "continuous":
		v, ok := value.(bool)
		if !ok {
			return false
		}
		if prop == "enabled" {
			e.SetEnabled(v)
		} else {
			e.SetContinuous(v)
		}
		return true
	case "width":
		v, ok := value.(float64)
		if !ok {
			return false
		}
		e.Settings.Width = max(float32(v), 0)
		return true
	}
	return false
}

func towerFactory(p engine.Props) engine.Component {
	def := DefaultTowerSettings()
	t := NewTowerController(TowerSettings{
		MoveSpeed:      p.Float("moveSpeed", def.MoveSpeed),
		MinZ:           p.Float("minZ", def.MinZ),
		MaxZ:           p.Float("maxZ", def.MaxZ),
		HighlightColor: colorProp(p, "highlightColor", def.HighlightColor),
		HighlightWidth: p.Float("highlightWidth", def.HighlightWidth),
	})
	t.TowerRefs = p.Refs("towers")
	return t
}

func towerSerializer(c engine.Component) map[string]any {
	t, ok := c.(*TowerController)
	if !ok {
		return nil
	}
	refs := t.TowerRefs
	if len(t.Towers) > 0 {
		refs = make([]engine.GameObjectRef, 0, len(t.Towers))
		for _, tower := range t.Towers {
			refs = append(refs, engine.RefTo(tower))
		}
	}
	return map[string]any{
		"moveSpeed":      t.Settings.MoveSpeed,
		"minZ":           t.Settings.MinZ,
		"maxZ":           t.Settings.MaxZ,
		"highlightColor": assets.ColorName(t.Settings.HighlightColor),
		"highlightWidth": t.Settings.HighlightWidth,
		"towers":         refStrings(refs),
	}
}
