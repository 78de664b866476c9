package dice

import (
	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/engine"
)

const DieScript = "Die"

func init() {
	engine.RegisterScriptWithApplier(DieScript, dieFactory, dieSerializer, dieApplier)
}

func dieFactory(p engine.Props) engine.Component {
	d := NewDie(p.Int("value", MinValue))
	d.RotationSpeed = p.Float("rotationSpeed", DefaultRotationSpeed)
	if c, ok := assets.ParseColor(p.String("color", "")); ok {
		d.Color = c
	}
	return d
}

func dieSerializer(c engine.Component) map[string]any {
	d, ok := c.(*Die)
	if !ok {
		return nil
	}
	return map[string]any{
		"value":         d.Value(),
		"rotationSpeed": d.RotationSpeed,
		"color":         assets.ColorName(d.Color),
	}
}

func dieApplier(c engine.Component, prop string, value any) bool {
	d, ok := c.(*Die)
	if !ok {
		return false
	}
	v, ok := value.(float64)
	if !ok {
		return false
	}
	switch prop {
	case "value":
		d.SetValue(int(v))
	case "rotationSpeed":
		d.RotationSpeed = max(float32(v), 0)
	default:
		return false
	}
	return true
}

