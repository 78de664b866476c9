package dice

import (
	"math"

	"laserpuzzle/internal/engine"
	"laserpuzzle/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	MinValue = 1
	MaxValue = 6

	DefaultRotationSpeed float32 = 5
	// snapAngle is the remaining angle in degrees below which the animation snaps.
	snapAngle = 0.1
)

// faceEuler holds the object rotation in degrees that shows each value on top.
var faceEuler = [MaxValue]rl.Vector3{
	{X: 0, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 90},
	{X: 90, Y: 0, Z: 0},
	{X: -90, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: -90},
	{X: 180, Y: 0, Z: 0},
}

// FaceRotation returns the rotation showing value, clamped to [1, 6].
func FaceRotation(value int) rl.Quaternion {
	e := faceEuler[clampValue(value)-1]
	return rl.QuaternionFromEuler(e.X*rl.Deg2rad, e.Y*rl.Deg2rad, e.Z*rl.Deg2rad)
}

// Die turns its object to show a value from 1 to 6.
type Die struct {
	engine.BaseComponent
	RotationSpeed float32
	Color         rl.Color
	Highlight     engine.Highlightable

	OnValueChanged engine.EventWithArg[int]

	value    int
	current  rl.Quaternion
	target   rl.Quaternion
	rotating bool
}

func NewDie(value int) *Die {
	v := clampValue(value)
	return &Die{
		RotationSpeed: DefaultRotationSpeed,
		Color:         rl.White,
		value:         v,
		current:       FaceRotation(v),
		target:        FaceRotation(v),
	}
}

// Start snaps the object to the current face and hides the highlight.
func (d *Die) Start() {
	if d.value == 0 {
		d.value = MinValue
	}
	d.target = FaceRotation(d.value)
	d.current = d.target
	d.rotating = false
	d.apply()
	if d.Highlight != nil {
		d.Highlight.SetEnabled(false)
	}
}

// Update advances the rotation animation.
func (d *Die) Update(deltaTime float32) {
	if !d.rotating {
		return
	}
	t := clamp01(d.RotationSpeed * deltaTime)
	// Slerp falls back to an unnormalized lerp for tiny angles.
	d.current = rl.QuaternionNormalize(rl.QuaternionSlerp(d.current, d.target, t))
	if angleBetween(d.current, d.target) < snapAngle {
		d.current = d.target
		d.rotating = false
	}
	d.apply()
}

func (d *Die) Value() int {
	return d.value
}

func (d *Die) IsRotating() bool {
	return d.rotating
}

// SetValue clamps value to [1, 6] and starts turning to it when it changed.
func (d *Die) SetValue(value int) {
	value = clampValue(value)
	if value == d.value {
		return
	}
	d.value = value
	d.target = FaceRotation(value)
	d.rotating = true

	name := ""
	if g := d.GetGameObject(); g != nil {
		name = g.Name
	}
	logging.L().Named("dice").Debug("die value changed", zap.String("die", name), zap.Int("value", value))
	d.OnValueChanged.Invoke(value)
}

// Increment wraps from 6 to 1.
func (d *Die) Increment() {
	next := d.value + 1
	if next > MaxValue {
		next = MinValue
	}
	d.SetValue(next)
}

// Decrement wraps from 1 to 6.
func (d *Die) Decrement() {
	next := d.value - 1
	if next < MinValue {
		next = MaxValue
	}
	d.SetValue(next)
}

// SetSelected configures and toggles the highlight.
func (d *Die) SetSelected(selected bool, color rl.Color, width float32) {
	if d.Highlight == nil {
		return
	}
	d.Highlight.SetColor(color)
	d.Highlight.SetWidth(width)
	d.Highlight.SetEnabled(selected)
}

func (d *Die) apply() {
	if g := d.GetGameObject(); g != nil {
		g.Transform.SetQuaternion(d.current)
	}
}

// angleBetween returns the rotation angle in degrees taking a to b.
func angleBetween(a, b rl.Quaternion) float32 {
	dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	return 2 * float32(math.Acos(float64(dot))) * rl.Rad2deg
}

func clampValue(v int) int {
	return min(max(v, MinValue), MaxValue)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
