package engine

// Layer is a collision layer index in [0, 31].
type Layer uint8

// LayerMask selects a set of layers for raycasts.
type LayerMask uint32

const (
	DefaultLayer Layer = 0
	MaxLayer     Layer = 31

	NoLayers  LayerMask = 0
	AllLayers LayerMask = ^LayerMask(0)
)

// MaskOf builds a mask containing the given layers. Out-of-range layers are clamped to MaxLayer.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l > MaxLayer {
			l = MaxLayer
		}
		m |= 1 << l
	}
	return m
}

func (m LayerMask) Contains(l Layer) bool {
	if l > MaxLayer {
		return false
	}
	return m&(1<<l) != 0
}

func (m LayerMask) Without(layers ...Layer) LayerMask {
	return m &^ MaskOf(layers...)
}
