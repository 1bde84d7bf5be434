package game

// LayerMask is a bit set of collision layers. Queries take a mask of layers to exclude.
type LayerMask uint32

const (
	LayerStatic LayerMask = 1 << iota
	LayerBody
	LayerCharacter

	LayerNone LayerMask = 0
)

// Has returns true if any of the layers in o are set in m.
func (m LayerMask) Has(o LayerMask) bool {
	return m&o != 0
}
