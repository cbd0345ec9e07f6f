package common

// Layer is a bit set of collision layers. The physics world maps each bit to
// a Chipmunk shape-filter category.
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerWall
	LayerHazard
	LayerBarrier
	LayerPlayer

	LayerNone Layer = 0
	LayerAll  Layer = ^Layer(0)
)

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

func (l Layer) String() string {
	if l == LayerNone {
		return "none"
	}
	names := []struct {
		bit  Layer
		name string
	}{
		{LayerGround, "ground"},
		{LayerWall, "wall"},
		{LayerHazard, "hazard"},
		{LayerBarrier, "barrier"},
		{LayerPlayer, "player"},
	}
	out := ""
	for _, n := range names {
		if l&n.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	if out == "" {
		return "unknown"
	}
	return out
}
