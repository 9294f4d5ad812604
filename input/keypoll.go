package input

// KeyStateFunc reports whether the key with the given code is held.
type KeyStateFunc func(code uint8) bool

// KeyPoller is a digital source that samples key state on every snapshot.
type KeyPoller struct {
	state KeyStateFunc
}

// NewKeyPoller wraps f.
func NewKeyPoller(f KeyStateFunc) *KeyPoller {
	return &KeyPoller{state: f}
}

func (p *KeyPoller) Snapshot(codes []uint8) (Snapshot, error) {
	out := make(Snapshot, len(codes))
	for _, c := range codes {
		if p.state(c) {
			out[c] = 1
		}
	}
	return out, nil
}
