//go:build rp2040 || rp2350

package platform

import "machine"

type rp2PinFactory struct{ max int }

func (f rp2PinFactory) ByNumber(n int) (InputPin, bool) {
	if n < 0 || n > f.max {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) Get() bool   { return r.p.Get() }
func (r *rp2Pin) Number() int { return r.n }

// DefaultPinFactory maps GPIO numbers directly to machine.Pin(n), bounded by
// the registry board.
func DefaultPinFactory() PinFactory { return rp2PinFactory{max: registry.Board().GPIOMax} }
