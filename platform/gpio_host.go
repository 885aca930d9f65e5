//go:build !(rp2040 || rp2350)

package platform

import "sync"

// FakePin implements InputPin for host-side tests.
type FakePin struct {
	mu         sync.RWMutex
	number     int
	level      bool
	pull       Pull
	configured bool
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.pull = pull
	p.configured = true
	// An open switch reads the pulled level.
	p.level = pull == PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

// Drive forces the level seen by Get, e.g. a socket switch closing.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Pull() Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

func (p *FakePin) Configured() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.configured
}

func (p *FakePin) Number() int { return p.number }

// HostPinFactory returns stable *FakePin instances per number in 0..GPIOMax.
type HostPinFactory struct {
	GPIOMax int

	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (InputPin, bool) {
	p, ok := f.Get(n)
	return p, ok
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > f.GPIOMax {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// DefaultPinFactory provides host GPIOs over the registry board's range.
func DefaultPinFactory() PinFactory {
	return &HostPinFactory{GPIOMax: registry.Board().GPIOMax}
}
