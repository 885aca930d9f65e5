// Package hwconfig describes how SD card sockets are wired to the MCU and
// routes DMA completion interrupts to the descriptor that owns them.
package hwconfig

import (
	"errors"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig/boards"
)

// Plan is a literal SD topology: the board it targets, the shared-bus
// controllers and the card slots. Cards in shared-bus mode refer to
// controllers by index into Controllers.
type Plan struct {
	Board       boards.Board
	Controllers []Controller
	Cards       []Card
}

// Registry owns the controller and card descriptors of one topology and the
// interrupt table bound to them. It is immutable after New: lookups hand
// out pointers into registry storage whose topology fields callers treat as
// read-only, and only TransferState changes at run time.
//
// Lookups are synchronous and must not be called from interrupt context.
type Registry struct {
	board boards.Board
	ctrls []Controller
	cards []Card
	disp  Dispatcher
}

// New copies p into registry-owned storage, resolves shared-bus references,
// validates the topology and binds every DMA completion to its owner. All
// violations are reported together.
func New(p Plan) (*Registry, error) {
	r := &Registry{
		board: p.Board,
		ctrls: make([]Controller, len(p.Controllers)),
		cards: make([]Card, len(p.Cards)),
	}
	copy(r.ctrls, p.Controllers)
	for i, c := range p.Cards {
		r.cards[i] = c
		r.cards[i].Iface = cloneIface(c.Iface)
	}

	if errs := validate(r.board, r.ctrls, r.cards); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var errs []error
	for i := range r.ctrls {
		c := &r.ctrls[i]
		if err := r.disp.bindController(controllerOp(i, c), c); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range r.cards {
		c := &r.cards[i]
		switch v := c.Iface.(type) {
		case *SPISlot:
			v.ctrl, v.idx = &r.ctrls[v.SPI], v.SPI
		case *SDIO:
			if err := r.disp.bindCard(cardOp(c), c, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// MustNew is New for compiled-in topologies: a bad table is a build defect,
// so it panics at initialisation instead of surfacing at first use.
func MustNew(p Plan) *Registry {
	r, err := New(p)
	if err != nil {
		panic("hwconfig: invalid sd topology: " + err.Error())
	}
	return r
}

// Board returns the board the topology was validated against.
func (r *Registry) Board() boards.Board { return r.board }

// ControllerCount returns the number of shared-bus controllers.
func (r *Registry) ControllerCount() int { return len(r.ctrls) }

// Controller returns the i-th controller, or errcode.NotFound unless
// 0 <= i < ControllerCount().
func (r *Registry) Controller(i int) (*Controller, error) {
	if i < 0 || i >= len(r.ctrls) {
		return nil, errcode.NotFound
	}
	return &r.ctrls[i], nil
}

// CardCount returns the number of card slots.
func (r *Registry) CardCount() int { return len(r.cards) }

// Card returns the i-th card slot, or errcode.NotFound unless
// 0 <= i < CardCount().
func (r *Registry) Card(i int) (*Card, error) {
	if i < 0 || i >= len(r.cards) {
		return nil, errcode.NotFound
	}
	return &r.cards[i], nil
}

// FindCard returns the card whose logical name is exactly name.
func (r *Registry) FindCard(name string) (*Card, error) {
	for i := range r.cards {
		if r.cards[i].Name == name {
			return &r.cards[i], nil
		}
	}
	return nil, errcode.NotFound
}

// CardIndex returns the index of c within the registry, or errcode.NotFound
// if c is not owned by it.
func (r *Registry) CardIndex(c *Card) (int, error) {
	for i := range r.cards {
		if &r.cards[i] == c {
			return i, nil
		}
	}
	return -1, errcode.NotFound
}

// ControllerIndex returns the index of c within the registry, or
// errcode.NotFound if c is not owned by it.
func (r *Registry) ControllerIndex(c *Controller) (int, error) {
	for i := range r.ctrls {
		if &r.ctrls[i] == c {
			return i, nil
		}
	}
	return -1, errcode.NotFound
}

// Dispatcher returns the interrupt table. The platform installs one vector
// per DMA line that forwards into Dispatcher.Fire.
func (r *Registry) Dispatcher() *Dispatcher { return &r.disp }
