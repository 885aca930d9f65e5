package hwconfig

import (
	"strconv"
	"sync/atomic"

	"sdhw-go/errcode"
	"sdhw-go/types"
)

// MaxISRsPerLine bounds how many descriptors may share one DMA line.
const MaxISRsPerLine = 4

// isrEntry forwards one line activation to the handler of one descriptor.
// Exactly one of onCtrl/onCard is set.
type isrEntry struct {
	ctrl   *Controller
	onCtrl ControllerISR
	card   *Card
	onCard CardISR
}

func (e *isrEntry) fire() {
	if e.onCtrl != nil {
		e.onCtrl(e.ctrl)
		return
	}
	e.onCard(e.card)
}

type isrLine struct {
	n int
	e [MaxISRsPerLine]isrEntry
}

// Dispatcher maps each DMA interrupt line to the descriptors that own a
// completion on it. The table is filled by New and read-only afterwards.
type Dispatcher struct {
	lines    [types.NumDMAIRQ]isrLine
	spurious uint32
}

func (d *Dispatcher) add(op string, line types.DMAIRQ, e isrEntry) error {
	if !line.Valid() {
		return errcode.New(errcode.InvalidParams, op, "dma irq "+strconv.Itoa(int(line)))
	}
	l := &d.lines[line]
	if l.n == MaxISRsPerLine {
		return errcode.New(errcode.IRQTableFull, op, line.String())
	}
	l.e[l.n] = e
	l.n++
	return nil
}

func (d *Dispatcher) bindController(op string, c *Controller) error {
	return d.add(op, c.DMAIRQ, isrEntry{ctrl: c, onCtrl: c.ISR})
}

func (d *Dispatcher) bindCard(op string, c *Card, s *SDIO) error {
	return d.add(op, s.DMAIRQ, isrEntry{card: c, onCard: s.ISR})
}

// Fire runs every handler bound to line, in binding order. It is the body of
// the hardware vector: it does not allocate or block. A line with no owner is
// counted as spurious.
func (d *Dispatcher) Fire(line types.DMAIRQ) {
	if !line.Valid() || d.lines[line].n == 0 {
		atomic.AddUint32(&d.spurious, 1)
		return
	}
	l := &d.lines[line]
	for i := 0; i < l.n; i++ {
		l.e[i].fire()
	}
}

// Bound reports how many handlers share line.
func (d *Dispatcher) Bound(line types.DMAIRQ) int {
	if !line.Valid() {
		return 0
	}
	return d.lines[line].n
}

// Spurious reports how many activations found no owner.
func (d *Dispatcher) Spurious() uint32 { return atomic.LoadUint32(&d.spurious) }
