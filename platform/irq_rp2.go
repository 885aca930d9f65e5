//go:build rp2040 || rp2350

package platform

import (
	"device/rp"
	"runtime/interrupt"

	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

var dispatch *hwconfig.Dispatcher

// InstallIRQs registers one vector per DMA line. The vectors are fixed at
// compile time; each forwards into the dispatch table, which carries the
// owning descriptors. Lines without owners stay masked.
func InstallIRQs(d *hwconfig.Dispatcher) {
	dispatch = d

	irq0 := interrupt.New(rp.IRQ_DMA_IRQ_0, func(interrupt.Interrupt) {
		dispatch.Fire(types.DMAIRQ0)
	})
	irq1 := interrupt.New(rp.IRQ_DMA_IRQ_1, func(interrupt.Interrupt) {
		dispatch.Fire(types.DMAIRQ1)
	})

	if d.Bound(types.DMAIRQ0) > 0 {
		irq0.Enable()
	}
	if d.Bound(types.DMAIRQ1) > 0 {
		irq1.Enable()
	}
}
