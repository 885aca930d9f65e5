//go:build !(rp2040 || rp2350)

package platform

import (
	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

var installed *hwconfig.Dispatcher

// InstallIRQs records d as the target of simulated DMA interrupts.
func InstallIRQs(d *hwconfig.Dispatcher) { installed = d }

// Raise simulates the hardware asserting line. Lines are dropped until
// InstallIRQs has run, like a masked vector.
func Raise(line types.DMAIRQ) {
	if installed != nil {
		installed.Fire(line)
	}
}
