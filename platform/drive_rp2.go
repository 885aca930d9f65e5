//go:build rp2040 || rp2350

package platform

import (
	"device/rp"
	"runtime/volatile"
	"unsafe"

	"sdhw-go/types"
)

// setDrive writes the DRIVE field (bits 5:4) of the bank 0 pad for gpio. The
// pad registers are consecutive words starting at GPIO0.
func setDrive(gpio int, d types.DriveStrength) {
	pad := (*volatile.Register32)(unsafe.Add(unsafe.Pointer(&rp.PADS_BANK0.GPIO0), gpio*4))
	pad.ReplaceBits(uint32(d), 0x3, 4)
}
