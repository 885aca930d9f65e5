package hwconfig

import (
	"sync/atomic"

	"sdhw-go/types"
)

// ControllerISR services a DMA completion for one SPI controller instance.
// It runs in interrupt context: no allocation, no blocking, no panics.
type ControllerISR func(c *Controller)

// Controller is one shared-bus (SPI) controller instance. Several cards may
// borrow the same Controller through distinct chip selects.
type Controller struct {
	Unit types.SPIUnit

	// GPIO numbers (not package pin numbers).
	MISO int
	MOSI int
	SCK  int

	// Drive strengths apply to the output lines only when SetDriveStrength is set.
	SetDriveStrength bool
	MOSIDrive        types.DriveStrength
	SCKDrive         types.DriveStrength

	// Baud is the requested SCK rate in Hz. See AchievedBaud.
	Baud uint32

	DMAIRQ types.DMAIRQ
	ISR    ControllerISR

	// Xfer is written from interrupt context by the bus layer.
	Xfer TransferState
}

func (c *Controller) pins() []pinRole {
	return []pinRole{
		{"miso", c.MISO},
		{"mosi", c.MOSI},
		{"sck", c.SCK},
	}
}

// AchievedBaud returns the SCK rate the RP2040 SSP prescaler and post-divider
// produce for Baud from a peripheral clock of clkPeri Hz. The result is never
// above Baud; 0 means the target is unreachable.
func (c *Controller) AchievedBaud(clkPeri uint32) uint32 {
	return achievedBaud(clkPeri, c.Baud)
}

func achievedBaud(clkPeri, baud uint32) uint32 {
	if baud == 0 || clkPeri == 0 {
		return 0
	}
	in, want := uint64(clkPeri), uint64(baud)

	// Even prescale 2..254, then post-divide 1..256.
	prescale := uint64(2)
	for ; prescale <= 254; prescale += 2 {
		if in < (prescale+2)*256*want {
			break
		}
	}
	if prescale > 254 {
		return 0
	}
	postdiv := uint64(256)
	for ; postdiv > 1; postdiv-- {
		if in/(prescale*(postdiv-1)) > want {
			break
		}
	}
	return uint32(in / (prescale * postdiv))
}

// TransferState is driver-owned state touched from interrupt context. It is
// not part of the topology; access goes through the atomic methods only.
type TransferState struct {
	pending     uint32
	completions uint32
}

// Arm marks a DMA transfer as in flight.
func (x *TransferState) Arm() { atomic.StoreUint32(&x.pending, 1) }

// Complete acknowledges a completion. Safe from interrupt context.
func (x *TransferState) Complete() {
	atomic.StoreUint32(&x.pending, 0)
	atomic.AddUint32(&x.completions, 1)
}

func (x *TransferState) Pending() bool       { return atomic.LoadUint32(&x.pending) != 0 }
func (x *TransferState) Completions() uint32 { return atomic.LoadUint32(&x.completions) }
