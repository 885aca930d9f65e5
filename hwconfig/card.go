package hwconfig

import "sdhw-go/types"

// Mode is the access mode of a card slot.
type Mode uint8

const (
	ModeSDIO Mode = iota // direct 4-bit bus, one card per bus
	ModeSPI              // shared SPI bus, selected by chip select
)

func (m Mode) String() string {
	switch m {
	case ModeSDIO:
		return "sdio"
	case ModeSPI:
		return "spi"
	}
	return "mode?"
}

// Interface is the access path of a card. Exactly two implementations exist:
// *SDIO and *SPISlot.
type Interface interface {
	Mode() Mode
	isInterface()
}

// CardISR services a DMA completion for one direct-mode card.
// It runs in interrupt context: no allocation, no blocking, no panics.
type CardISR func(c *Card)

// PIO budget of direct-mode cards: each bus runs its command and data
// programs on SMPerSDIO state machines of one PIO block.
const (
	SMPerPIO   = 4
	SMPerSDIO  = 2
	SDIOPerPIO = SMPerPIO / SMPerSDIO
)

// SDIO is the direct-mode access path. The card owns its bus; the PIO program
// shifts D0..D3 as one group, so the data lines must be consecutive.
type SDIO struct {
	CLK, CMD       int
	D0, D1, D2, D3 int

	PIO types.PIOUnit

	SetDriveStrength bool
	Drive            types.DriveStrength // CLK, CMD and data lines

	DMAIRQ types.DMAIRQ
	ISR    CardISR

	Xfer TransferState
}

func (*SDIO) Mode() Mode    { return ModeSDIO }
func (*SDIO) isInterface() {}

func (s *SDIO) pins() []pinRole {
	return []pinRole{
		{"clk", s.CLK},
		{"cmd", s.CMD},
		{"d0", s.D0},
		{"d1", s.D1},
		{"d2", s.D2},
		{"d3", s.D3},
	}
}

// SPISlot is the shared-bus access path. SPI indexes the plan's controller
// collection and is read once, by New, which resolves it to a borrowed
// pointer. From then on Controller and ControllerIndex are the wiring; later
// writes to SPI are ignored.
type SPISlot struct {
	SPI int
	SS  int // chip select GPIO, unique per controller

	SetDriveStrength bool
	SSDrive          types.DriveStrength

	ctrl *Controller
	idx  int
}

func (*SPISlot) Mode() Mode    { return ModeSPI }
func (*SPISlot) isInterface() {}

// Controller returns the controller this slot is wired to. It is nil only for
// slots that did not come from a Registry.
func (s *SPISlot) Controller() *Controller { return s.ctrl }

// ControllerIndex returns the registry index of Controller(), or -1 for an
// unresolved slot.
func (s *SPISlot) ControllerIndex() int {
	if s.ctrl == nil {
		return -1
	}
	return s.idx
}

// CardDetect describes the optional presence switch of a socket.
type CardDetect struct {
	Enabled      bool
	GPIO         int
	PresentLevel types.Level // what the GPIO reads when a card is inserted
}

// Present interprets a raw read of the detect GPIO. Without a detect switch
// the card is assumed present.
func (d CardDetect) Present(raw bool) bool {
	if !d.Enabled {
		return true
	}
	return d.PresentLevel.Is(raw)
}

// Card is one SD card slot.
type Card struct {
	Name   string // logical drive, e.g. "0:"
	Iface  Interface
	Detect CardDetect
}

// Mode returns the access mode of the card's interface.
func (c *Card) Mode() Mode { return c.Iface.Mode() }

// SDIO returns the direct-mode interface, if that is the card's mode.
func (c *Card) SDIO() (*SDIO, bool) {
	s, ok := c.Iface.(*SDIO)
	return s, ok
}

// SPI returns the shared-bus interface, if that is the card's mode.
func (c *Card) SPI() (*SPISlot, bool) {
	s, ok := c.Iface.(*SPISlot)
	return s, ok
}

func cloneIface(in Interface) Interface {
	switch v := in.(type) {
	case *SDIO:
		cp := *v
		return &cp
	case *SPISlot:
		cp := *v
		cp.ctrl, cp.idx = nil, 0
		return &cp
	}
	return in
}
