package types

// ------------------------
// Pad drive strength
// ------------------------

// DriveStrength matches the RP2040 PADS_BANK0 DRIVE field encoding.
type DriveStrength uint8

const (
	Drive2mA DriveStrength = iota
	Drive4mA
	Drive8mA
	Drive12mA
)

func (d DriveStrength) Valid() bool { return d <= Drive12mA }

func (d DriveStrength) String() string {
	switch d {
	case Drive2mA:
		return "2mA"
	case Drive4mA:
		return "4mA"
	case Drive8mA:
		return "8mA"
	case Drive12mA:
		return "12mA"
	}
	return "drive?"
}

// ------------------------
// Controller units
// ------------------------

// SPIUnit identifies a hardware SPI block (shared-bus mode).
type SPIUnit uint8

const (
	SPI0 SPIUnit = iota
	SPI1
)

func (u SPIUnit) Valid() bool { return u <= SPI1 }

func (u SPIUnit) String() string {
	switch u {
	case SPI0:
		return "spi0"
	case SPI1:
		return "spi1"
	}
	return "spi?"
}

// PIOUnit identifies a PIO block (direct SDIO mode).
type PIOUnit uint8

const (
	PIO0 PIOUnit = iota
	PIO1
)

func (u PIOUnit) Valid() bool { return u <= PIO1 }

func (u PIOUnit) String() string {
	switch u {
	case PIO0:
		return "pio0"
	case PIO1:
		return "pio1"
	}
	return "pio?"
}

// ------------------------
// DMA interrupt lines
// ------------------------

// DMAIRQ is a DMA completion interrupt line.
type DMAIRQ uint8

const (
	DMAIRQ0 DMAIRQ = iota
	DMAIRQ1

	NumDMAIRQ = 2
)

func (l DMAIRQ) Valid() bool { return l < NumDMAIRQ }

func (l DMAIRQ) String() string {
	switch l {
	case DMAIRQ0:
		return "dma_irq_0"
	case DMAIRQ1:
		return "dma_irq_1"
	}
	return "dma_irq_?"
}

// ------------------------
// Logic level
// ------------------------

type Level uint8

const (
	Low Level = iota
	High
)

// Is reports whether a raw pin read equals this level.
func (l Level) Is(raw bool) bool { return raw == (l == High) }

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}
