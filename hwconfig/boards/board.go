package boards

import "sdhw-go/types"

// Board describes what the SoC offers to the SD topology: the GPIO range and
// the controller units present. It must not include wiring choices (pins) or
// operating parameters (clock rates); those belong to a setup.
type Board struct {
	Name             string
	GPIOMin, GPIOMax int

	SPI    []types.SPIUnit
	PIO    []types.PIOUnit
	DMAIRQ []types.DMAIRQ
}

// GPIOValid reports whether n is a GPIO number on this board.
func (b Board) GPIOValid(n int) bool { return n >= b.GPIOMin && n <= b.GPIOMax }

func (b Board) HasSPI(u types.SPIUnit) bool {
	for _, x := range b.SPI {
		if x == u {
			return true
		}
	}
	return false
}

func (b Board) HasPIO(u types.PIOUnit) bool {
	for _, x := range b.PIO {
		if x == u {
			return true
		}
	}
	return false
}

func (b Board) HasDMAIRQ(l types.DMAIRQ) bool {
	for _, x := range b.DMAIRQ {
		if x == l {
			return true
		}
	}
	return false
}
