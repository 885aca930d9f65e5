package boards

import "sdhw-go/types"

// RP2040 exposes GP0..GP29 (bank 0), two SPI blocks, two PIO blocks and the
// two shared DMA interrupt lines.
var RP2040 = Board{
	Name:    "rp2040",
	GPIOMin: 0,
	GPIOMax: 29,
	SPI:     []types.SPIUnit{types.SPI0, types.SPI1},
	PIO:     []types.PIOUnit{types.PIO0, types.PIO1},
	DMAIRQ:  []types.DMAIRQ{types.DMAIRQ0, types.DMAIRQ1},
}
