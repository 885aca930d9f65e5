package setups

import (
	"sdhw-go/hwconfig"
	"sdhw-go/hwconfig/boards"
	"sdhw-go/sdbus"
	"sdhw-go/types"
)

// SDIOCLK is the clock GPIO the SDIO PIO program is assembled for.
const SDIOCLK = 17

// DualSlot wires one SDIO socket and one SPI socket on a Pico.
//
//	spi1: MISO GP12, MOSI GP15, SCK GP14, 25 MHz (20.83 MHz achieved at 125 MHz)
//	"0:"  SDIO on pio1, CLK GP17, CMD GP18, D0..D3 GP19..GP22, detect GP16
//	"1:"  SPI on spi1, SS GP9, detect GP13
//
// Both completions share DMA_IRQ_1.
func DualSlot() hwconfig.Plan {
	return hwconfig.Plan{
		Board: boards.RP2040,
		Controllers: []hwconfig.Controller{
			{
				Unit:             types.SPI1,
				MISO:             12,
				MOSI:             15,
				SCK:              14,
				SetDriveStrength: true,
				MOSIDrive:        types.Drive2mA,
				SCKDrive:         types.Drive2mA,
				Baud:             25 * 1000 * 1000,
				DMAIRQ:           types.DMAIRQ1,
				ISR:              sdbus.SPIDMAComplete,
			},
		},
		Cards: []hwconfig.Card{
			{
				Name: "0:",
				Iface: &hwconfig.SDIO{
					CLK: SDIOCLK, CMD: 18,
					D0: 19, D1: 20, D2: 21, D3: 22,
					PIO:    types.PIO1,
					DMAIRQ: types.DMAIRQ1,
					ISR:    sdbus.SDIODMAComplete,
				},
				Detect: hwconfig.CardDetect{Enabled: true, GPIO: 16, PresentLevel: types.High},
			},
			{
				Name: "1:",
				Iface: &hwconfig.SPISlot{
					SPI:              0,
					SS:               9,
					SetDriveStrength: true,
					SSDrive:          types.Drive2mA,
				},
				Detect: hwconfig.CardDetect{Enabled: true, GPIO: 13, PresentLevel: types.High},
			},
		},
	}
}
