package main

import (
	"time"

	"sdhw-go/hwconfig"
	"sdhw-go/internal/debuglog"
	"sdhw-go/platform"
)

// Peripheral clock the SPI dividers run from on a stock Pico.
const clkPeri = 125_000_000

func main() {
	// Allow the console to come up before we print.
	time.Sleep(2 * time.Second)
	debuglog.Print("boot")

	reg := platform.Boot()
	describe(reg)

	for i := 0; i < reg.ControllerCount(); i++ {
		c, _ := reg.Controller(i)
		if _, err := platform.OpenSPI(c); err != nil {
			debuglog.Print("spi", c.Unit, "open failed:", err)
		}
	}

	pins := platform.DefaultPinFactory()
	for i := 0; i < reg.CardCount(); i++ {
		card, _ := reg.Card(i)
		switch v := card.Iface.(type) {
		case *hwconfig.SDIO:
			if _, err := platform.ClaimSDIO(v); err != nil {
				debuglog.Print("card", card.Name, "sdio claim failed:", err)
			}
		case *hwconfig.SPISlot:
			platform.ConfigureChipSelect(v)
		}
		if err := platform.ConfigureCardDetect(pins, card); err != nil {
			debuglog.Print("card", card.Name, "detect:", err)
		}
	}

	// Report socket changes once a second.
	present := make([]bool, reg.CardCount())
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()
	for range tick.C {
		for i := range present {
			card, _ := reg.Card(i)
			now, err := platform.CardPresent(pins, card)
			if err != nil || now == present[i] {
				continue
			}
			present[i] = now
			debuglog.Print("card", card.Name, "present", now)
		}
	}
}

func describe(reg *hwconfig.Registry) {
	debuglog.Print("board", reg.Board().Name, "controllers", reg.ControllerCount(), "cards", reg.CardCount())
	for i := 0; i < reg.ControllerCount(); i++ {
		c, _ := reg.Controller(i)
		debuglog.Print(" ", c.Unit, "miso", c.MISO, "mosi", c.MOSI, "sck", c.SCK,
			"baud", c.Baud, "achieved", c.AchievedBaud(clkPeri), c.DMAIRQ)
	}
	for i := 0; i < reg.CardCount(); i++ {
		card, _ := reg.Card(i)
		switch v := card.Iface.(type) {
		case *hwconfig.SDIO:
			debuglog.Print(" ", card.Name, "sdio", v.PIO, "clk", v.CLK, "cmd", v.CMD, "d0", v.D0, v.DMAIRQ)
		case *hwconfig.SPISlot:
			debuglog.Print(" ", card.Name, "spi", v.Controller().Unit, "ss", v.SS)
		}
		if card.Detect.Enabled {
			debuglog.Print("   detect gpio", card.Detect.GPIO, "present", card.Detect.PresentLevel)
		}
	}
}
