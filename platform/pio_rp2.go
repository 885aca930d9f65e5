//go:build rp2040 || rp2350

package platform

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

func pioByUnit(u types.PIOUnit) *rp2pio.PIO {
	switch u {
	case types.PIO0:
		return rp2pio.PIO0
	case types.PIO1:
		return rp2pio.PIO1
	}
	return nil
}

// ClaimSDIO reserves two state machines on the card's PIO block and hands the
// SDIO pins to it. The SDIO program itself is loaded by the transfer layer.
func ClaimSDIO(s *hwconfig.SDIO) (SDIOPort, error) {
	block := pioByUnit(s.PIO)
	if block == nil {
		return SDIOPort{}, errcode.New(errcode.UnknownUnit, "claim sdio", s.PIO.String())
	}
	port := SDIOPort{PIO: s.PIO}
	n := 0
	for i := uint8(0); i < smPerPIO && n < SMPerSDIO; i++ {
		if block.StateMachine(i).TryClaim() {
			port.SM[n] = i
			n++
		}
	}
	if n < SMPerSDIO {
		for j := 0; j < n; j++ {
			block.StateMachine(port.SM[j]).Unclaim()
		}
		return SDIOPort{}, errcode.New(errcode.UnitInUse, "claim sdio", s.PIO.String()+": no free state machines")
	}

	for _, p := range sdioPins(s) {
		machine.Pin(p).Configure(machine.PinConfig{Mode: block.PinMode()})
		if s.SetDriveStrength {
			setDrive(p, s.Drive)
		}
	}
	return port, nil
}
