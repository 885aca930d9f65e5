//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

var (
	pioMu     sync.Mutex
	pioClaims = [2][smPerPIO]bool{} // [pio][sm]
	pioPins   = map[int]types.PIOUnit{}
)

// ClaimSDIO reserves two state machines on the card's PIO block and records
// its pins as PIO-owned.
func ClaimSDIO(s *hwconfig.SDIO) (SDIOPort, error) {
	if !s.PIO.Valid() {
		return SDIOPort{}, errcode.New(errcode.UnknownUnit, "claim sdio", s.PIO.String())
	}
	pioMu.Lock()
	defer pioMu.Unlock()

	port := SDIOPort{PIO: s.PIO}
	n := 0
	for i := uint8(0); i < smPerPIO && n < SMPerSDIO; i++ {
		if !pioClaims[s.PIO][i] {
			port.SM[n] = i
			n++
		}
	}
	if n < SMPerSDIO {
		return SDIOPort{}, errcode.New(errcode.UnitInUse, "claim sdio", s.PIO.String()+": no free state machines")
	}
	for _, sm := range port.SM {
		pioClaims[s.PIO][sm] = true
	}
	for _, p := range sdioPins(s) {
		pioPins[p] = s.PIO
	}
	return port, nil
}

// PIOPinOwner reports which PIO block a pin was handed to.
func PIOPinOwner(gpio int) (types.PIOUnit, bool) {
	pioMu.Lock()
	defer pioMu.Unlock()
	u, ok := pioPins[gpio]
	return u, ok
}

// ResetPIOClaims releases every host claim (for testing).
func ResetPIOClaims() {
	pioMu.Lock()
	pioClaims = [2][smPerPIO]bool{}
	pioPins = map[int]types.PIOUnit{}
	pioMu.Unlock()
}
