// Package platform binds the compiled-in SD topology to the hardware: it
// builds the registry during package initialisation, installs the DMA
// vectors, and hands controllers and PIO blocks to their drivers.
package platform

import (
	"strconv"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/hwconfig/setups"
	"sdhw-go/types"
)

// Built before main runs; a bad table stops the firmware here.
var registry = hwconfig.MustNew(setups.SelectedPlan)

// Registry returns the process-wide SD topology.
func Registry() *hwconfig.Registry { return registry }

// Boot installs the DMA vectors for the process-wide topology and returns it.
// Call once, before any transfer is started.
func Boot() *hwconfig.Registry {
	InstallIRQs(registry.Dispatcher())
	return registry
}

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// InputPin is the subset of a GPIO the card-detect path needs.
type InputPin interface {
	ConfigureInput(pull Pull) error
	Get() bool
	Number() int
}

// PinFactory supplies pins by GPIO number.
type PinFactory interface {
	ByNumber(n int) (InputPin, bool)
}

// ConfigureCardDetect prepares the detect GPIO of c, pulled towards the
// "absent" level. Cards without a detect switch are left alone.
func ConfigureCardDetect(pins PinFactory, c *hwconfig.Card) error {
	if !c.Detect.Enabled {
		return nil
	}
	p, ok := pins.ByNumber(c.Detect.GPIO)
	if !ok {
		return errcode.New(errcode.PinOutOfRange, "card detect", "gpio "+strconv.Itoa(c.Detect.GPIO))
	}
	pull := PullUp
	if c.Detect.PresentLevel == types.High {
		pull = PullDown
	}
	return p.ConfigureInput(pull)
}

// CardPresent reads the detect switch of c. Debouncing is the caller's job.
func CardPresent(pins PinFactory, c *hwconfig.Card) (bool, error) {
	if !c.Detect.Enabled {
		return true, nil
	}
	p, ok := pins.ByNumber(c.Detect.GPIO)
	if !ok {
		return false, errcode.New(errcode.PinOutOfRange, "card detect", "gpio "+strconv.Itoa(c.Detect.GPIO))
	}
	return c.Detect.Present(p.Get()), nil
}

// ---- PIO ----

// SMPerSDIO is how many state machines one SDIO interface occupies
// (command and data).
const SMPerSDIO = hwconfig.SMPerSDIO

const smPerPIO = hwconfig.SMPerPIO

// SDIOPort records the PIO resources claimed for one direct-mode card.
type SDIOPort struct {
	PIO types.PIOUnit
	SM  [SMPerSDIO]uint8
}

func sdioPins(s *hwconfig.SDIO) []int {
	return []int{s.CLK, s.CMD, s.D0, s.D1, s.D2, s.D3}
}
