//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

func spiByUnit(u types.SPIUnit) *machine.SPI {
	switch u {
	case types.SPI0:
		return machine.SPI0
	case types.SPI1:
		return machine.SPI1
	}
	return nil
}

// OpenSPI configures the controller's SPI unit (mode 0, target baud) and
// applies the pad drive overrides. The achieved rate may be lower; see
// Controller.AchievedBaud.
func OpenSPI(c *hwconfig.Controller) (drivers.SPI, error) {
	spi := spiByUnit(c.Unit)
	if spi == nil {
		return nil, errcode.New(errcode.UnknownUnit, "open spi", c.Unit.String())
	}
	err := spi.Configure(machine.SPIConfig{
		Frequency: c.Baud,
		SCK:       machine.Pin(c.SCK),
		SDO:       machine.Pin(c.MOSI), // SDO = Serial Data Out (MOSI)
		SDI:       machine.Pin(c.MISO), // SDI = Serial Data In (MISO)
		Mode:      0,
	})
	if err != nil {
		return nil, err
	}
	if c.SetDriveStrength {
		setDrive(c.MOSI, c.MOSIDrive)
		setDrive(c.SCK, c.SCKDrive)
	}
	return spi, nil
}

// ConfigureChipSelect drives a slot's chip select high (deselected) and
// applies its drive override.
func ConfigureChipSelect(s *hwconfig.SPISlot) {
	cs := machine.Pin(s.SS)
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()
	if s.SetDriveStrength {
		setDrive(s.SS, s.SSDrive)
	}
}
