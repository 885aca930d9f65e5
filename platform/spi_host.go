//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"tinygo.org/x/drivers"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/types"
)

var _ drivers.SPI = (*HostSPI)(nil)

// HostSPI implements drivers.SPI for host-side tests. It records the
// configuration it was opened with and loops written bytes back as 0xFF,
// which is what an idle SD card answers.
type HostSPI struct {
	mu sync.Mutex

	Unit          types.SPIUnit
	Frequency     uint32
	SCK, SDO, SDI int
	Drive         map[int]types.DriveStrength // gpio -> drive, when overridden
	LastTx        []byte
	BytesOut      int
}

func (h *HostSPI) Tx(w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx = append(h.LastTx[:0], w...)
	h.BytesOut += len(w)
	for i := range r {
		r[i] = 0xFF
	}
	return nil
}

func (h *HostSPI) Transfer(b byte) (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx = append(h.LastTx[:0], b)
	h.BytesOut++
	return 0xFF, nil
}

var (
	hostSPIMu sync.Mutex
	hostSPI   = map[types.SPIUnit]*HostSPI{}
	hostCS    = map[int]types.DriveStrength{} // deselected chip selects
)

// OpenSPI configures the controller's SPI unit and returns it as a bus.
func OpenSPI(c *hwconfig.Controller) (drivers.SPI, error) {
	if !c.Unit.Valid() {
		return nil, errcode.New(errcode.UnknownUnit, "open spi", c.Unit.String())
	}
	h := &HostSPI{
		Unit:      c.Unit,
		Frequency: c.Baud,
		SCK:       c.SCK,
		SDO:       c.MOSI,
		SDI:       c.MISO,
		Drive:     map[int]types.DriveStrength{},
	}
	if c.SetDriveStrength {
		h.Drive[c.MOSI] = c.MOSIDrive
		h.Drive[c.SCK] = c.SCKDrive
	}
	hostSPIMu.Lock()
	hostSPI[c.Unit] = h
	hostSPIMu.Unlock()
	return h, nil
}

// HostSPIBus returns the bus last opened on unit u.
func HostSPIBus(u types.SPIUnit) (*HostSPI, bool) {
	hostSPIMu.Lock()
	defer hostSPIMu.Unlock()
	h, ok := hostSPI[u]
	return h, ok
}

// ConfigureChipSelect records the slot's chip select as a deselected output.
func ConfigureChipSelect(s *hwconfig.SPISlot) {
	d := types.Drive4mA // pad reset default
	if s.SetDriveStrength {
		d = s.SSDrive
	}
	hostSPIMu.Lock()
	hostCS[s.SS] = d
	hostSPIMu.Unlock()
}

// HostChipSelect reports whether gpio was configured as a chip select, and
// with which drive strength.
func HostChipSelect(gpio int) (types.DriveStrength, bool) {
	hostSPIMu.Lock()
	defer hostSPIMu.Unlock()
	d, ok := hostCS[gpio]
	return d, ok
}
