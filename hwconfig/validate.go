package hwconfig

import (
	"strconv"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig/boards"
	"sdhw-go/types"
)

type pinRole struct {
	role string
	gpio int
}

func controllerOp(i int, c *Controller) string {
	return "controller " + strconv.Itoa(i) + " (" + c.Unit.String() + ")"
}

func cardOp(c *Card) string { return "card " + strconv.Quote(c.Name) }

func gpioMsg(r pinRole) string { return r.role + " gpio " + strconv.Itoa(r.gpio) }

// checkPins enforces range and single-role use of the GPIOs of one descriptor.
// Borrowed pins belong to another descriptor that checks their range itself;
// they only take part in the reuse check.
func checkPins(op string, b boards.Board, borrowed, pins []pinRole) []error {
	var errs []error
	seen := make(map[int]string, len(borrowed)+len(pins))
	for _, p := range borrowed {
		seen[p.gpio] = p.role
	}
	for _, p := range pins {
		if !b.GPIOValid(p.gpio) {
			errs = append(errs, errcode.New(errcode.PinOutOfRange, op, gpioMsg(p)))
			continue
		}
		if prev, dup := seen[p.gpio]; dup {
			errs = append(errs, errcode.New(errcode.PinReused, op, gpioMsg(p)+" already used as "+prev))
			continue
		}
		seen[p.gpio] = p.role
	}
	return errs
}

// pinOwner is the descriptor a GPIO is wired to across the whole topology.
// Controllers take ids 0..n-1 and cards follow them.
type pinOwner struct {
	id   int
	op   string
	role string
}

const roleSS = "ss"

// claimPins records the owner of every in-range pin and rejects pins already
// wired to another descriptor. The lines of the borrowed controller (-1 for
// none) may repeat, as may a chip select shared with a card on a different
// controller; the per-descriptor and per-controller checks cover the rest.
func claimPins(owners map[int]pinOwner, b boards.Board, id, borrowed int, op string, pins []pinRole) []error {
	var errs []error
	for _, p := range pins {
		if !b.GPIOValid(p.gpio) {
			continue
		}
		prev, taken := owners[p.gpio]
		switch {
		case !taken:
			owners[p.gpio] = pinOwner{id: id, op: op, role: p.role}
		case prev.id == id, prev.id == borrowed:
		case p.role == roleSS && prev.role == roleSS:
		default:
			errs = append(errs, errcode.New(errcode.PinInUse, op, gpioMsg(p)+" already wired to "+prev.op+" as "+prev.role))
		}
	}
	return errs
}

func checkDrive(op, role string, set bool, d types.DriveStrength) error {
	if set && !d.Valid() {
		return errcode.New(errcode.InvalidParams, op, role+" drive strength "+strconv.Itoa(int(d)))
	}
	return nil
}

func checkIRQ(op string, b boards.Board, l types.DMAIRQ) error {
	if !l.Valid() || !b.HasDMAIRQ(l) {
		return errcode.New(errcode.UnknownUnit, op, "dma irq "+strconv.Itoa(int(l)))
	}
	return nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}

func validate(b boards.Board, ctrls []Controller, cards []Card) []error {
	var errs []error

	owners := make(map[int]pinOwner)
	units := make(map[types.SPIUnit]int, len(ctrls))
	for i := range ctrls {
		c := &ctrls[i]
		op := controllerOp(i, c)
		if !c.Unit.Valid() || !b.HasSPI(c.Unit) {
			errs = append(errs, errcode.New(errcode.UnknownUnit, op, c.Unit.String()))
		} else if prev, dup := units[c.Unit]; dup {
			errs = append(errs, errcode.New(errcode.UnitInUse, op, "also wrapped by controller "+strconv.Itoa(prev)))
		} else {
			units[c.Unit] = i
		}
		errs = append(errs, checkPins(op, b, nil, c.pins())...)
		errs = append(errs, claimPins(owners, b, i, -1, op, c.pins())...)
		if c.Baud == 0 {
			errs = append(errs, errcode.New(errcode.InvalidParams, op, "zero baud"))
		}
		errs = appendErr(errs, checkDrive(op, "mosi", c.SetDriveStrength, c.MOSIDrive))
		errs = appendErr(errs, checkDrive(op, "sck", c.SetDriveStrength, c.SCKDrive))
		errs = appendErr(errs, checkIRQ(op, b, c.DMAIRQ))
		if c.ISR == nil {
			errs = append(errs, errcode.New(errcode.MissingISR, op, c.DMAIRQ.String()))
		}
	}

	names := make(map[string]bool, len(cards))
	type csKey struct{ ctrl, gpio int }
	chipSelects := make(map[csKey]string, len(cards))
	sdioPerPIO := make(map[types.PIOUnit]int, len(cards))
	for i := range cards {
		c := &cards[i]
		op := cardOp(c)
		if c.Name == "" {
			op = "card " + strconv.Itoa(i)
			errs = append(errs, errcode.New(errcode.InvalidParams, op, "empty name"))
		} else if names[c.Name] {
			errs = append(errs, errcode.New(errcode.DuplicateName, op, ""))
		}
		names[c.Name] = true

		var pins, borrowed []pinRole
		ctrl := -1
		switch v := c.Iface.(type) {
		case *SDIO:
			pins = v.pins()
			if !v.PIO.Valid() || !b.HasPIO(v.PIO) {
				errs = append(errs, errcode.New(errcode.UnknownUnit, op, v.PIO.String()))
			} else {
				sdioPerPIO[v.PIO]++
				if sdioPerPIO[v.PIO] > SDIOPerPIO {
					errs = append(errs, errcode.New(errcode.UnitInUse, op, v.PIO.String()+" has no free state machines"))
				}
			}
			if v.D1 != v.D0+1 || v.D2 != v.D0+2 || v.D3 != v.D0+3 {
				errs = append(errs, errcode.New(errcode.InvalidPins, op, "d0..d3 must be consecutive"))
			}
			errs = appendErr(errs, checkDrive(op, "sdio", v.SetDriveStrength, v.Drive))
			errs = appendErr(errs, checkIRQ(op, b, v.DMAIRQ))
			if v.ISR == nil {
				errs = append(errs, errcode.New(errcode.MissingISR, op, v.DMAIRQ.String()))
			}
		case *SPISlot:
			pins = []pinRole{{roleSS, v.SS}}
			if v.SPI < 0 || v.SPI >= len(ctrls) {
				errs = append(errs, errcode.New(errcode.UnknownController, op, "controller "+strconv.Itoa(v.SPI)))
			} else {
				// The card's electrical descriptor includes the bus it sits on.
				ctrl = v.SPI
				borrowed = ctrls[v.SPI].pins()
				k := csKey{v.SPI, v.SS}
				if prev, dup := chipSelects[k]; dup {
					errs = append(errs, errcode.New(errcode.ChipSelectInUse, op, "ss gpio "+strconv.Itoa(v.SS)+" already selects card "+strconv.Quote(prev)))
				} else {
					chipSelects[k] = c.Name
				}
			}
			errs = appendErr(errs, checkDrive(op, "ss", v.SetDriveStrength, v.SSDrive))
		default:
			errs = append(errs, errcode.New(errcode.InvalidMode, op, "no interface"))
		}
		if c.Detect.Enabled {
			pins = append(pins, pinRole{"card detect", c.Detect.GPIO})
		}
		errs = append(errs, checkPins(op, b, borrowed, pins)...)
		errs = append(errs, claimPins(owners, b, len(ctrls)+i, ctrl, op, pins)...)
	}
	return errs
}
