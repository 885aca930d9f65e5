package setups

import (
	"errors"
	"testing"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig"
	"sdhw-go/sdbus"
	"sdhw-go/types"
)

// Every compiled-in topology must pass validation; this is the build-time
// guard for the literal tables.
func TestSetupsValidate(t *testing.T) {
	for name, p := range map[string]hwconfig.Plan{
		"dual_slot": DualSlot(),
		"selected":  SelectedPlan,
	} {
		if _, err := hwconfig.New(p); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestDualSlotScenario(t *testing.T) {
	r := hwconfig.MustNew(DualSlot())

	if r.ControllerCount() != 1 {
		t.Fatalf("ControllerCount = %d; want 1", r.ControllerCount())
	}
	if r.CardCount() != 2 {
		t.Fatalf("CardCount = %d; want 2", r.CardCount())
	}
	c0, err := r.Card(0)
	if err != nil || c0.Name != "0:" {
		t.Fatalf("Card(0) = %v, %v", c0, err)
	}
	c1, err := r.Card(1)
	if err != nil || c1.Mode() != hwconfig.ModeSPI {
		t.Fatalf("Card(1) = %v, %v", c1, err)
	}
	ctrl, _ := r.Controller(0)
	if s, _ := c1.SPI(); s.Controller() != ctrl || s.SS != 9 {
		t.Fatal("card 1 should select GP9 on controller 0")
	}
	if _, err := r.Card(2); !errors.Is(err, errcode.NotFound) {
		t.Fatalf("Card(2) err = %v; want NotFound", err)
	}
	if ctrl.AchievedBaud(125_000_000) != 20_833_333 {
		t.Fatalf("achieved baud = %d", ctrl.AchievedBaud(125_000_000))
	}
}

func TestDualSlotSharedLineReachesBothOwners(t *testing.T) {
	r := hwconfig.MustNew(DualSlot())
	d := r.Dispatcher()
	if d.Bound(types.DMAIRQ1) != 2 {
		t.Fatalf("DMA_IRQ_1 bound = %d; want 2", d.Bound(types.DMAIRQ1))
	}

	sdioCard, _ := r.FindCard("0:")
	spiCard, _ := r.FindCard("1:")
	sdbus.Begin(sdioCard)
	sdbus.Begin(spiCard)
	if sdbus.Done(sdioCard) || sdbus.Done(spiCard) {
		t.Fatal("armed transfers should be pending")
	}

	d.Fire(types.DMAIRQ1)

	if !sdbus.Done(sdioCard) || !sdbus.Done(spiCard) {
		t.Fatal("one DMA_IRQ_1 activation should complete both transfers")
	}
}
