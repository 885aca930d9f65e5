package hwconfig

import (
	"errors"
	"testing"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig/boards"
	"sdhw-go/types"
)

func TestDispatchForwardsOwningInstance(t *testing.T) {
	var gotCtrl []*Controller
	var gotCard []*Card

	p := testPlan()
	p.Controllers[0].ISR = func(c *Controller) { gotCtrl = append(gotCtrl, c) }
	s := testSDIO()
	s.ISR = func(c *Card) { gotCard = append(gotCard, c) }
	p.Cards[0].Iface = s

	r := mustNew(t, p)
	d := r.Dispatcher()

	if d.Bound(types.DMAIRQ1) != 2 || d.Bound(types.DMAIRQ0) != 0 {
		t.Fatalf("bound = %d/%d", d.Bound(types.DMAIRQ0), d.Bound(types.DMAIRQ1))
	}

	d.Fire(types.DMAIRQ1)

	ctrl, _ := r.Controller(0)
	card, _ := r.Card(0)
	if len(gotCtrl) != 1 || gotCtrl[0] != ctrl {
		t.Fatalf("controller ISR got %v; want registry-owned %p", gotCtrl, ctrl)
	}
	if len(gotCard) != 1 || gotCard[0] != card {
		t.Fatalf("card ISR got %v; want registry-owned %p", gotCard, card)
	}
	if d.Spurious() != 0 {
		t.Fatalf("spurious = %d", d.Spurious())
	}
}

func TestDispatchSpurious(t *testing.T) {
	r := mustNew(t, testPlan())
	d := r.Dispatcher()

	d.Fire(types.DMAIRQ0)
	d.Fire(types.DMAIRQ(9))
	if d.Spurious() != 2 {
		t.Fatalf("spurious = %d; want 2", d.Spurious())
	}
	if d.Bound(types.DMAIRQ(9)) != 0 {
		t.Fatal("invalid line should report zero bound")
	}
}

func TestDispatchLineCapacity(t *testing.T) {
	var d Dispatcher
	c := testController()
	for i := 0; i < MaxISRsPerLine; i++ {
		if err := d.bindController("c", &c); err != nil {
			t.Fatalf("bind %d: %v", i, err)
		}
	}
	if err := d.bindController("c", &c); !errors.Is(err, errcode.IRQTableFull) {
		t.Fatalf("err = %v; want irq_table_full", err)
	}
}

func TestNewRejectsOverfullLine(t *testing.T) {
	// One controller plus four SDIO cards, two per PIO block, all on DMA_IRQ_1.
	p := Plan{Board: boards.RP2040, Controllers: []Controller{testController()}}
	buses := []struct {
		clk, cmd, d0 int
		pio          types.PIOUnit
	}{
		{0, 1, 2, types.PIO0},
		{6, 7, 8, types.PIO0},
		{16, 17, 18, types.PIO1},
		{22, 23, 24, types.PIO1},
	}
	for i, b := range buses {
		s := testSDIO()
		s.CLK, s.CMD, s.PIO = b.clk, b.cmd, b.pio
		s.D0, s.D1, s.D2, s.D3 = b.d0, b.d0+1, b.d0+2, b.d0+3
		p.Cards = append(p.Cards, Card{Name: string(rune('a'+i)) + ":", Iface: s})
	}
	_, err := New(p)
	if !errors.Is(err, errcode.IRQTableFull) {
		t.Fatalf("err = %v; want irq_table_full", err)
	}
	if errors.Is(err, errcode.PinInUse) || errors.Is(err, errcode.UnitInUse) {
		t.Fatalf("topology should only overfill the line: %v", err)
	}
}

func TestDispatchDoesNotAllocate(t *testing.T) {
	r := mustNew(t, testPlan())
	d := r.Dispatcher()
	allocs := testing.AllocsPerRun(100, func() { d.Fire(types.DMAIRQ1) })
	if allocs != 0 {
		t.Fatalf("Fire allocated %.1f times", allocs)
	}
}
