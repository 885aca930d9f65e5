package hwconfig

import (
	"errors"
	"testing"

	"sdhw-go/errcode"
	"sdhw-go/hwconfig/boards"
	"sdhw-go/types"
)

func nopCtrlISR(*Controller) {}
func nopCardISR(*Card)       {}

func testController() Controller {
	return Controller{
		Unit: types.SPI1, MISO: 12, MOSI: 15, SCK: 14,
		Baud: 25_000_000, DMAIRQ: types.DMAIRQ1, ISR: nopCtrlISR,
	}
}

func testSDIO() *SDIO {
	return &SDIO{
		CLK: 17, CMD: 18, D0: 19, D1: 20, D2: 21, D3: 22,
		PIO: types.PIO1, DMAIRQ: types.DMAIRQ1, ISR: nopCardISR,
	}
}

func testPlan() Plan {
	return Plan{
		Board:       boards.RP2040,
		Controllers: []Controller{testController()},
		Cards: []Card{
			{Name: "0:", Iface: testSDIO(), Detect: CardDetect{Enabled: true, GPIO: 16, PresentLevel: types.High}},
			{Name: "1:", Iface: &SPISlot{SPI: 0, SS: 9}, Detect: CardDetect{Enabled: true, GPIO: 13, PresentLevel: types.High}},
		},
	}
}

func mustNew(t *testing.T, p Plan) *Registry {
	t.Helper()
	r, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestLookupScenario(t *testing.T) {
	r := mustNew(t, testPlan())

	if r.ControllerCount() != 1 || r.CardCount() != 2 {
		t.Fatalf("counts = %d/%d", r.ControllerCount(), r.CardCount())
	}
	c0, err := r.Card(0)
	if err != nil || c0.Name != "0:" || c0.Mode() != ModeSDIO {
		t.Fatalf("card 0 = %+v, %v", c0, err)
	}
	c1, err := r.Card(1)
	if err != nil || c1.Mode() != ModeSPI {
		t.Fatalf("card 1 = %+v, %v", c1, err)
	}
	ctrl, err := r.Controller(0)
	if err != nil {
		t.Fatalf("controller 0: %v", err)
	}
	slot, ok := c1.SPI()
	if !ok || slot.Controller() != ctrl {
		t.Fatal("card 1 does not borrow controller 0")
	}
}

func TestLookupUpperBoundIsExclusive(t *testing.T) {
	r := mustNew(t, testPlan())

	for _, i := range []int{-1, r.CardCount(), r.CardCount() + 1, 1 << 20} {
		if c, err := r.Card(i); c != nil || !errors.Is(err, errcode.NotFound) {
			t.Fatalf("Card(%d) = %v, %v; want NotFound", i, c, err)
		}
	}
	// The controller bound is the controller count, not the card count.
	for _, i := range []int{-1, r.ControllerCount(), r.CardCount()} {
		if c, err := r.Controller(i); c != nil || !errors.Is(err, errcode.NotFound) {
			t.Fatalf("Controller(%d) = %v, %v; want NotFound", i, c, err)
		}
	}
}

func TestFindCardRoundTrip(t *testing.T) {
	r := mustNew(t, testPlan())

	for i := 0; i < r.CardCount(); i++ {
		byIdx, _ := r.Card(i)
		byName, err := r.FindCard(byIdx.Name)
		if err != nil || byName != byIdx {
			t.Fatalf("FindCard(%q) = %p, %v; want %p", byIdx.Name, byName, err, byIdx)
		}
		if idx, err := r.CardIndex(byName); err != nil || idx != i {
			t.Fatalf("CardIndex = %d, %v; want %d", idx, err, i)
		}
	}
	for _, name := range []string{"", "2:", "0", " 0:", "SD"} {
		if _, err := r.FindCard(name); !errors.Is(err, errcode.NotFound) {
			t.Fatalf("FindCard(%q) err = %v; want NotFound", name, err)
		}
	}
	if _, err := r.CardIndex(&Card{Name: "0:"}); !errors.Is(err, errcode.NotFound) {
		t.Fatal("CardIndex of a foreign card should be NotFound")
	}
}

func TestRegistryOwnsItsDescriptors(t *testing.T) {
	p := testPlan()
	r := mustNew(t, p)

	// Mutating the literal after New must not reach the registry.
	p.Controllers[0].MISO = 3
	p.Cards[1].Iface.(*SPISlot).SS = 5
	p.Cards[0].Name = "x:"

	ctrl, _ := r.Controller(0)
	if ctrl.MISO != 12 {
		t.Fatalf("controller aliased plan: MISO=%d", ctrl.MISO)
	}
	c1, _ := r.Card(1)
	if s, _ := c1.SPI(); s.SS != 9 {
		t.Fatalf("slot aliased plan: SS=%d", s.SS)
	}
	if _, err := r.FindCard("0:"); err != nil {
		t.Fatal("card name aliased plan")
	}
	if idx, err := r.ControllerIndex(ctrl); err != nil || idx != 0 {
		t.Fatalf("ControllerIndex = %d, %v", idx, err)
	}
}

func TestSlotWiringFixedAtNew(t *testing.T) {
	r := mustNew(t, testPlan())
	ctrl, _ := r.Controller(0)
	c1, _ := r.Card(1)
	s, _ := c1.SPI()

	s.SPI = 7
	if s.Controller() != ctrl || s.ControllerIndex() != 0 {
		t.Fatalf("slot rewired by SPI edit: ctrl=%p index=%d", s.Controller(), s.ControllerIndex())
	}
	if idx, err := r.ControllerIndex(s.Controller()); err != nil || idx != s.ControllerIndex() {
		t.Fatalf("ControllerIndex = %d, %v; slot says %d", idx, err, s.ControllerIndex())
	}
	if (&SPISlot{SPI: 0, SS: 9}).ControllerIndex() != -1 {
		t.Fatal("unresolved slot should report index -1")
	}
}

func TestEveryCardIsIndividuallyValid(t *testing.T) {
	r := mustNew(t, testPlan())
	b := r.Board()
	cs := map[*Controller]map[int]bool{}

	for i := 0; i < r.CardCount(); i++ {
		c, _ := r.Card(i)
		switch v := c.Iface.(type) {
		case *SDIO:
			for _, p := range v.pins() {
				if !b.GPIOValid(p.gpio) {
					t.Fatalf("card %q %s out of range", c.Name, p.role)
				}
			}
		case *SPISlot:
			ctrl := v.Controller()
			idx, err := r.ControllerIndex(ctrl)
			if err != nil || idx < 0 || idx >= r.ControllerCount() {
				t.Fatalf("card %q controller unresolved", c.Name)
			}
			if cs[ctrl] == nil {
				cs[ctrl] = map[int]bool{}
			}
			if cs[ctrl][v.SS] {
				t.Fatalf("chip select %d shared on one controller", v.SS)
			}
			cs[ctrl][v.SS] = true
		default:
			t.Fatalf("card %q has no interface", c.Name)
		}
	}
}

func TestEmptyPlan(t *testing.T) {
	r := mustNew(t, Plan{Board: boards.RP2040})
	if r.ControllerCount() != 0 || r.CardCount() != 0 {
		t.Fatal("empty plan should have no descriptors")
	}
	if _, err := r.Card(0); !errors.Is(err, errcode.NotFound) {
		t.Fatal("Card(0) on empty registry should be NotFound")
	}
	if _, err := r.Controller(0); !errors.Is(err, errcode.NotFound) {
		t.Fatal("Controller(0) on empty registry should be NotFound")
	}
}

func TestMustNewPanicsOnBadTopology(t *testing.T) {
	p := testPlan()
	p.Cards[1].Name = "0:"
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate name")
		}
	}()
	MustNew(p)
}

func TestCardDetectPresent(t *testing.T) {
	cases := []struct {
		d    CardDetect
		raw  bool
		want bool
	}{
		{CardDetect{Enabled: false}, false, true},
		{CardDetect{Enabled: true, PresentLevel: types.High}, true, true},
		{CardDetect{Enabled: true, PresentLevel: types.High}, false, false},
		{CardDetect{Enabled: true, PresentLevel: types.Low}, false, true},
		{CardDetect{Enabled: true, PresentLevel: types.Low}, true, false},
	}
	for i, tc := range cases {
		if got := tc.d.Present(tc.raw); got != tc.want {
			t.Fatalf("case %d: Present(%v) = %v", i, tc.raw, got)
		}
	}
}
