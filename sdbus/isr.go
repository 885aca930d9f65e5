// Package sdbus holds the transfer-layer entry points that SD descriptors
// name as their DMA completion handlers. The transfer protocols themselves
// live elsewhere; this package only arms and acknowledges transfers.
package sdbus

import "sdhw-go/hwconfig"

// SPIDMAComplete acknowledges a DMA completion for a shared SPI controller.
// Runs in interrupt context.
func SPIDMAComplete(c *hwconfig.Controller) {
	if c == nil {
		return
	}
	c.Xfer.Complete()
}

// SDIODMAComplete acknowledges a DMA completion for a direct-mode card.
// Runs in interrupt context.
func SDIODMAComplete(card *hwconfig.Card) {
	if card == nil {
		return
	}
	if s, ok := card.SDIO(); ok {
		s.Xfer.Complete()
	}
}

// Begin arms the transfer state that the card's completion will clear. For a
// shared-bus card that is the state of its controller.
func Begin(card *hwconfig.Card) {
	if x := state(card); x != nil {
		x.Arm()
	}
}

// Done reports whether the last transfer armed with Begin has completed.
func Done(card *hwconfig.Card) bool {
	x := state(card)
	return x == nil || !x.Pending()
}

func state(card *hwconfig.Card) *hwconfig.TransferState {
	switch v := card.Iface.(type) {
	case *hwconfig.SDIO:
		return &v.Xfer
	case *hwconfig.SPISlot:
		if c := v.Controller(); c != nil {
			return &c.Xfer
		}
	}
	return nil
}
