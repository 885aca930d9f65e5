//go:build pico && sd_dual_slot

package setups

// SelectedPlan is the topology compiled into this firmware.
var SelectedPlan = DualSlot()
