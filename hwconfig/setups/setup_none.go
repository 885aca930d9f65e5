//go:build !(pico && sd_dual_slot)

package setups

import (
	"sdhw-go/hwconfig"
	"sdhw-go/hwconfig/boards"
)

// SelectedPlan is empty when no setup tag is given: no cards, no vectors.
var SelectedPlan = hwconfig.Plan{Board: boards.RP2040}
