package widget

import "os"

// noRichEnv disables the rich implementation globally, whatever the
// per-slot config says.
const noRichEnv = "DUALINPUT_NO_RICH"

// Probe resolves whether a slot's rich implementation is usable. Resolution
// happens once per mount; the result is reported to the coordinator, which
// owns the tri-state record.
type Probe struct {
	forced map[string]bool
}

// NewProbe takes the slot ids forced onto the fallback path.
func NewProbe(forceFallback []string) *Probe {
	forced := make(map[string]bool, len(forceFallback))
	for _, id := range forceFallback {
		forced[id] = true
	}
	return &Probe{forced: forced}
}

// RichAvailable reports whether slotID may mount the rich input.
func (p *Probe) RichAvailable(slotID string) bool {
	if os.Getenv(noRichEnv) != "" {
		return false
	}
	return !p.forced[slotID]
}
