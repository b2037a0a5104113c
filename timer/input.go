// timer/input.go
package timer

// Logical button indices. The physical mapping (kit wiring, active low):
//
//	up      GP15  Config: +5 min on the focused field
//	down    GP16  Config: -5 min; Study/Rest: manual mode toggle
//	confirm GP14  Config: advance focus/confirm; Study/Rest: pause toggle
//	reset   GP23  any mode: back to Config with defaults
const (
	BtnUp = iota
	BtnDown
	BtnConfirm
	BtnReset
	numButtons
)

var buttonNames = [numButtons]string{"up", "down", "confirm", "reset"}

// ButtonName returns the wire spelling for a button index.
func ButtonName(i int) string {
	if i < 0 || i >= numButtons {
		return "unknown"
	}
	return buttonNames[i]
}

// Buttons holds one logical level per button, true = pressed.
type Buttons [numButtons]bool

// Debouncer filters raw per-tick samples: a level change must persist for
// a minimum number of consecutive ticks before it is accepted.
type Debouncer struct {
	need  int
	state Buttons
	count [numButtons]int
}

func NewDebouncer(needTicks int) *Debouncer {
	if needTicks < 1 {
		needTicks = 1
	}
	return &Debouncer{need: needTicks}
}

// Update feeds one raw sample and returns the debounced levels plus the
// rising edges (presses) accepted this tick.
func (d *Debouncer) Update(raw Buttons) (state, pressed Buttons) {
	for i := 0; i < numButtons; i++ {
		if raw[i] == d.state[i] {
			d.count[i] = 0
			continue
		}
		d.count[i]++
		if d.count[i] >= d.need {
			d.count[i] = 0
			d.state[i] = raw[i]
			if raw[i] {
				pressed[i] = true
			}
		}
	}
	return d.state, pressed
}

// State returns the current debounced levels.
func (d *Debouncer) State() Buttons { return d.state }
