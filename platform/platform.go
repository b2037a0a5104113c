// Package platform abstracts the board: GPIO pins, the buzzer PWM, the
// status LED and the serial port. The rp2 implementation talks to machine
// registers; the host implementation is a simulator used by tests and the
// pomodoro-sim REPL.
package platform

import "context"

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is a single GPIO line. All methods are non-blocking register access.
type Pin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by the board numbering scheme.
type PinFactory interface {
	ByNumber(n int) (Pin, bool)
}

// Buzzer is the single-voice PWM tone output: frequency = pitch, 50% duty
// while sounding.
type Buzzer interface {
	SetTone(hz uint16)
	Silence()
}

// StatusLED is the mode indicator light.
type StatusLED interface {
	SetColor(r, g, b uint8)
}

// SerialPort is the jingle-customization UART.
type SerialPort interface {
	Write(b []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// PinMap fixes the kit wiring. Buttons are wired with pull-ups (read low
// when pressed); jumpers with pull-downs (read high when fitted).
type PinMap struct {
	Buzzer       int
	LED          int
	Segments     [8]int // a..g + dp
	DigitCommons [4]int
	BtnUp        int
	BtnDown      int
	BtnConfirm   int
	BtnReset     int
	Jumpers      [3]int // JP1..JP3
}

// DefaultPinMap matches the Pomodoro kit PCB.
var DefaultPinMap = PinMap{
	Buzzer:       0,
	LED:          1,
	Segments:     [8]int{2, 3, 4, 5, 6, 7, 8, 9},
	DigitCommons: [4]int{10, 11, 12, 13},
	BtnUp:        15,
	BtnDown:      16,
	BtnConfirm:   14,
	BtnReset:     23,
	Jumpers:      [3]int{20, 19, 18},
}

// Board bundles the configured peripherals for the app.
type Board struct {
	Map    PinMap
	Pins   PinFactory
	Buzzer Buzzer
	LED    StatusLED
	Serial SerialPort // nil when the port is unavailable
}

// ReadJingleSlot samples the jumpers once. The first fitted jumper wins
// (JP1 -> slot 1); no jumper selects slot 0.
func ReadJingleSlot(b *Board) int {
	for i, n := range b.Map.Jumpers {
		p, ok := b.Pins.ByNumber(n)
		if !ok {
			continue
		}
		_ = p.ConfigureInput(PullDown)
		if p.Get() {
			return i + 1
		}
	}
	return 0
}
