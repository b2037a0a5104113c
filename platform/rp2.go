// platform/rp2.go
//go:build rp2040 || rp2350

package platform

import (
	"context"
	"image/color"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	dtone "tinygo.org/x/drivers/tone"
	"tinygo.org/x/drivers/ws2812"

	"pomodoro-go/x/timex"
)

// NewBoard configures the kit peripherals on RP2 family boards.
func NewBoard(pm PinMap) *Board {
	b := &Board{Map: pm, Pins: rp2PinFactory{}}

	// Buzzer on GP0: PWM slice 0 on both RP2040 and RP2350.
	spk, err := dtone.New(machine.PWM0, machine.Pin(pm.Buzzer))
	if err != nil {
		println("[platform] buzzer pwm init failed:", err.Error())
	} else {
		b.Buzzer = &rp2Buzzer{spk: spk}
	}

	ledPin := machine.Pin(pm.LED)
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.LED = &rp2LED{ws: ws2812.New(ledPin)}

	// Jingle customization port on the default UART0 pins.
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	b.Serial = &rp2Serial{u: u}

	return b
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (Pin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- Buzzer ----

type rp2Buzzer struct {
	spk dtone.Speaker
}

func (b *rp2Buzzer) SetTone(hz uint16) {
	_ = b.spk.SetPeriod(timex.PeriodFromHz(uint32(hz)))
}

func (b *rp2Buzzer) Silence() { b.spk.Stop() }

// ---- Status LED ----

type rp2LED struct {
	ws  ws2812.Device
	buf [1]color.RGBA
}

// brightness scale: the raw LED is blinding at full drive.
func scale(c uint8) uint8 { return uint8(uint16(c) * 77 >> 8) }

func (l *rp2LED) SetColor(r, g, b uint8) {
	l.buf[0] = color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: 255}
	_ = l.ws.WriteColors(l.buf[:])
}

// ---- Serial ----

type rp2Serial struct {
	u *uartx.UART
}

func (p *rp2Serial) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2Serial) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, buf)
}
