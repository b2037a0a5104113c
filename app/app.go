// Package app runs the cooperative main loop. Each tick, in fixed order:
// sample inputs, advance the timer state machine, advance tone playback,
// refresh one display digit. Nothing in the loop blocks, so a transition is
// reflected in the display value and the started jingle within one tick.
package app

import (
	"context"
	"time"

	"pomodoro-go/bus"
	"pomodoro-go/display"
	"pomodoro-go/errcode"
	"pomodoro-go/melody"
	"pomodoro-go/platform"
	"pomodoro-go/timer"
	"pomodoro-go/tone"
	"pomodoro-go/types"
	"pomodoro-go/x/timex"
)

type Config struct {
	TickMs        int // cooperative tick period
	DebounceTicks int // consecutive ticks to accept a button edge
	Timer         timer.Config
}

func (c Config) withDefaults() Config {
	if c.TickMs <= 0 {
		c.TickMs = 2
	}
	if c.DebounceTicks <= 0 {
		c.DebounceTicks = 8
	}
	return c
}

// App wires the four core components to the board and the bus.
type App struct {
	cfg   Config
	conn  *bus.Connection
	board *platform.Board

	jingles *melody.Table
	sched   *tone.Scheduler
	mux     *display.Multiplexer
	sm      *timer.Machine
	deb     *timer.Debouncer

	btns [4]platform.Pin
}

func New(cfg Config, board *platform.Board, conn *bus.Connection) *App {
	cfg = cfg.withDefaults()

	a := &App{
		cfg:     cfg,
		conn:    conn,
		board:   board,
		jingles: melody.DefaultTable(),
		deb:     timer.NewDebouncer(cfg.DebounceTicks),
	}

	var segs [8]display.OutputPin
	for i, n := range board.Map.Segments {
		segs[i] = a.outputPin(n, false)
	}
	var commons [display.Digits]display.OutputPin
	for i, n := range board.Map.DigitCommons {
		commons[i] = a.outputPin(n, true) // active low, deselected
	}
	a.mux = display.NewMultiplexer(display.NewPinDriver(segs, commons))

	buzzer := board.Buzzer
	if buzzer == nil {
		buzzer = nopBuzzer{}
	}
	a.sched = tone.NewScheduler(buzzer)

	a.sm = timer.New(cfg.Timer, a.jingles, a.sched, a.mux, board.LED)
	a.sm.OnEvent(a.publishEvent)

	for i, n := range [4]int{board.Map.BtnUp, board.Map.BtnDown, board.Map.BtnConfirm, board.Map.BtnReset} {
		a.btns[i] = a.inputPin(n, platform.PullUp)
	}

	return a
}

// Boot enters Config mode and publishes the initial state.
func (a *App) Boot() {
	a.sm.Boot()
	a.publishState()
}

// Run drives the loop until the context is cancelled.
func (a *App) Run(ctx context.Context) {
	sub := a.conn.Subscribe(bus.T("jingle", "+", "+"))
	defer a.conn.Unsubscribe(sub)

	a.Boot()

	step := uint32(a.cfg.TickMs)
	tick := time.NewTicker(time.Duration(a.cfg.TickMs) * time.Millisecond)
	defer tick.Stop()

	lastRemaining := a.sm.Remaining()
	for {
		select {
		case <-ctx.Done():
			a.sched.Stop()
			return
		case msg := <-sub.Channel():
			if j, ok := msg.Payload.(types.JingleText); ok {
				_ = a.ApplyJingle(j)
			}
		case <-tick.C:
			a.Step(step)
			if r := a.sm.Remaining(); r != lastRemaining {
				lastRemaining = r
				a.publishState()
			}
		}
	}
}

// Step is one cooperative tick. Exposed for tests and the simulator, which
// drive virtual time instead of a ticker.
func (a *App) Step(stepMs uint32) {
	var raw timer.Buttons
	for i, p := range a.btns {
		raw[i] = !p.Get() // active low
	}
	_, pressed := a.deb.Update(raw)
	for i := range pressed {
		if pressed[i] {
			a.conn.Publish(a.conn.NewMessage(
				bus.T("timer", "button", timer.ButtonName(i)),
				types.ButtonEvent{Button: timer.ButtonName(i), Pressed: true, TSms: timex.NowMs()},
				false,
			))
		}
	}

	a.sm.Tick(stepMs, pressed)
	a.sched.Tick(stepMs)
	a.mux.Tick()
}

// ApplyJingle re-decodes customized melody text into the jingle table.
// Decode failure keeps the previous melody; losing a jingle is cosmetic.
func (a *App) ApplyJingle(j types.JingleText) error {
	cue, err := melody.ParseCue(j.Cue)
	if err != nil {
		return err
	}
	m, err := melody.Decode(j.Text)
	if err != nil {
		a.conn.Publish(a.conn.NewMessage(
			bus.T("timer", "event", "jingle_error"),
			string(errcode.Of(err)),
			false,
		))
		return err
	}
	return a.jingles.Set(j.Slot, cue, m)
}

// Machine exposes the state machine for tests and the simulator.
func (a *App) Machine() *timer.Machine { return a.sm }

// Display exposes the multiplexer for tests and the simulator.
func (a *App) Display() *display.Multiplexer { return a.mux }

func (a *App) publishEvent(name string) {
	a.conn.Publish(a.conn.NewMessage(bus.T("timer", "event", name), a.sm.Snapshot(), false))
	a.publishState()
}

func (a *App) publishState() {
	a.conn.Publish(a.conn.NewMessage(bus.T("timer", "state"), a.sm.Snapshot(), true))
}

func (a *App) outputPin(n int, initial bool) platform.Pin {
	p, ok := a.board.Pins.ByNumber(n)
	if !ok {
		println("[app] no pin", n)
		return nopPin{}
	}
	_ = p.ConfigureOutput(initial)
	return p
}

func (a *App) inputPin(n int, pull platform.Pull) platform.Pin {
	p, ok := a.board.Pins.ByNumber(n)
	if !ok {
		println("[app] no pin", n)
		return nopPin{}
	}
	_ = p.ConfigureInput(pull)
	return p
}

// ---- inert fallbacks so a missing peripheral never nils the loop ----

type nopBuzzer struct{}

func (nopBuzzer) SetTone(uint16) {}
func (nopBuzzer) Silence()       {}

type nopPin struct{}

func (nopPin) ConfigureInput(platform.Pull) error { return nil }
func (nopPin) ConfigureOutput(bool) error         { return nil }
func (nopPin) Set(bool)                           {}
func (nopPin) Get() bool                          { return true }
func (nopPin) Number() int                        { return -1 }
