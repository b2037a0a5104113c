// Package timer owns the countdown/mode state machine: Config, Study and
// Rest, button handling, and the drift-free per-second countdown.
package timer

import (
	"pomodoro-go/melody"
	"pomodoro-go/types"
	"pomodoro-go/x/mathx"
	"pomodoro-go/x/timex"
)

// Jingler is the tone scheduler surface the machine drives.
type Jingler interface {
	Start(m melody.Melody)
	IsPlaying() bool
}

// Display receives complete character frames; the multiplexer owns how they
// reach the hardware.
type Display interface {
	SetText(text string)
}

// LED is the status light (WS2812 on the kit).
type LED interface {
	SetColor(r, g, b uint8)
}

// Config carries the boot-time settings. Zero fields fall back to the kit
// defaults (25/5 minutes, 5-minute steps, clamp at 95).
type Config struct {
	StudyMinutes int
	RestMinutes  int
	StepMinutes  int
	MaxMinutes   int
	BlinkMs      uint32
	JingleSlot   int // fixed from jumpers at boot, immutable afterwards
}

func (c Config) withDefaults() Config {
	if c.StudyMinutes == 0 {
		c.StudyMinutes = 25
	}
	if c.RestMinutes == 0 {
		c.RestMinutes = 5
	}
	if c.StepMinutes == 0 {
		c.StepMinutes = 5
	}
	if c.MaxMinutes == 0 {
		c.MaxMinutes = 95
	}
	if c.BlinkMs == 0 {
		c.BlinkMs = 500
	}
	return c
}

// Status LED colors (logical RGB).
var (
	colorBoot       = [3]uint8{91, 35, 121} // Soldered purple
	colorStudy      = [3]uint8{255, 0, 0}
	colorRest       = [3]uint8{0, 255, 0}
	colorLastMinute = [3]uint8{255, 255, 0}
)

// Machine is the timer state machine. All state is exclusively owned; the
// surrounding loop passes control in via Tick once per tick.
type Machine struct {
	cfg     Config
	jingles *melody.Table
	player  Jingler
	disp    Display
	led     LED

	mode   types.Mode
	paused bool
	focus  int // Config: 0 = study field, 1 = rest field

	studyMin, restMin int
	remaining         int // seconds, [0, max(study,rest)*60]

	accMs   uint32 // drift-free countdown accumulator
	blinkMs uint32

	lastFrame [4]byte
	haveFrame bool

	onEvent func(name string)
}

func New(cfg Config, jingles *melody.Table, player Jingler, disp Display, led LED) *Machine {
	return &Machine{
		cfg:     cfg.withDefaults(),
		jingles: jingles,
		player:  player,
		disp:    disp,
		led:     led,
	}
}

// OnEvent registers a transition hook (bus publication lives in the app).
func (m *Machine) OnEvent(fn func(name string)) { m.onEvent = fn }

func (m *Machine) emit(name string) {
	if m.onEvent != nil {
		m.onEvent(name)
	}
}

// Boot enters Config with the configured defaults and plays the boot
// jingle. Also serves the reset button.
func (m *Machine) Boot() {
	m.mode = types.ModeConfig
	m.paused = false
	m.focus = 0
	m.studyMin = m.cfg.StudyMinutes
	m.restMin = m.cfg.RestMinutes
	m.remaining = 0
	m.blinkMs = 0
	m.haveFrame = false
	m.setColor(colorBoot)
	m.player.Start(m.jingles.Get(m.cfg.JingleSlot, melody.CueBoot))
	m.render(true)
	m.emit("config")
}

// Tick advances the machine by stepMs with this tick's accepted presses.
func (m *Machine) Tick(stepMs uint32, pressed Buttons) {
	period := 2 * m.cfg.BlinkMs
	m.blinkMs = (m.blinkMs + stepMs) % period
	blinkOn := m.blinkMs < m.cfg.BlinkMs

	switch m.mode {
	case types.ModeConfig:
		m.tickConfig(pressed)
	default:
		m.tickCountdown(stepMs, pressed)
	}
	m.render(blinkOn)
}

func (m *Machine) tickConfig(pressed Buttons) {
	if pressed[BtnReset] {
		m.Boot()
		return
	}
	step := m.cfg.StepMinutes
	if pressed[BtnUp] {
		m.adjustFocused(step)
	}
	if pressed[BtnDown] {
		m.adjustFocused(-step)
	}
	if pressed[BtnConfirm] {
		m.focus++
		if m.focus >= 2 {
			m.enter(types.ModeStudy)
		}
	}
}

func (m *Machine) adjustFocused(delta int) {
	if m.focus == 0 {
		m.studyMin = mathx.Clamp(m.studyMin+delta, 0, m.cfg.MaxMinutes)
	} else {
		m.restMin = mathx.Clamp(m.restMin+delta, 0, m.cfg.MaxMinutes)
	}
}

func (m *Machine) tickCountdown(stepMs uint32, pressed Buttons) {
	if pressed[BtnReset] {
		m.Boot()
		return
	}
	if pressed[BtnConfirm] {
		m.paused = !m.paused
		if m.paused {
			m.emit("paused")
		} else {
			m.emit("resumed")
		}
	}
	if pressed[BtnDown] {
		// Manual mode toggle short-circuits the countdown.
		if m.mode == types.ModeStudy {
			m.enter(types.ModeRest)
		} else {
			m.enter(types.ModeStudy)
		}
		return
	}

	// Steady-state countdown starts once the entry jingle has finished.
	if m.paused || m.player.IsPlaying() {
		return
	}
	m.accMs += stepMs
	for m.accMs >= 1000 {
		m.accMs -= 1000
		if m.remaining > 0 {
			m.remaining--
		}
		if m.remaining == 60 {
			m.setColor(colorLastMinute)
		}
		if m.remaining == 0 {
			if m.mode == types.ModeStudy {
				m.enter(types.ModeRest)
			} else {
				m.enter(types.ModeStudy)
			}
			return
		}
	}
}

// enter performs a mode transition: reset the countdown to the new phase's
// total, start that phase's jingle and recolor the LED. The new display
// value is rendered in the same tick by the caller.
func (m *Machine) enter(mode types.Mode) {
	m.mode = mode
	m.paused = false
	m.haveFrame = false
	switch mode {
	case types.ModeStudy:
		m.remaining = m.studyMin * 60
		m.setColor(colorStudy)
		m.player.Start(m.jingles.Get(m.cfg.JingleSlot, melody.CueStudy))
		m.emit("study")
	case types.ModeRest:
		m.remaining = m.restMin * 60
		m.setColor(colorRest)
		m.player.Start(m.jingles.Get(m.cfg.JingleSlot, melody.CueRest))
		m.emit("rest")
	}
}

func (m *Machine) setColor(c [3]uint8) {
	if m.led != nil {
		m.led.SetColor(c[0], c[1], c[2])
	}
}

// render pushes the current frame to the display buffer, but only when it
// changed since the last tick.
func (m *Machine) render(blinkOn bool) {
	var f [4]byte
	switch m.mode {
	case types.ModeConfig:
		f[0], f[1] = twoDigits(m.studyMin)
		f[2], f[3] = twoDigits(m.restMin)
		// The focused field blinks to show where the next press lands.
		if !blinkOn {
			if m.focus == 0 {
				f[0], f[1] = ' ', ' '
			} else {
				f[2], f[3] = ' ', ' '
			}
		}
	default:
		f[0], f[1] = twoDigits(m.remaining / 60)
		f[2], f[3] = twoDigits(m.remaining % 60)
		if m.paused && !blinkOn {
			f = [4]byte{' ', ' ', ' ', ' '}
		}
	}
	if m.haveFrame && f == m.lastFrame {
		return
	}
	m.lastFrame = f
	m.haveFrame = true
	m.disp.SetText(string(f[:]))
}

func twoDigits(v int) (byte, byte) {
	v = mathx.Clamp(v, 0, 99)
	return byte('0' + v/10), byte('0' + v%10)
}

// Mode returns the current mode.
func (m *Machine) Mode() types.Mode { return m.mode }

// Remaining returns the countdown in seconds.
func (m *Machine) Remaining() int { return m.remaining }

// Paused reports whether the countdown is held.
func (m *Machine) Paused() bool { return m.paused }

// Snapshot builds the retained timer/state payload.
func (m *Machine) Snapshot() types.TimerSnapshot {
	return types.TimerSnapshot{
		Mode:         m.mode,
		Paused:       m.paused,
		StudySeconds: m.studyMin * 60,
		RestSeconds:  m.restMin * 60,
		Remaining:    m.remaining,
		JingleSlot:   m.cfg.JingleSlot,
		TSms:         timex.NowMs(),
	}
}
