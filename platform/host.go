// platform/host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"sync"
)

// NewBoard returns a fully simulated board on hosted targets.
func NewBoard(pm PinMap) *Board { return NewSimBoard(pm).Board() }

// SimBoard is an in-memory board for tests and the pomodoro-sim REPL.
type SimBoard struct {
	mu   sync.Mutex
	pm   PinMap
	pins map[int]*SimPin

	Buzz *SimBuzzer
	Led  *SimLED
	Ser  *SimSerial
}

func NewSimBoard(pm PinMap) *SimBoard {
	return &SimBoard{
		pm:   pm,
		pins: map[int]*SimPin{},
		Buzz: &SimBuzzer{},
		Led:  &SimLED{},
		Ser:  NewSimSerial(),
	}
}

func (s *SimBoard) Board() *Board {
	return &Board{Map: s.pm, Pins: s, Buzzer: s.Buzz, LED: s.Led, Serial: s.Ser}
}

// ByNumber implements PinFactory; pins are created on first use.
func (s *SimBoard) ByNumber(n int) (Pin, bool) {
	if n < 0 {
		return nil, false
	}
	return s.Pin(n), true
}

// Pin returns the simulated pin for direct level control.
func (s *SimBoard) Pin(n int) *SimPin {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pins[n]
	if !ok {
		p = &SimPin{board: s, n: n}
		s.pins[n] = p
	}
	return p
}

// SetButton drives a button line; the kit's buttons are active low.
func (s *SimBoard) SetButton(pin int, pressed bool) { s.Pin(pin).SetLevel(!pressed) }

// FitJumper drives one jumper line high (0-based index into PinMap.Jumpers).
func (s *SimBoard) FitJumper(idx int) {
	if idx >= 0 && idx < len(s.pm.Jumpers) {
		s.Pin(s.pm.Jumpers[idx]).SetLevel(true)
	}
}

// ---- SimPin ----

type SimPin struct {
	board  *SimBoard
	n      int
	out    bool
	level  bool
	driven bool // an external level overrides the pull
	pull   Pull
}

func (p *SimPin) ConfigureInput(pull Pull) error {
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	p.out = false
	p.pull = pull
	// An unconnected input floats to its pull.
	if !p.driven {
		p.level = pull == PullUp
	}
	return nil
}

func (p *SimPin) ConfigureOutput(initial bool) error {
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	p.out = true
	p.level = initial
	return nil
}

func (p *SimPin) Set(level bool) {
	p.board.mu.Lock()
	p.level = level
	p.board.mu.Unlock()
}

func (p *SimPin) Get() bool {
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	return p.level
}

func (p *SimPin) Number() int { return p.n }

// SetLevel drives an input pin externally (button, jumper).
func (p *SimPin) SetLevel(level bool) {
	p.board.mu.Lock()
	p.level = level
	p.driven = true
	p.board.mu.Unlock()
}

// ---- SimBuzzer ----

// SimBuzzer records every tone command; 0 Hz means silence.
type SimBuzzer struct {
	mu     sync.Mutex
	hz     uint16
	events []uint16
}

func (b *SimBuzzer) SetTone(hz uint16) {
	b.mu.Lock()
	b.hz = hz
	b.events = append(b.events, hz)
	b.mu.Unlock()
}

func (b *SimBuzzer) Silence() {
	b.mu.Lock()
	b.hz = 0
	b.events = append(b.events, 0)
	b.mu.Unlock()
}

func (b *SimBuzzer) CurrentHz() uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hz
}

func (b *SimBuzzer) Events() []uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]uint16, len(b.events))
	copy(out, b.events)
	return out
}

// ---- SimLED ----

type SimLED struct {
	mu      sync.Mutex
	r, g, b uint8
}

func (l *SimLED) SetColor(r, g, b uint8) {
	l.mu.Lock()
	l.r, l.g, l.b = r, g, b
	l.mu.Unlock()
}

func (l *SimLED) Color() (r, g, b uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r, l.g, l.b
}

// ---- SimSerial ----

// SimSerial is a loopback port: Feed supplies receive data, Output collects
// everything written.
type SimSerial struct {
	mu      sync.Mutex
	out     []byte
	rx      chan []byte
	pending []byte
}

func NewSimSerial() *SimSerial {
	return &SimSerial{rx: make(chan []byte, 8)}
}

func (s *SimSerial) Feed(text string) { s.rx <- []byte(text) }

func (s *SimSerial) Write(b []byte) (int, error) {
	s.mu.Lock()
	s.out = append(s.out, b...)
	s.mu.Unlock()
	return len(b), nil
}

func (s *SimSerial) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if len(s.pending) == 0 {
		select {
		case b := <-s.rx:
			s.pending = b
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	n := copy(buf, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *SimSerial) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.out)
}
