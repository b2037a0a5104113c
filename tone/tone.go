// Package tone advances melody playback one cooperative tick at a time,
// driving a single-voice buzzer output. It never blocks and never sleeps.
package tone

import "pomodoro-go/melody"

// Output is the buzzer. Implementations must be non-blocking register writes.
type Output interface {
	SetTone(hz uint16)
	Silence()
}

// cursor is the mutable playback state, owned exclusively by the Scheduler.
type cursor struct {
	mel     melody.Melody
	elapsed uint32 // ms into the melody
	idx     int    // first note not yet finished
	active  bool
}

// Scheduler plays at most one melody at a time; Start preempts.
type Scheduler struct {
	out Output
	cur cursor

	sounding bool   // a tone command is in effect
	lastHz   uint16 // last emitted pitch, to avoid audible retriggering
}

func NewScheduler(out Output) *Scheduler {
	return &Scheduler{out: out}
}

// Start resets the cursor onto m, silently cancelling any melody in
// progress. A zero-length melody deactivates playback immediately.
func (s *Scheduler) Start(m melody.Melody) {
	s.cur = cursor{mel: m, active: m.Len() > 0}
	if !s.cur.active && s.sounding {
		s.out.Silence()
		s.sounding = false
		s.lastHz = 0
	}
}

// Stop cancels playback and silences the output.
func (s *Scheduler) Stop() {
	s.cur = cursor{}
	if s.sounding {
		s.out.Silence()
		s.sounding = false
		s.lastHz = 0
	}
}

// IsPlaying reports whether a melody is still in progress.
func (s *Scheduler) IsPlaying() bool { return s.cur.active }

// Tick advances playback by stepMs and emits at most one buzzer command,
// only when a note boundary was crossed.
func (s *Scheduler) Tick(stepMs uint32) {
	if !s.cur.active {
		return
	}
	s.cur.elapsed += stepMs

	if s.cur.elapsed >= s.cur.mel.TotalMs() {
		s.cur.active = false
		s.out.Silence()
		s.sounding = false
		s.lastHz = 0
		return
	}

	// Skip notes that finished before the new elapsed time.
	for s.cur.idx < s.cur.mel.Len() && s.cur.mel.Note(s.cur.idx).End() <= s.cur.elapsed {
		s.cur.idx++
	}

	var hz uint16
	inNote := false
	if s.cur.idx < s.cur.mel.Len() {
		if n := s.cur.mel.Note(s.cur.idx); n.Start <= s.cur.elapsed {
			hz = n.Hz
			inNote = true
		}
	}

	switch {
	case inNote && hz > 0:
		if !s.sounding || s.lastHz != hz {
			s.out.SetTone(hz)
			s.sounding = true
			s.lastHz = hz
		}
	default:
		// Gap between notes, or an explicit rest.
		if s.sounding {
			s.out.Silence()
			s.sounding = false
			s.lastHz = 0
		}
	}
}
