// Package melody decodes compact sequencer-text notation into playable
// note sequences and holds the built-in jingle table.
package melody

import "pomodoro-go/errcode"

// NoteEvent is one decoded note: a pitch held for Duration milliseconds
// starting Start milliseconds into the melody. Hz==0 is a rest.
type NoteEvent struct {
	Hz       uint16
	Start    uint32
	Duration uint32
}

// End returns the first millisecond after the note.
func (n NoteEvent) End() uint32 { return n.Start + n.Duration }

// Melody is an immutable ordered sequence of NoteEvents. The zero value is
// a valid melody that plays nothing.
type Melody struct {
	notes []NoteEvent
	total uint32
}

func (m Melody) Len() int            { return len(m.notes) }
func (m Melody) Note(i int) NoteEvent { return m.notes[i] }

// TotalMs is the total duration: the latest note end.
func (m Melody) TotalMs() uint32 { return m.total }

// Silence is the zero-length melody used as the decode-failure fallback.
var Silence = Melody{}

// -----------------------------------------------------------------------------
// Pitch names
// -----------------------------------------------------------------------------

// Equal temperament, millihertz at octave 0 (A0 = 27.5 Hz), indexed by
// semitone from C. Doubling per octave keeps integer math exact enough for
// a piezo: the worst rounding error is under 0.5 Hz at octave 8.
var semitoneMilliHz = [12]uint32{
	16352, // C
	17324, // C#
	18354, // D
	19445, // D#
	20602, // E
	21827, // F
	23125, // F#
	24500, // G
	25957, // G#
	27500, // A
	29135, // A#
	30868, // B
}

var semitoneFromLetter = [7]int8{9, 11, 0, 2, 4, 5, 7} // A B C D E F G

// PitchHz resolves a sequencer pitch name ("C4", "A#6") to whole hertz.
func PitchHz(name string) (uint16, error) {
	if len(name) < 2 || len(name) > 3 {
		return 0, errcode.UnknownPitch
	}
	letter := name[0]
	if letter < 'A' || letter > 'G' {
		return 0, errcode.UnknownPitch
	}
	semi := int(semitoneFromLetter[letter-'A'])
	rest := name[1:]
	if rest[0] == '#' {
		semi++
		rest = rest[1:]
	}
	if semi == 12 { // B# wraps into the next octave
		semi = 0
	}
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '8' {
		return 0, errcode.UnknownPitch
	}
	oct := uint(rest[0] - '0')
	if letter == 'B' && name[1] == '#' {
		oct++
	}
	mHz := semitoneMilliHz[semi] << oct
	return uint16((mHz + 500) / 1000), nil
}
