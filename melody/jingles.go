// melody/jingles.go
package melody

import "pomodoro-go/errcode"

// Cue names the moment a jingle is played at.
type Cue uint8

const (
	CueBoot Cue = iota
	CueStudy
	CueRest
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueBoot:
		return "boot"
	case CueStudy:
		return "study"
	case CueRest:
		return "rest"
	default:
		return "unknown"
	}
}

// ParseCue maps the wire spelling back to a Cue.
func ParseCue(s string) (Cue, error) {
	switch s {
	case "boot":
		return CueBoot, nil
	case "study":
		return CueStudy, nil
	case "rest":
		return CueRest, nil
	default:
		return 0, errcode.UnknownCue
	}
}

// NumSlots is the number of jumper-selectable jingle sets. Slot 0 is the
// no-jumper default; slots 1-3 correspond to jumpers JP1-JP3.
const NumSlots = 4

// Factory jingle texts, one melody per slot and cue. Transcribed from the
// kit's stock sequences.
var factoryTexts = [NumSlots][cueCount]string{
	{
		"E6:0:150,A6:300:450,E6:900:150,G6:1350:600",
		"E5:0:150,B4:300:300,B4:600:150,C5:750:150,C#5:900:150",
		"D#6:0:150,F6:450:150,G#6:750:150,A#6:1050:150,G#6:1350:150",
	},
	{
		"F#6:0:150,A6:150:150,C7:450:150,B6:750:150",
		"F4:0:150,F#4:300:150,G#4:600:150,A#4:900:150,G#4:1050:150",
		"A6:0:300,C#7:450:300,A7:900:300",
	},
	{
		"G#6:0:300,B6:450:300,D#7:900:300,G#6:1200:300,A#6:1650:300",
		"C#7:0:150,E7:450:150,F#7:750:150,G#7:1350:150",
		"C#7:0:300,E7:300:300,G#7:600:300",
	},
	{
		"F6:0:150,G6:300:150,A#6:600:450",
		"B6:0:450,G6:450:450,C6:900:450,D6:1350:450",
		"G6:0:450,A#6:600:450,D7:1050:450,F7:1500:450",
	},
}

// Table holds one decoded melody per slot and cue. A slot whose text failed
// to decode holds Silence; losing a jingle is cosmetic, not fatal.
type Table struct {
	slots [NumSlots][cueCount]Melody
}

// DefaultTable decodes the factory jingles.
func DefaultTable() *Table {
	t := &Table{}
	for slot := range factoryTexts {
		for cue, text := range factoryTexts[slot] {
			m, err := Decode(text)
			if err != nil {
				println("[melody] factory jingle decode failed, slot", slot, "cue", cue)
				m = Silence
			}
			t.slots[slot][cue] = m
		}
	}
	return t
}

// Get returns the melody for a slot/cue pair; out-of-range addresses yield
// Silence so callers never have to guard playback.
func (t *Table) Get(slot int, c Cue) Melody {
	if slot < 0 || slot >= NumSlots || c >= cueCount {
		return Silence
	}
	return t.slots[slot][c]
}

// Set replaces one slot/cue melody (UART customization path).
func (t *Table) Set(slot int, c Cue, m Melody) error {
	if slot < 0 || slot >= NumSlots {
		return errcode.UnknownSlot
	}
	if c >= cueCount {
		return errcode.UnknownCue
	}
	t.slots[slot][c] = m
	return nil
}
