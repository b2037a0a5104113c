// melody/decode.go
package melody

import (
	"sort"
	"strings"

	"pomodoro-go/errcode"
	"pomodoro-go/x/strconvx"
)

// Notation, as pasted from the sequencer export:
//
//	[Online Sequencer[:]] pitch:startMs:durationMs[,pitch:startMs:durationMs...] [;:]
//
// Tokens are separated by comma, semicolon or newline. A pitch of "-" is a
// rest. The leading tool tag and the trailing ";:" terminator are both
// optional; users routinely forget to delete them.
const (
	leadTag    = "Online Sequencer"
	terminator = ";:"
	restPitch  = "-"
)

// OrderPolicy selects what Decode does with non-monotonic start times.
type OrderPolicy uint8

const (
	// OrderStrict rejects input whose start times go backwards.
	OrderStrict OrderPolicy = iota
	// OrderSort stable-sorts notes by start time instead.
	OrderSort
)

// Decoder decodes melody text. The zero value uses OrderStrict.
type Decoder struct {
	Order OrderPolicy
}

// Decode parses raw text with the strict ordering policy.
func Decode(raw string) (Melody, error) { return Decoder{}.Decode(raw) }

// Decode parses raw melody text into an immutable Melody.
// Empty input (after tag stripping) yields the zero-length melody.
func (d Decoder) Decode(raw string) (Melody, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, leadTag) {
		s = strings.TrimLeft(s[len(leadTag):], ": \t")
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, terminator))

	var (
		notes    []NoteEvent
		prev     uint32
		needSort bool
		total    uint32
	)
	for _, tok := range strings.FieldsFunc(s, isSeparator) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := parseToken(tok)
		if err != nil {
			return Silence, err
		}
		if n.Start < prev {
			if d.Order == OrderStrict {
				return Silence, &errcode.E{C: errcode.OutOfOrder, Op: "melody.decode", Msg: tok}
			}
			needSort = true
		}
		prev = n.Start
		if n.End() > total {
			total = n.End()
		}
		notes = append(notes, n)
	}
	if needSort {
		sort.SliceStable(notes, func(i, j int) bool { return notes[i].Start < notes[j].Start })
	}
	return Melody{notes: notes, total: total}, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\n' || r == '\r'
}

func parseToken(tok string) (NoteEvent, error) {
	var n NoteEvent

	a := strings.IndexByte(tok, ':')
	b := strings.LastIndexByte(tok, ':')
	if a < 0 || b <= a {
		return n, malformed(tok, nil)
	}
	pitch, startS, durS := tok[:a], tok[a+1:b], tok[b+1:]
	if strings.IndexByte(startS, ':') >= 0 {
		return n, malformed(tok, nil)
	}

	if pitch != restPitch {
		hz, err := PitchHz(pitch)
		if err != nil {
			return n, malformed(tok, err)
		}
		n.Hz = hz
	}
	start, err := strconvx.ParseUint(startS, 10, 32)
	if err != nil {
		return n, malformed(tok, err)
	}
	dur, err := strconvx.ParseUint(durS, 10, 32)
	if err != nil {
		return n, malformed(tok, err)
	}
	n.Start = uint32(start)
	n.Duration = uint32(dur)
	return n, nil
}

func malformed(tok string, cause error) error {
	return &errcode.E{C: errcode.MalformedToken, Op: "melody.decode", Msg: tok, Err: cause}
}
