// Package display drives a multiplexed 7-segment display one digit per
// cooperative tick. Refreshed every few milliseconds, the sequentially lit
// digits fuse into a stable image.
package display

// Digits is the digit count of the kit's display.
const Digits = 4

// Driver owns the segment and digit-enable output lines.
// All methods must be non-blocking register writes.
type Driver interface {
	// WriteSegments drives the segment lines: bit 0..6 = a..g, bit 7 = dp.
	WriteSegments(mask uint8)
	EnableDigit(i int)
	DisableDigit(i int)
}

// Segment patterns, bit 0..6 = a..g. Index by character.
//
//	 -- a --
//	|       |
//	f       b
//	|       |
//	 -- g --
//	|       |
//	e       c
//	|       |
//	 -- d --
func pattern(ch byte) uint8 {
	switch ch {
	case '0':
		return 0x3F
	case '1':
		return 0x06
	case '2':
		return 0x5B
	case '3':
		return 0x4F
	case '4':
		return 0x66
	case '5':
		return 0x6D
	case '6':
		return 0x7D
	case '7':
		return 0x07
	case '8':
		return 0x7F
	case '9':
		return 0x6F
	case '-':
		return 0x40
	case 'A':
		return 0x77
	case 'B', 'b':
		return 0x7C
	case 'C':
		return 0x39
	case 'D', 'd':
		return 0x5E
	case 'E':
		return 0x79
	case 'F':
		return 0x71
	default: // blank for anything unknown
		return 0x00
	}
}

// Multiplexer owns the display buffer and the round-robin refresh cursor.
type Multiplexer struct {
	drv  Driver
	buf  [Digits]byte
	dots [Digits]bool
	cur  int
}

func NewMultiplexer(drv Driver) *Multiplexer {
	m := &Multiplexer{drv: drv}
	for i := range m.buf {
		m.buf[i] = ' '
		drv.DisableDigit(i)
	}
	return m
}

// SetText stores a character frame. Short frames are padded on the right
// with blanks, long frames truncated. No hardware side effect.
func (m *Multiplexer) SetText(text string) {
	for i := 0; i < Digits; i++ {
		if i < len(text) {
			m.buf[i] = text[i]
		} else {
			m.buf[i] = ' '
		}
	}
}

// SetValue right-aligns a non-negative value into width digits ending at
// the last digit, blanking leading digits beyond the first significant one.
func (m *Multiplexer) SetValue(v uint, width int) {
	if width > Digits {
		width = Digits
	}
	for i := 0; i < Digits; i++ {
		m.buf[i] = ' '
	}
	pos := Digits - 1
	for i := 0; i < width; i++ {
		if i > 0 && v == 0 {
			break
		}
		m.buf[pos] = byte('0' + v%10)
		v /= 10
		pos--
	}
}

// SetFields packs two fixed-width two-digit groups ("25", "05") so the
// split between the phase values stays visually unambiguous.
func (m *Multiplexer) SetFields(hi, lo int) {
	m.buf[0], m.buf[1] = twoDigits(hi)
	m.buf[2], m.buf[3] = twoDigits(lo)
}

func twoDigits(v int) (byte, byte) {
	if v < 0 {
		v = 0
	}
	if v > 99 {
		v = 99
	}
	return byte('0' + v/10), byte('0' + v%10)
}

// Clear blanks the buffer and the decimal points.
func (m *Multiplexer) Clear() {
	for i := range m.buf {
		m.buf[i] = ' '
		m.dots[i] = false
	}
}

// SetDot enables or disables the decimal point on one digit.
func (m *Multiplexer) SetDot(pos int, on bool) {
	if pos >= 0 && pos < Digits {
		m.dots[pos] = on
	}
}

// Text returns the current frame, mostly for tests and the simulator.
func (m *Multiplexer) Text() string { return string(m.buf[:]) }

// Tick services exactly one digit: turn off the previously lit digit to
// avoid ghosting, drive the segment lines for the current one, enable it,
// and advance the round-robin cursor.
func (m *Multiplexer) Tick() {
	prev := (m.cur - 1 + Digits) % Digits
	m.drv.DisableDigit(prev)

	mask := pattern(m.buf[m.cur])
	if m.dots[m.cur] {
		mask |= 0x80
	}
	m.drv.WriteSegments(mask)
	m.drv.EnableDigit(m.cur)

	m.cur = (m.cur + 1) % Digits
}
