//go:build rp2040 || rp2350

package strconvx

// Minimal, allocation-aware helpers with strconv-compatible signatures.
// Base 10 only; that is all the firmware parses.

func Itoa(i int) string {
	neg := i < 0
	var u uint64
	if neg {
		u = uint64(-i)
	} else {
		u = uint64(i)
	}
	var buf [20]byte
	p := len(buf)
	if u == 0 {
		p--
		buf[p] = '0'
	}
	for u > 0 {
		p--
		buf[p] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}

func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	u, err := ParseUint(s, 10, 63)
	if err != nil {
		return 0, err
	}
	if neg {
		return -int(u), nil
	}
	return int(u), nil
}

func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base != 10 || len(s) == 0 {
		return 0, parseError{}
	}
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	max := uint64(1)<<uint(bitSize) - 1
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseError{}
		}
		d := uint64(c - '0')
		if v > (max-d)/10 {
			return 0, parseError{}
		}
		v = v*10 + d
	}
	return v, nil
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }
