// display/driver.go
package display

// OutputPin is the one GPIO primitive the driver needs.
type OutputPin interface {
	Set(level bool)
}

// PinDriver maps segment masks onto discrete GPIO lines with the kit's PCB
// polarity: segments are active high, digit commons are active low.
type PinDriver struct {
	segs   [8]OutputPin // a..g + dp
	digits [Digits]OutputPin
}

func NewPinDriver(segs [8]OutputPin, digits [Digits]OutputPin) *PinDriver {
	d := &PinDriver{segs: segs, digits: digits}
	for _, p := range d.digits {
		p.Set(true) // all commons deselected at startup
	}
	return d
}

func (d *PinDriver) WriteSegments(mask uint8) {
	for i, p := range d.segs {
		p.Set(mask&(1<<uint(i)) != 0)
	}
}

func (d *PinDriver) EnableDigit(i int) {
	if i >= 0 && i < Digits {
		d.digits[i].Set(false)
	}
}

func (d *PinDriver) DisableDigit(i int) {
	if i >= 0 && i < Digits {
		d.digits[i].Set(true)
	}
}
