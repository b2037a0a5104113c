// timer/input_test.go
package timer

import "testing"

func press(b int) Buttons {
	var raw Buttons
	raw[b] = true
	return raw
}

func TestDebouncer_AcceptsAfterNTicks(t *testing.T) {
	d := NewDebouncer(3)

	for i := 0; i < 2; i++ {
		if _, pressed := d.Update(press(BtnUp)); pressed[BtnUp] {
			t.Fatalf("edge accepted after %d ticks", i+1)
		}
	}
	state, pressed := d.Update(press(BtnUp))
	if !pressed[BtnUp] || !state[BtnUp] {
		t.Fatal("edge not accepted on the third consecutive tick")
	}
}

func TestDebouncer_GlitchResets(t *testing.T) {
	d := NewDebouncer(3)

	d.Update(press(BtnUp))
	d.Update(Buttons{}) // bounce back
	d.Update(press(BtnUp))
	_, pressed := d.Update(press(BtnUp))
	if pressed[BtnUp] {
		t.Fatal("glitched press accepted too early")
	}
	_, pressed = d.Update(press(BtnUp))
	if !pressed[BtnUp] {
		t.Fatal("press not accepted after the glitch settled")
	}
}

func TestDebouncer_HeldEmitsOneEdge(t *testing.T) {
	d := NewDebouncer(2)

	edges := 0
	for i := 0; i < 20; i++ {
		if _, pressed := d.Update(press(BtnConfirm)); pressed[BtnConfirm] {
			edges++
		}
	}
	if edges != 1 {
		t.Fatalf("edges = %d, want 1", edges)
	}
}

func TestDebouncer_ReleaseIsDebouncedToo(t *testing.T) {
	d := NewDebouncer(2)

	d.Update(press(BtnDown))
	d.Update(press(BtnDown))

	state, _ := d.Update(Buttons{})
	if !state[BtnDown] {
		t.Fatal("release accepted instantly")
	}
	state, pressed := d.Update(Buttons{})
	if state[BtnDown] {
		t.Fatal("release not accepted after two ticks")
	}
	if pressed[BtnDown] {
		t.Fatal("release reported as a press")
	}
}

func TestButtonName(t *testing.T) {
	for i, want := range []string{"up", "down", "confirm", "reset"} {
		if got := ButtonName(i); got != want {
			t.Fatalf("ButtonName(%d) = %q, want %q", i, got, want)
		}
	}
	if ButtonName(-1) != "unknown" || ButtonName(numButtons) != "unknown" {
		t.Fatal("out-of-range name")
	}
}
