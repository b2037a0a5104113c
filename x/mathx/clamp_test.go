package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(7, 0, 5); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := Clamp(-3, 0, 5); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Fatalf("got %d", got)
	}
	// Swapped bounds are tolerated.
	if got := Clamp(7, 5, 0); got != 5 {
		t.Fatalf("got %d", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Fatal("min/max")
	}
}
