package utils

import "testing"

func TestRandomHex(t *testing.T) {
	got := RandomHex(4)
	if len(got) != 8 {
		t.Errorf("RandomHex(4) length = %d, want 8", len(got))
	}

	if RandomHex(8) == RandomHex(8) {
		t.Error("RandomHex(8) returned the same value twice")
	}
}
