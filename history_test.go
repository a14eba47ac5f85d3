package cubesim

import "testing"

func TestHistory(t *testing.T) {
	var h History
	if h.CanUndo() || h.Len() != 0 || h.String() != "" {
		t.Fatal("zero History should be empty")
	}

	h.Append(R)
	h.Append(U2)
	h.Append(FPrime)

	if got := h.String(); got != "R U2 F'" {
		t.Errorf("String() = %q", got)
	}
	if got := FormatMoves(h.Reversal()); got != "F U2 R'" {
		t.Errorf("Reversal() = %q", got)
	}

	moves := h.Moves()
	moves[0] = L
	if h.Moves()[0] != R {
		t.Error("Moves() should return a copy")
	}

	h.Clear()
	if h.CanUndo() {
		t.Error("Clear should empty the history")
	}
}
