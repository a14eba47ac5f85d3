package cubesim

// History is the append-only log of committed moves. It is only emptied by
// an explicit Clear.
type History struct {
	moves []Move
}

// Append adds a committed move.
func (h *History) Append(m Move) {
	h.moves = append(h.moves, m)
}

// Len returns the number of recorded moves.
func (h *History) Len() int {
	return len(h.moves)
}

// CanUndo reports whether there is anything to reverse.
func (h *History) CanUndo() bool {
	return len(h.moves) > 0
}

// Moves returns a copy of the recorded moves in commit order.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Tokens returns the recorded moves as notation tokens (R, R', R2).
func (h *History) Tokens() []string {
	out := make([]string, len(h.moves))
	for i, m := range h.moves {
		out[i] = m.Notation()
	}
	return out
}

// Reversal returns the sequence that undoes the recorded moves.
func (h *History) Reversal() []Move {
	return InvertMoves(h.moves)
}

// Clear empties the log.
func (h *History) Clear() {
	h.moves = nil
}

func (h *History) String() string {
	return FormatMoves(h.moves)
}
