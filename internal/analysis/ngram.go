package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/cubesim"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SessionID  string `json:"session_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // keyed by n
}

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// moveToken packs a move into 0..17: face index times three plus turn.
func moveToken(m cubesim.Move) uint8 {
	var face uint8
	for i, f := range cubesim.Faces {
		if f == m.Face {
			face = uint8(i)
		}
	}
	var turn uint8
	switch m.Turn {
	case cubesim.CCW:
		turn = 1
	case cubesim.Double:
		turn = 2
	}
	return face*3 + turn
}

func tokenMove(t uint8) cubesim.Move {
	turns := [3]cubesim.Turn{cubesim.CW, cubesim.CCW, cubesim.Double}
	return cubesim.Move{Face: cubesim.Faces[t/3], Turn: turns[t%3]}
}

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Add adds a token while the window is filling.
func (rh *RollingHash) Add(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
	}
}

// Roll removes the oldest token and adds a new one.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.Add(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	result := make([]uint8, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint8
	count       int
	first       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent repeated n-grams for each n in
// [minN, maxN]. Occurrences may overlap.
func MineNGrams(moves []TimedMove, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	if minN < 1 || len(moves) < minN {
		return report
	}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = moveToken(m.Move)
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(tokens, moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(tokens []uint8, moves []TimedMove, n, topK int) []NGram {
	if len(tokens) < n {
		return nil
	}

	// Colliding windows with different tokens chain in the slice.
	counts := make(map[uint64][]*ngramEntry)
	rh := NewRollingHash(n)

	for i := 0; i < n-1; i++ {
		rh.Add(tokens[i])
	}

	for i := n - 1; i < len(tokens); i++ {
		rh.Roll(tokens[i])
		if !rh.Ready() {
			continue
		}

		hash := rh.Hash()
		startIdx := i - n + 1
		occ := NGramOccurrence{StartIndex: startIdx, TsMs: moves[startIdx].TsMs}
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[hash] {
			if slices.Equal(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			counts[hash] = append(counts[hash], &ngramEntry{
				tokens:      window,
				count:       1,
				first:       startIdx,
				occurrences: []NGramOccurrence{occ},
			})
			continue
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	var entries []*ngramEntry
	for _, chain := range counts {
		for _, entry := range chain {
			if entry.count >= 2 {
				entries = append(entries, entry)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, entry := range entries {
		sequence := make([]string, len(entry.tokens))
		for j, token := range entry.tokens {
			sequence[j] = tokenMove(token).Notation()
		}
		result[i] = NGram{
			N:           n,
			Sequence:    sequence,
			Tokens:      entry.tokens,
			Count:       entry.count,
			Occurrences: entry.occurrences,
		}
	}

	return result
}
