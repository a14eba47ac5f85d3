package cubesim

// Tracker follows a Cube's solving phase as moves are committed.
type Tracker struct {
	cube          *Cube
	lastPhase     Phase
	highestPhase  Phase // monotonic, never goes backwards
	phaseCallback func(phase Phase)
}

// NewTracker creates a tracker over cube. The highest phase starts at
// Scrambled so the first completed phase fires the callback.
func NewTracker(cube *Cube) *Tracker {
	return &Tracker{
		cube:      cube,
		lastPhase: cube.Phase(),
	}
}

// SetPhaseCallback sets a callback that fires when a new highest phase is reached.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase)) {
	t.phaseCallback = cb
}

// Reset forgets progress, typically after a scramble.
func (t *Tracker) Reset() {
	t.lastPhase = t.cube.Phase()
	t.highestPhase = PhaseScrambled
}

// Update re-reads the cube. Call it after every commit.
func (t *Tracker) Update() {
	current := t.cube.Phase()
	t.lastPhase = current

	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current)
		}
	}
}

// CurrentPhase returns the phase after the last Update.
// It follows the raw cube state and may go backwards during solving.
func (t *Tracker) CurrentPhase() Phase {
	return t.lastPhase
}

// HighestPhase returns the highest phase reached since the last Reset.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}
