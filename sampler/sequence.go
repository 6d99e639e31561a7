package sampler

import (
	"math"

	"ray-engine/core"
)

// Sequence is a low-discrepancy point sequence. A sequence is positioned on
// one point with Start and then read one dimension at a time; pixel
// scheduling is a separate concern handled by ComputeIndex, which maps a
// (pixel, sample) pair to the index of the point that falls inside that
// pixel. Sequences are not safe for concurrent use; workers call Duplicate.
type Sequence interface {
	// Permute re-randomizes the sequence for randomized quasi-Monte Carlo.
	// Sequences without a randomization just return nil.
	Permute(rng Random) error

	// ComputeIndex returns the index of the sample-th point falling into
	// pixel (column, row) at the given resolution.
	ComputeIndex(column, numColumns, row, numRows int, sample, numSamples uint32) (uint64, error)

	// Start positions the sequence on the index-th point; subsequent
	// Next calls return that point's successive dimensions.
	Start(index uint64) error

	NextFloat() (float32, error)
	NextDouble() (float64, error)

	// Duplicate returns an independent sequence with the same
	// configuration, for parallel workers.
	Duplicate() Sequence
}

// validateComputeIndexArgs applies the argument checks shared by every
// sequence. Positions follow the canonical signature with the sequence
// itself at position zero.
func validateComputeIndexArgs(column, numColumns, row, numRows int, sample, numSamples uint32) error {
	if numColumns <= 0 {
		return core.InvalidArgument(2)
	}

	if column < 0 || column >= numColumns {
		return core.InvalidArgument(1)
	}

	if numRows <= 0 {
		return core.InvalidArgument(4)
	}

	if row < 0 || row >= numRows {
		return core.InvalidArgument(3)
	}

	if numSamples == 0 {
		return core.InvalidArgument(6)
	}

	if sample >= numSamples {
		return core.InvalidArgument(5)
	}

	return nil
}

// Random is the view of a sequence handed to integrators for dimensions
// past the ones the image sampler consumes itself.
type Random interface {
	// Float returns a value in [minimum, maximum).
	Float(minimum, maximum float64) (float64, error)

	// Index returns a value in [0, upperBound).
	Index(upperBound int) (int, error)

	// Replicate returns an independent random over a duplicate of the
	// underlying sequence.
	Replicate() (Random, error)
}

type sequenceRandom struct {
	sequence Sequence
}

// NewSequenceRandom wraps a sequence as a Random. The sequence is shared,
// not duplicated: draws advance the sequence's current point.
func NewSequenceRandom(sequence Sequence) Random {
	return &sequenceRandom{sequence: sequence}
}

func (r *sequenceRandom) Float(minimum, maximum float64) (float64, error) {
	value, err := r.sequence.NextDouble()
	if err != nil {
		return 0, err
	}

	return minimum + value*(maximum-minimum), nil
}

func (r *sequenceRandom) Index(upperBound int) (int, error) {
	if upperBound <= 0 || upperBound >= 1<<52 {
		return 0, core.InvalidArgument(1)
	}

	value, err := r.sequence.NextDouble()
	if err != nil {
		return 0, err
	}

	result := int(value * float64(upperBound))
	if result == upperBound {
		result--
	}

	return result, nil
}

func (r *sequenceRandom) Replicate() (Random, error) {
	return &sequenceRandom{sequence: r.sequence.Duplicate()}, nil
}

func clampUnit(value float64) float64 {
	return math.Min(math.Max(value, 0.0), 1.0)
}
