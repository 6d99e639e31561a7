package sampler

import (
	"ray-engine/core"
)

// haltonDimensions is how many prime bases the sampler supports before a
// consumer runs out of entropy.
const haltonDimensions = 256

// haltonShared holds the prime bases and their Faure digit permutations.
// Generating the permutations walks every base up to the largest prime, so
// the result is shared between a sequence and all of its duplicates.
type haltonShared struct {
	primes       []uint32
	permutations [][]uint16
}

func sievePrimes(count int) []uint32 {
	primes := make([]uint32, 0, count)
	for candidate := uint32(2); len(primes) < count; candidate++ {
		prime := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			primes = append(primes, candidate)
		}
	}
	return primes
}

// faurePermutations builds the Faure digit permutations for every base up
// to and including maxBase. The construction is recursive: an even base
// doubles the half-base permutation into low and high halves, an odd base
// inserts the middle digit into the previous base's permutation.
func faurePermutations(maxBase uint32) [][]uint16 {
	permutations := make([][]uint16, maxBase+1)
	permutations[2] = []uint16{0, 1}

	for base := uint32(3); base <= maxBase; base++ {
		permutation := make([]uint16, base)

		if base%2 == 0 {
			half := permutations[base/2]
			for i, value := range half {
				permutation[i] = 2 * value
				permutation[uint32(i)+base/2] = 2*value + 1
			}
		} else {
			previous := permutations[base-1]
			middle := uint16((base - 1) / 2)
			for i, value := range previous {
				if value >= middle {
					value++
				}
				if uint16(i) < middle {
					permutation[i] = value
				} else {
					permutation[i+1] = value
				}
			}
			permutation[middle] = middle
		}

		permutations[base] = permutation
	}

	return permutations
}

func newHaltonShared() *haltonShared {
	primes := sievePrimes(haltonDimensions)
	all := faurePermutations(primes[len(primes)-1])

	permutations := make([][]uint16, len(primes))
	for i, p := range primes {
		permutations[i] = all[p]
	}

	return &haltonShared{primes: primes, permutations: permutations}
}

// radicalInverse returns the permuted radical inverse of index in the base
// of the given dimension. Faure permutations map zero to zero, so the
// implicit trailing zero digits contribute nothing.
func (s *haltonShared) radicalInverse(dimension int, index uint32) float64 {
	base := uint64(s.primes[dimension])
	permutation := s.permutations[dimension]

	reversed := uint64(0)
	invBaseN := 1.0
	invBase := 1.0 / float64(base)

	remaining := uint64(index)
	for remaining > 0 {
		next := remaining / base
		digit := remaining - next*base
		reversed = reversed*base + uint64(permutation[digit])
		invBaseN *= invBase
		remaining = next
	}

	return float64(reversed) * invBaseN
}

// haltonEnum is the per-resolution pixel enumerator: the smallest prime
// powers covering the image and the Chinese Remainder offset multipliers
// that make consecutive sequence samples visit distinct pixels. It assumes
// identity permutations in bases 2 and 3, which the Faure permutations are.
type haltonEnum struct {
	p2        uint32
	p3        uint32
	x         uint32
	y         uint32
	scaleX    float64
	scaleY    float64
	increment uint32
}

func newHaltonEnum(width, height uint32) haltonEnum {
	var result haltonEnum

	w := uint32(1)
	for w < width {
		result.p2++
		w *= 2
	}
	result.scaleX = float64(w)

	h := uint32(1)
	for h < height {
		result.p3++
		h *= 3
	}
	result.scaleY = float64(h)

	result.increment = w * h

	first, second := extendedEuclid(int64(h), int64(w))
	var inv2, inv3 uint32
	if first < 0 {
		inv2 = uint32(first + int64(w))
	} else {
		inv2 = uint32(first % int64(w))
	}
	if second < 0 {
		inv3 = uint32(second + int64(h))
	} else {
		inv3 = uint32(second % int64(h))
	}

	result.x = h * inv2
	result.y = w * inv3

	return result
}

func extendedEuclid(a, b int64) (int64, int64) {
	if b == 0 {
		return 1, 0
	}
	first, second := extendedEuclid(b, a%b)
	return second, first - (a/b)*second
}

// index returns the sequence index of the i-th sample falling into pixel
// (x, y) at the enumerator's resolution.
func (e *haltonEnum) index(i, x, y uint32) uint32 {
	hx := uint64(halton2Inverse(x, e.p2))
	hy := uint64(halton3Inverse(y, e.p3))
	offset := uint32((hx*uint64(e.x) + hy*uint64(e.y)) % uint64(e.increment))
	return offset + i*e.increment
}

func halton2Inverse(index, digits uint32) uint32 {
	index = (index << 16) | (index >> 16)
	index = ((index & 0x00ff00ff) << 8) | ((index & 0xff00ff00) >> 8)
	index = ((index & 0x0f0f0f0f) << 4) | ((index & 0xf0f0f0f0) >> 4)
	index = ((index & 0x33333333) << 2) | ((index & 0xcccccccc) >> 2)
	index = ((index & 0x55555555) << 1) | ((index & 0xaaaaaaaa) >> 1)
	return index >> (32 - digits)
}

func halton3Inverse(index, digits uint32) uint32 {
	result := uint32(0)
	for d := uint32(0); d < digits; d++ {
		result = result*3 + index%3
		index /= 3
	}
	return result
}

// HaltonSequence is a Halton sequence with Faure digit permutations.
// Dimensions 0 and 1 are rescaled into the current pixel; dimensions 2 and
// up are returned raw.
type HaltonSequence struct {
	shared      *haltonShared
	enumerator  haltonEnum
	haveEnum    bool
	numColumns  int
	numRows     int
	index       uint32
	dimension   int
	scaleFactor [2]float64
}

func NewHaltonSequence() *HaltonSequence {
	return &HaltonSequence{
		shared:      newHaltonShared(),
		scaleFactor: [2]float64{1.0, 1.0},
	}
}

func (s *HaltonSequence) Permute(rng Random) error {
	return nil
}

func (s *HaltonSequence) ComputeIndex(
	column, numColumns, row, numRows int,
	sample, numSamples uint32,
) (uint64, error) {
	err := validateComputeIndexArgs(column, numColumns, row, numRows, sample, numSamples)
	if err != nil {
		return 0, err
	}

	if !s.haveEnum || s.numColumns != numColumns || s.numRows != numRows {
		s.enumerator = newHaltonEnum(uint32(numColumns), uint32(numRows))
		s.numColumns = numColumns
		s.numRows = numRows
		s.scaleFactor[0] = s.enumerator.scaleX / float64(numColumns)
		s.scaleFactor[1] = s.enumerator.scaleY / float64(numRows)
		s.haveEnum = true
	}

	return uint64(s.enumerator.index(sample, uint32(column), uint32(row))), nil
}

func (s *HaltonSequence) Start(index uint64) error {
	if index > uint64(^uint32(0)) {
		return core.InvalidArgument(1)
	}

	s.index = uint32(index)
	s.dimension = 0

	return nil
}

func (s *HaltonSequence) nextValue() (float64, error) {
	if s.dimension >= len(s.shared.primes) {
		return 0, core.ErrOutOfEntropy
	}

	value := s.shared.radicalInverse(s.dimension, s.index)

	if s.dimension < 2 {
		value *= s.scaleFactor[s.dimension]
		value = clampUnit(value)
	}

	s.dimension++

	return value, nil
}

func (s *HaltonSequence) NextFloat() (float32, error) {
	value, err := s.nextValue()
	return float32(value), err
}

func (s *HaltonSequence) NextDouble() (float64, error) {
	return s.nextValue()
}

func (s *HaltonSequence) Duplicate() Sequence {
	duplicate := *s
	return &duplicate
}
