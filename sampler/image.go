package sampler

import (
	"math"

	"ray-engine/core"
)

// Sample is one camera sample: a point inside the bound pixel, the
// per-sample pixel sub-area extents used as ray-differential offsets, and
// optionally a lens position.
type Sample struct {
	PixelU  float64
	PixelV  float64
	DPixelU float64
	DPixelV float64
	LensU   float64
	LensV   float64
	HasLens bool
}

// ImageSampler drives per-pixel sampling for an integrator. Start binds a
// pixel, then Next produces one sample per call. Duplicate hands
// independent samplers to parallel workers.
type ImageSampler interface {
	// Random returns the RNG view integrators use for dimensions past the
	// ones the sampler consumes itself.
	Random() (Random, error)

	// Start binds a pixel and returns the samples per pixel.
	Start(column, numColumns, row, numRows int) (uint32, error)

	// Next produces the next sample of the bound pixel. The pixel rng is
	// positioned on the same sequence point as the returned sample.
	Next(pixelRNG Random, wantLens bool) (Sample, error)

	Duplicate() (ImageSampler, error)
}

// LowDiscrepancyImageSampler schedules a low-discrepancy sequence over the
// image: each (pixel, sample) pair maps to a deterministic sequence index,
// so the value produced for a pixel never depends on the order in which
// other pixels were sampled.
type LowDiscrepancyImageSampler struct {
	sequence        Sequence
	samplesPerPixel uint32
	sampleIndex     uint32
	column          int
	numColumns      int
	row             int
	numRows         int
	dpixelU         float64
	dpixelV         float64
}

func NewLowDiscrepancyImageSampler(
	sequence Sequence,
	samplesPerPixel uint32,
) (*LowDiscrepancyImageSampler, error) {
	if sequence == nil {
		return nil, core.InvalidArgument(0)
	}

	if samplesPerPixel == 0 {
		return nil, core.InvalidArgument(1)
	}

	return &LowDiscrepancyImageSampler{
		sequence:        sequence.Duplicate(),
		samplesPerPixel: samplesPerPixel,
	}, nil
}

func (s *LowDiscrepancyImageSampler) Random() (Random, error) {
	return NewSequenceRandom(s.sequence), nil
}

func (s *LowDiscrepancyImageSampler) Start(
	column, numColumns, row, numRows int,
) (uint32, error) {
	s.column = column
	s.numColumns = numColumns
	s.row = row
	s.numRows = numRows
	s.sampleIndex = 0

	sqrtSamples := math.Sqrt(float64(s.samplesPerPixel))
	s.dpixelU = 1.0 / (float64(numColumns) * sqrtSamples)
	s.dpixelV = 1.0 / (float64(numRows) * sqrtSamples)

	return s.samplesPerPixel, nil
}

func (s *LowDiscrepancyImageSampler) Next(pixelRNG Random, wantLens bool) (Sample, error) {
	index, err := s.sequence.ComputeIndex(s.column,
		s.numColumns,
		s.row,
		s.numRows,
		s.sampleIndex,
		s.samplesPerPixel)

	if err != nil {
		return Sample{}, err
	}

	if err := s.sequence.Start(index); err != nil {
		return Sample{}, err
	}

	var sample Sample

	sample.PixelU, err = s.sequence.NextDouble()
	if err != nil {
		return Sample{}, err
	}

	sample.PixelV, err = s.sequence.NextDouble()
	if err != nil {
		return Sample{}, err
	}

	sample.DPixelU = s.dpixelU
	sample.DPixelV = s.dpixelV

	if wantLens {
		lensU, err := s.sequence.NextFloat()
		if err != nil {
			return Sample{}, err
		}

		lensV, err := s.sequence.NextFloat()
		if err != nil {
			return Sample{}, err
		}

		sample.LensU = float64(lensU)
		sample.LensV = float64(lensV)
		sample.HasLens = true
	}

	s.sampleIndex++

	return sample, nil
}

func (s *LowDiscrepancyImageSampler) Duplicate() (ImageSampler, error) {
	return NewLowDiscrepancyImageSampler(s.sequence, s.samplesPerPixel)
}
