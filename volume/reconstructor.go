package volume

import (
	"log/slog"
	"math"
	"sort"

	errs "github.com/caio-sobreiro/dicomvol/errors"
)

// Slice spacing bounds, inclusive, in millimetres.
const (
	MinSliceSpacing = 0.1
	MaxSliceSpacing = 10.0

	// spacingTolerance is the relative deviation between consecutive slice
	// gaps above which a consistency warning is emitted.
	spacingTolerance = 0.10
)

// Option configures a Reconstructor instance.
type Option func(*Reconstructor)

// WithLogger overrides the logger used for non-fatal consistency warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconstructor) {
		r.logger = logger
	}
}

// Reconstructor builds volumes from slice sets. It is stateless between
// calls and safe for concurrent use.
type Reconstructor struct {
	logger *slog.Logger
}

// New builds a Reconstructor.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Reconstruct sorts, validates and concatenates a slice set into one volume.
//
// The input need not be pre-sorted: slices are stable-sorted ascending by
// z position (SliceLocation, or the ImagePositionPatient z component), so
// any input permutation of the same set produces a bit-identical voxel
// buffer. Every slice must carry a usable z position; partial position
// information is never averaged or guessed. Dimensions and bit depth must
// be uniform, the set must hold at least two slices, and the z spacing
// derived from the first pair must lie within [0.1, 10.0] mm. Local spacing
// deviations above 10% of the reference are logged as warnings but do not
// fail the reconstruction. A failure at any step discards all work; there
// is no partial volume.
func (r *Reconstructor) Reconstruct(seriesUID string, slices []Slice) (*Volume, error) {
	if len(slices) == 0 {
		return nil, errs.NewEmptyImageSetError()
	}

	type positioned struct {
		Slice
		z float64
	}
	sorted := make([]positioned, len(slices))
	for i, s := range slices {
		z, ok := s.Image.ZPosition()
		if !ok {
			return nil, errs.NewMissingPositionInfoError(s.Image.SOPInstanceUID)
		}
		sorted[i] = positioned{Slice: s, z: z}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].z < sorted[j].z })

	first := sorted[0].Pixels
	for i := 1; i < len(sorted); i++ {
		p := sorted[i].Pixels
		if p.Rows != first.Rows || p.Columns != first.Columns {
			return nil, errs.NewInconsistentDimensionsError(i, first.Rows, first.Columns, p.Rows, p.Columns)
		}
		if p.BitsAllocated != first.BitsAllocated {
			return nil, errs.NewInconsistentBitDepthError(i, first.BitsAllocated, p.BitsAllocated)
		}
	}

	if len(sorted) < 2 {
		return nil, errs.NewInsufficientSlicesError(len(sorted))
	}

	zSpacing := math.Abs(sorted[1].z - sorted[0].z)
	if zSpacing < MinSliceSpacing || zSpacing > MaxSliceSpacing {
		return nil, errs.NewInvalidSpacingError(zSpacing)
	}
	for i := 1; i < len(sorted)-1; i++ {
		local := math.Abs(sorted[i+1].z - sorted[i].z)
		if math.Abs(local-zSpacing) > zSpacing*spacingTolerance {
			r.logger.Warn("inconsistent slice spacing",
				"series_uid", seriesUID,
				"slice_index", i,
				"spacing_mm", local,
				"reference_mm", zSpacing)
		}
	}

	bytesPerSlice := first.Rows * first.Columns * first.BytesPerVoxel()
	voxels := make([]byte, 0, bytesPerSlice*len(sorted))
	for i, s := range sorted {
		if len(s.Pixels.Pixels) < bytesPerSlice {
			return nil, errs.NewCorruptedSliceDataError(i, bytesPerSlice, len(s.Pixels.Pixels))
		}
		voxels = append(voxels, s.Pixels.Pixels[:bytesPerSlice]...)
	}

	return &Volume{
		SeriesInstanceUID: seriesUID,
		Dimensions:        [3]int{first.Columns, first.Rows, len(sorted)},
		Spacing:           [3]float64{first.PixelSpacing.X, first.PixelSpacing.Y, zSpacing},
		DataType:          dataTypeOf(first),
		Voxels:            voxels,
		WindowCenter:      first.WindowCenter,
		WindowWidth:       first.WindowWidth,
		RescaleSlope:      first.RescaleSlope,
		RescaleIntercept:  first.RescaleIntercept,
	}, nil
}

// ReconstructSingle builds a display-only volume from one slice. Position,
// uniformity and spacing validation do not apply; the z spacing is set to
// the x pixel spacing purely as a display estimate.
func (r *Reconstructor) ReconstructSingle(seriesUID string, s Slice) (*Volume, error) {
	p := s.Pixels
	if p == nil {
		return nil, errs.NewEmptyImageSetError()
	}

	bytesPerSlice := p.Rows * p.Columns * p.BytesPerVoxel()
	if len(p.Pixels) < bytesPerSlice {
		return nil, errs.NewCorruptedSliceDataError(0, bytesPerSlice, len(p.Pixels))
	}

	voxels := append([]byte(nil), p.Pixels[:bytesPerSlice]...)
	return &Volume{
		SeriesInstanceUID: seriesUID,
		Dimensions:        [3]int{p.Columns, p.Rows, 1},
		Spacing:           [3]float64{p.PixelSpacing.X, p.PixelSpacing.Y, p.PixelSpacing.X},
		DataType:          dataTypeOf(p),
		Voxels:            voxels,
		WindowCenter:      p.WindowCenter,
		WindowWidth:       p.WindowWidth,
		RescaleSlope:      p.RescaleSlope,
		RescaleIntercept:  p.RescaleIntercept,
	}, nil
}
