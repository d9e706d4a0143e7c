// Package volume assembles ordered 2D image slices into a contiguous 3D
// voxel volume, validating geometric and radiometric consistency first.
package volume

import (
	"github.com/caio-sobreiro/dicomvol/domain"
	"github.com/caio-sobreiro/dicomvol/pixel"
)

// DataType identifies the voxel storage type of a volume buffer.
type DataType string

const (
	Uint8  DataType = "uint8"
	Uint16 DataType = "uint16"
	Int16  DataType = "int16"
	RGB24  DataType = "rgb24"
)

// Volume is a reconstructed 3D voxel buffer. Voxels is slice-major
// (z outermost, then rows, then columns) and little-endian; its length is
// Dimensions[0]*Dimensions[1]*Dimensions[2]*bytesPerVoxel. Built once,
// immutable thereafter.
type Volume struct {
	SeriesInstanceUID string

	// Dimensions are voxel counts along x (columns), y (rows), z (slices).
	Dimensions [3]int

	// Spacing is the physical voxel size along x, y, z in millimetres.
	Spacing [3]float64

	DataType DataType
	Voxels   []byte

	// Windowing and rescale parameters copied from the lowest-z slice.
	WindowCenter     float64
	WindowWidth      float64
	RescaleSlope     float64
	RescaleIntercept float64
}

// Slice pairs a mapped image instance with its decoded pixel buffer; the
// reconstructor's unit of input.
type Slice struct {
	Image  domain.ImageInstance
	Pixels *pixel.ProcessedPixelData
}

// dataTypeOf derives the voxel type from a slice's pixel attributes.
func dataTypeOf(p *pixel.ProcessedPixelData) DataType {
	switch {
	case p.SamplesPerPixel == 3:
		return RGB24
	case p.BitsAllocated == 8:
		return Uint8
	case p.PixelRepresentation == 1:
		return Int16
	default:
		return Uint16
	}
}
