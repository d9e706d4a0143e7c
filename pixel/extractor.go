// Package pixel decodes the raw PixelData element of a parsed dataset into a
// typed, rescaled pixel buffer together with its geometric and radiometric
// metadata.
package pixel

import (
	"encoding/binary"
	"math"

	"github.com/caio-sobreiro/dicomvol/dicom"
	errs "github.com/caio-sobreiro/dicomvol/errors"
	"github.com/caio-sobreiro/dicomvol/tag"
)

// Defaults applied when the image pixel module leaves attributes out.
const (
	DefaultBitsAllocated   = 16
	DefaultSamplesPerPixel = 1
	DefaultPhotometric     = "MONOCHROME2"

	// Soft-tissue windowing preset.
	DefaultWindowCenter = 40.0
	DefaultWindowWidth  = 400.0
)

// Spacing is a physical pixel spacing in millimetres.
type Spacing struct {
	X float64
	Y float64
}

// ProcessedPixelData is the decoded pixel buffer of one image slice plus the
// attributes needed to interpret it. It is derived once from a Dataset and
// never mutated afterwards. Pixels is always little-endian, regardless of
// the transfer syntax the file used, and holds exactly
// Rows*Columns*SamplesPerPixel*(BitsAllocated/8) bytes.
type ProcessedPixelData struct {
	Rows                      int
	Columns                   int
	BitsAllocated             int
	BitsStored                int
	HighBit                   int
	PixelRepresentation       int
	SamplesPerPixel           int
	PhotometricInterpretation string
	PixelSpacing              Spacing
	WindowCenter              float64
	WindowWidth               float64
	RescaleSlope              float64
	RescaleIntercept          float64
	IsCTData                  bool
	Pixels                    []byte
}

// ExpectedSize returns the byte length the geometry attributes declare.
func (p *ProcessedPixelData) ExpectedSize() int {
	return p.Rows * p.Columns * p.SamplesPerPixel * (p.BitsAllocated / 8)
}

// BytesPerVoxel returns the storage size of one pixel across all samples.
func (p *ProcessedPixelData) BytesPerVoxel() int {
	return p.SamplesPerPixel * (p.BitsAllocated / 8)
}

// Extract decodes the pixel data of a parsed dataset.
//
// Rows, Columns and PixelData must be present; everything else falls back to
// the module defaults. The decode path is selected by the
// (BitsAllocated, PixelRepresentation, SamplesPerPixel) triple:
//
//	(8, 0, 1)  unsigned bytes, rescaled only when slope/intercept are set
//	(16, 0, 1) unsigned shorts, rescaled and clamped to [0, 65535]
//	(16, 1, 1) signed shorts (the common CT case), rescaled into
//	           Hounsfield-like units and clamped to the int16 range
//	(_, _, 3)  interleaved RGB, passed through unrescaled
//
// Any other combination fails with an "unsupported pixel format" error.
// Rescaling with the default slope 1.0 / intercept 0.0 leaves the buffer
// bit-identical to the raw decode.
func Extract(ds *dicom.Dataset) (*ProcessedPixelData, error) {
	rows, err := requiredUint16(ds, tag.Rows)
	if err != nil {
		return nil, err
	}
	columns, err := requiredUint16(ds, tag.Columns)
	if err != nil {
		return nil, err
	}
	raw, ok := ds.GetBytes(tag.PixelData)
	if !ok {
		return nil, errs.NewMissingRequiredTagError(tag.PixelData)
	}

	p := &ProcessedPixelData{
		Rows:                      int(rows),
		Columns:                   int(columns),
		BitsAllocated:             int(ds.GetUint16Default(tag.BitsAllocated, DefaultBitsAllocated)),
		PixelRepresentation:       int(ds.GetUint16Default(tag.PixelRepresentation, 0)),
		SamplesPerPixel:           int(ds.GetUint16Default(tag.SamplesPerPixel, DefaultSamplesPerPixel)),
		PhotometricInterpretation: ds.GetStringDefault(tag.PhotometricInterpretation, DefaultPhotometric),
		PixelSpacing:              readPixelSpacing(ds),
		WindowCenter:              ds.GetFloat64Default(tag.WindowCenter, DefaultWindowCenter),
		WindowWidth:               ds.GetFloat64Default(tag.WindowWidth, DefaultWindowWidth),
		RescaleSlope:              ds.GetFloat64Default(tag.RescaleSlope, 1.0),
		RescaleIntercept:          ds.GetFloat64Default(tag.RescaleIntercept, 0.0),
	}
	p.BitsStored = int(ds.GetUint16Default(tag.BitsStored, uint16(p.BitsAllocated)))
	p.HighBit = int(ds.GetUint16Default(tag.HighBit, uint16(p.BitsStored-1)))

	expected := p.ExpectedSize()
	if len(raw) < expected {
		return nil, errs.NewCorruptedPixelDataError(expected, len(raw))
	}
	raw = raw[:expected]

	order := ds.TransferSyntax.ByteOrder()
	switch {
	case p.SamplesPerPixel == 3:
		// Interleaved RGB passes through unrescaled.
		p.Pixels = append([]byte(nil), raw...)

	case p.BitsAllocated == 8 && p.PixelRepresentation == 0 && p.SamplesPerPixel == 1:
		p.Pixels = decodeUint8(raw, p.RescaleSlope, p.RescaleIntercept)

	case p.BitsAllocated == 16 && p.PixelRepresentation == 0 && p.SamplesPerPixel == 1:
		p.Pixels = decodeUint16(raw, order, p.RescaleSlope, p.RescaleIntercept)

	case p.BitsAllocated == 16 && p.PixelRepresentation == 1 && p.SamplesPerPixel == 1:
		p.Pixels = decodeInt16(raw, order, p.RescaleSlope, p.RescaleIntercept)
		p.IsCTData = true

	default:
		return nil, errs.NewInvalidFormatError("unsupported pixel format: %d-bit, representation %d, %d sample(s) per pixel",
			p.BitsAllocated, p.PixelRepresentation, p.SamplesPerPixel)
	}

	return p, nil
}

// requiredUint16 distinguishes an absent geometry attribute from one whose
// bytes cannot be decoded as an unsigned short.
func requiredUint16(ds *dicom.Dataset, t tag.Tag) (uint16, error) {
	e, ok := ds.Get(t)
	if !ok {
		return 0, errs.NewMissingRequiredTagError(t)
	}
	v, ok := e.Uint16()
	if !ok {
		return 0, errs.NewInvalidTagValueError(t, "not a decodable unsigned short")
	}
	return v, nil
}

func readPixelSpacing(ds *dicom.Dataset) Spacing {
	vals, ok := ds.GetFloat64s(tag.PixelSpacing)
	if !ok || len(vals) != 2 || vals[0] <= 0 || vals[1] <= 0 {
		return Spacing{X: 1.0, Y: 1.0}
	}
	// PixelSpacing is row spacing (y) then column spacing (x) on the wire.
	return Spacing{X: vals[1], Y: vals[0]}
}

func rescaleIsDefault(slope, intercept float64) bool {
	return slope == 1.0 && intercept == 0.0
}

func decodeUint8(raw []byte, slope, intercept float64) []byte {
	out := append([]byte(nil), raw...)
	if rescaleIsDefault(slope, intercept) {
		return out
	}
	for i, v := range out {
		out[i] = uint8(clamp(math.Round(float64(v)*slope+intercept), 0, math.MaxUint8))
	}
	return out
}

func decodeUint16(raw []byte, order binary.ByteOrder, slope, intercept float64) []byte {
	out := make([]byte, len(raw))
	identity := rescaleIsDefault(slope, intercept)
	for i := 0; i+1 < len(raw); i += 2 {
		v := order.Uint16(raw[i : i+2])
		if !identity {
			v = uint16(clamp(math.Round(float64(v)*slope+intercept), 0, math.MaxUint16))
		}
		binary.LittleEndian.PutUint16(out[i:i+2], v)
	}
	return out
}

func decodeInt16(raw []byte, order binary.ByteOrder, slope, intercept float64) []byte {
	out := make([]byte, len(raw))
	identity := rescaleIsDefault(slope, intercept)
	for i := 0; i+1 < len(raw); i += 2 {
		v := int16(order.Uint16(raw[i : i+2]))
		if !identity {
			v = int16(clamp(math.Round(float64(v)*slope+intercept), math.MinInt16, math.MaxInt16))
		}
		binary.LittleEndian.PutUint16(out[i:i+2], uint16(v))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
