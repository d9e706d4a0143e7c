package pixel

import "math"

// WindowTo8Bit maps a stored (already rescaled) value through a linear
// window of center ± width/2 onto the 0-255 display range, per the DICOM
// VOI LUT linear function. Values below the window floor clamp to 0, above
// the ceiling to 255.
func WindowTo8Bit(value, center, width float64) uint8 {
	if width < 1 {
		width = 1
	}
	lower := center - width/2
	upper := center + width/2
	switch {
	case value <= lower:
		return 0
	case value >= upper:
		return math.MaxUint8
	default:
		return uint8(math.Round((value - lower) / width * math.MaxUint8))
	}
}

// Window applies WindowTo8Bit to every voxel of a decoded monochrome buffer,
// producing one display byte per pixel. Signed 16-bit, unsigned 16-bit and
// 8-bit buffers are supported; the descriptor's own center/width are used.
// RGB and other non-monochrome buffers have no windowing and yield nil.
func (p *ProcessedPixelData) Window() []byte {
	if p.SamplesPerPixel != 1 {
		return nil
	}

	n := p.Rows * p.Columns
	switch p.BitsAllocated {
	case 8:
		out := make([]byte, n)
		for i := 0; i < n && i < len(p.Pixels); i++ {
			out[i] = WindowTo8Bit(float64(p.Pixels[i]), p.WindowCenter, p.WindowWidth)
		}
		return out
	case 16:
		out := make([]byte, n)
		for i := 0; i < n && 2*i+1 < len(p.Pixels); i++ {
			raw := uint16(p.Pixels[2*i]) | uint16(p.Pixels[2*i+1])<<8
			var v float64
			if p.PixelRepresentation == 1 {
				v = float64(int16(raw))
			} else {
				v = float64(raw)
			}
			out[i] = WindowTo8Bit(v, p.WindowCenter, p.WindowWidth)
		}
		return out
	}
	return nil
}
