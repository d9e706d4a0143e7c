package dicom

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/caio-sobreiro/dicomvol/tag"
)

// DataElement is one decoded attribute: its tag, the VR it was encoded with
// (empty under implicit VR), the declared value length and the raw value
// bytes. Elements are immutable once constructed; the typed accessors are
// pure views over Value and report absent or malformed values as ok=false
// instead of failing.
type DataElement struct {
	Tag         tag.Tag
	VR          string
	ValueLength uint32
	Value       []byte

	order binary.ByteOrder
}

// NewDataElement creates a little-endian data element. The parser builds
// elements directly with the byte order of the captured transfer syntax.
func NewDataElement(t tag.Tag, vr string, value []byte) *DataElement {
	return &DataElement{Tag: t, VR: vr, ValueLength: uint32(len(value)), Value: value, order: binary.LittleEndian}
}

func (e *DataElement) byteOrder() binary.ByteOrder {
	if e.order == nil {
		return binary.LittleEndian
	}
	return e.order
}

// String returns the value as a text string with trailing null and space
// padding removed. ok is false for empty values.
func (e *DataElement) String() (string, bool) {
	s := strings.TrimRight(string(e.Value), "\x00 ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Strings splits a multi-valued text value on the DICOM "\" delimiter,
// trimming padding from each component.
func (e *DataElement) Strings() ([]string, bool) {
	s, ok := e.String()
	if !ok {
		return nil, false
	}
	parts := strings.Split(s, "\\")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, true
}

// Uint16 decodes a 2-byte binary unsigned value (VR US).
func (e *DataElement) Uint16() (uint16, bool) {
	if len(e.Value) < 2 {
		return 0, false
	}
	return e.byteOrder().Uint16(e.Value[:2]), true
}

// Uint32 decodes a 4-byte binary unsigned value (VR UL).
func (e *DataElement) Uint32() (uint32, bool) {
	if len(e.Value) < 4 {
		return 0, false
	}
	return e.byteOrder().Uint32(e.Value[:4]), true
}

// Int decodes an integer value. An explicit VR picks the decode directly:
// binary for US/SS/UL/SL, decimal text for IS. Binary values whose bytes
// happen to be ASCII digits must never be read as text, so the text path only
// runs for IS and for implicit VR, where the text form is tried first and a
// 2- or 4-byte binary decode is the fallback.
func (e *DataElement) Int() (int, bool) {
	switch e.VR {
	case VR_US:
		v, ok := e.Uint16()
		return int(v), ok
	case VR_SS:
		v, ok := e.Uint16()
		return int(int16(v)), ok
	case VR_UL:
		v, ok := e.Uint32()
		return int(v), ok
	case VR_SL:
		v, ok := e.Uint32()
		return int(int32(v)), ok
	case VR_IS:
		return e.intFromString()
	}

	if n, ok := e.intFromString(); ok {
		return n, true
	}
	switch len(e.Value) {
	case 2:
		v, ok := e.Uint16()
		return int(v), ok
	case 4:
		v, ok := e.Uint32()
		return int(v), ok
	}
	return 0, false
}

func (e *DataElement) intFromString() (int, bool) {
	s, ok := e.String()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 decodes a single DS decimal string value. Multi-valued elements
// yield their first component.
func (e *DataElement) Float64() (float64, bool) {
	vals, ok := e.Float64s()
	if !ok || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

// Float64s decodes a multi-valued DS decimal string. Any non-numeric
// component makes the whole value malformed.
func (e *DataElement) Float64s() ([]float64, bool) {
	parts, ok := e.Strings()
	if !ok {
		return nil, false
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		vals[i] = f
	}
	return vals, true
}

// Date decodes a DA value in yyyymmdd form.
func (e *DataElement) Date() (time.Time, bool) {
	s, ok := e.String()
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
