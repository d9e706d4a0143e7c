package dicom

import (
	"sort"

	"github.com/caio-sobreiro/dicomvol/tag"
)

// Dataset is a tag-keyed collection of decoded data elements plus the
// transfer syntax it was encoded with. The parser populates it element by
// element during a single pass; downstream consumers treat it as read-only.
// Setting a tag twice keeps the last element.
type Dataset struct {
	TransferSyntax TransferSyntax

	elements map[tag.Tag]*DataElement
}

// NewDataset creates a new empty dataset encoded as Explicit VR Little Endian.
func NewDataset() *Dataset {
	return &Dataset{
		TransferSyntax: ExplicitVRLittleEndian,
		elements:       make(map[tag.Tag]*DataElement),
	}
}

// Set stores an element, replacing any previous element with the same tag.
func (d *Dataset) Set(e *DataElement) {
	d.elements[e.Tag] = e
}

// Get returns the element for a tag.
func (d *Dataset) Get(t tag.Tag) (*DataElement, bool) {
	e, ok := d.elements[t]
	return e, ok
}

// Has reports whether the dataset contains an element for the tag.
func (d *Dataset) Has(t tag.Tag) bool {
	_, ok := d.elements[t]
	return ok
}

// Len returns the number of elements in the dataset.
func (d *Dataset) Len() int {
	return len(d.elements)
}

// Tags returns all tags in ascending numeric order.
func (d *Dataset) Tags() []tag.Tag {
	tags := make([]tag.Tag, 0, len(d.elements))
	for t := range d.elements {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key() < tags[j].Key() })
	return tags
}

// GetString returns the trimmed string value for a tag.
func (d *Dataset) GetString(t tag.Tag) (string, bool) {
	e, ok := d.elements[t]
	if !ok {
		return "", false
	}
	return e.String()
}

// GetStringDefault returns the string value for a tag, or def when absent.
func (d *Dataset) GetStringDefault(t tag.Tag, def string) string {
	if s, ok := d.GetString(t); ok {
		return s
	}
	return def
}

// GetUint16 returns the binary unsigned short value for a tag.
func (d *Dataset) GetUint16(t tag.Tag) (uint16, bool) {
	e, ok := d.elements[t]
	if !ok {
		return 0, false
	}
	return e.Uint16()
}

// GetUint16Default returns the unsigned short value for a tag, or def when
// absent or malformed.
func (d *Dataset) GetUint16Default(t tag.Tag, def uint16) uint16 {
	if v, ok := d.GetUint16(t); ok {
		return v
	}
	return def
}

// GetInt returns the integer value for a tag.
func (d *Dataset) GetInt(t tag.Tag) (int, bool) {
	e, ok := d.elements[t]
	if !ok {
		return 0, false
	}
	return e.Int()
}

// GetFloat64 returns the first decimal string component for a tag.
func (d *Dataset) GetFloat64(t tag.Tag) (float64, bool) {
	e, ok := d.elements[t]
	if !ok {
		return 0, false
	}
	return e.Float64()
}

// GetFloat64Default returns the decimal value for a tag, or def when absent
// or malformed.
func (d *Dataset) GetFloat64Default(t tag.Tag, def float64) float64 {
	if v, ok := d.GetFloat64(t); ok {
		return v
	}
	return def
}

// GetFloat64s returns all decimal string components for a tag.
func (d *Dataset) GetFloat64s(t tag.Tag) ([]float64, bool) {
	e, ok := d.elements[t]
	if !ok {
		return nil, false
	}
	return e.Float64s()
}

// GetBytes returns the raw value bytes for a tag.
func (d *Dataset) GetBytes(t tag.Tag) ([]byte, bool) {
	e, ok := d.elements[t]
	if !ok {
		return nil, false
	}
	return e.Value, true
}
