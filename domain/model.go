// Package domain projects a flat DICOM dataset into the
// patient/study/series/image hierarchy used by the rest of the suite.
package domain

import (
	"time"

	"github.com/caio-sobreiro/dicomvol/pixel"
)

// Defaults substituted for optional descriptive fields.
const (
	UnknownPatientName = "Unknown Patient"
	UnknownStudyName   = "Unknown Study"
	UnknownSex         = "unknown"
	DefaultModality    = "OT" // "other"
)

// Patient identifies the imaging subject. PatientID is the identity key;
// the remaining fields default when absent.
type Patient struct {
	PatientID string
	Name      string
	BirthDate *time.Time
	Sex       string

	// Age in whole years, from the PatientAge attribute. Nil when absent
	// or malformed.
	Age *int
}

// Study is one imaging encounter of a patient.
type Study struct {
	StudyInstanceUID string
	StudyDate        *time.Time
	Description      string
	AccessionNumber  string
	Modalities       []string
	Patient          Patient
}

// Series is a stack of related images acquired together.
type Series struct {
	SeriesInstanceUID string
	SeriesNumber      *int
	Description       string
	Modality          string
	Images            []ImageInstance
}

// WithImages returns a copy of the series holding the given images. Series
// values are never mutated in place; updates produce a new value.
func (s Series) WithImages(images []ImageInstance) Series {
	s.Images = images
	return s
}

// ImageInstance is one 2D image slice. SOPInstanceUID is the identity key;
// geometry fields are nil when the source dataset does not carry them in a
// well-formed way.
type ImageInstance struct {
	SOPInstanceUID   string
	InstanceNumber   *int
	Rows             int
	Columns          int
	PixelSpacing     *pixel.Spacing
	ImagePosition    *[3]float64
	ImageOrientation *[6]float64
	SliceLocation    *float64
}

// ZPosition returns the slice's position along the z axis: SliceLocation
// when present, otherwise the z component of ImagePositionPatient.
func (img ImageInstance) ZPosition() (float64, bool) {
	if img.SliceLocation != nil {
		return *img.SliceLocation, true
	}
	if img.ImagePosition != nil {
		return img.ImagePosition[2], true
	}
	return 0, false
}

// Hierarchy bundles the mapped levels for a single file.
type Hierarchy struct {
	Patient Patient
	Study   Study
	Series  Series
	Image   ImageInstance
}
