// Package tag defines the DICOM tag value type and the standard attribute dictionary.
package tag

import "fmt"

// Tag identifies a DICOM attribute by its (group, element) pair.
type Tag struct {
	Group   uint16
	Element uint16
}

// New creates a new Tag.
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// String returns the tag in (gggg,eeee) format.
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

// Key returns the tag packed into a single 32-bit value, group in the high bits.
func (t Tag) Key() uint32 {
	return uint32(t.Group)<<16 | uint32(t.Element)
}

// Compare orders tags numerically: negative if t < other, 0 if equal, positive otherwise.
func (t Tag) Compare(other Tag) int {
	switch {
	case t.Key() < other.Key():
		return -1
	case t.Key() > other.Key():
		return 1
	default:
		return 0
	}
}

// IsFileMeta returns true if the tag belongs to the File Meta Information group.
func (t Tag) IsFileMeta() bool {
	return t.Group == 0x0002
}

// IsPrivate returns true for private tags (odd group number).
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// File Meta Information (group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID     = Tag{0x0002, 0x0003}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	ImplementationClassUID         = Tag{0x0002, 0x0012}
)

// Patient module (group 0010)
var (
	PatientName      = Tag{0x0010, 0x0010}
	PatientID        = Tag{0x0010, 0x0020}
	PatientBirthDate = Tag{0x0010, 0x0030}
	PatientSex       = Tag{0x0010, 0x0040}
	PatientAge       = Tag{0x0010, 0x1010}
)

// General study module
var (
	StudyDate        = Tag{0x0008, 0x0020}
	StudyTime        = Tag{0x0008, 0x0030}
	AccessionNumber  = Tag{0x0008, 0x0050}
	StudyDescription = Tag{0x0008, 0x1030}
	StudyInstanceUID = Tag{0x0020, 0x000D}
)

// General series module
var (
	Modality          = Tag{0x0008, 0x0060}
	SeriesDescription = Tag{0x0008, 0x103E}
	SeriesInstanceUID = Tag{0x0020, 0x000E}
	SeriesNumber      = Tag{0x0020, 0x0011}
	BodyPartExamined  = Tag{0x0018, 0x0015}
)

// SOP common / image plane module
var (
	SOPClassUID             = Tag{0x0008, 0x0016}
	SOPInstanceUID          = Tag{0x0008, 0x0018}
	InstanceNumber          = Tag{0x0020, 0x0013}
	ImagePositionPatient    = Tag{0x0020, 0x0032}
	ImageOrientationPatient = Tag{0x0020, 0x0037}
	SliceLocation           = Tag{0x0020, 0x1041}
	SliceThickness          = Tag{0x0018, 0x0050}
	SpacingBetweenSlices    = Tag{0x0018, 0x0088}
)

// Image pixel module
var (
	SamplesPerPixel           = Tag{0x0028, 0x0002}
	PhotometricInterpretation = Tag{0x0028, 0x0004}
	Rows                      = Tag{0x0028, 0x0010}
	Columns                   = Tag{0x0028, 0x0011}
	PixelSpacing              = Tag{0x0028, 0x0030}
	BitsAllocated             = Tag{0x0028, 0x0100}
	BitsStored                = Tag{0x0028, 0x0101}
	HighBit                   = Tag{0x0028, 0x0102}
	PixelRepresentation       = Tag{0x0028, 0x0103}
	WindowCenter              = Tag{0x0028, 0x1050}
	WindowWidth               = Tag{0x0028, 0x1051}
	RescaleIntercept          = Tag{0x0028, 0x1052}
	RescaleSlope              = Tag{0x0028, 0x1053}
	PixelData                 = Tag{0x7FE0, 0x0010}
)

// General equipment module
var (
	Manufacturer    = Tag{0x0008, 0x0070}
	InstitutionName = Tag{0x0008, 0x0080}
)
