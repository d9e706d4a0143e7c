package tag

// Entry describes a standard attribute: its name and the VR it carries under
// implicit VR encoding.
type Entry struct {
	Name string
	VR   string
}

// Lookup returns the dictionary entry for a tag. Unknown tags yield a
// placeholder entry and ok=false; Lookup never fails.
func Lookup(t Tag) (Entry, bool) {
	e, ok := dictionary[t]
	if !ok {
		return Entry{Name: "Unknown", VR: "UN"}, false
	}
	return e, true
}

// Name returns the attribute name for a tag, or "Unknown".
func Name(t Tag) string {
	e, _ := Lookup(t)
	return e.Name
}

// dictionary is the compiled-in subset of the DICOM data dictionary covering
// the attributes this module reads or writes.
var dictionary = map[Tag]Entry{
	FileMetaInformationGroupLength: {"FileMetaInformationGroupLength", "UL"},
	MediaStorageSOPClassUID:        {"MediaStorageSOPClassUID", "UI"},
	MediaStorageSOPInstanceUID:     {"MediaStorageSOPInstanceUID", "UI"},
	TransferSyntaxUID:              {"TransferSyntaxUID", "UI"},
	ImplementationClassUID:         {"ImplementationClassUID", "UI"},

	PatientName:      {"PatientName", "PN"},
	PatientID:        {"PatientID", "LO"},
	PatientBirthDate: {"PatientBirthDate", "DA"},
	PatientSex:       {"PatientSex", "CS"},
	PatientAge:       {"PatientAge", "AS"},

	StudyDate:        {"StudyDate", "DA"},
	StudyTime:        {"StudyTime", "TM"},
	AccessionNumber:  {"AccessionNumber", "SH"},
	StudyDescription: {"StudyDescription", "LO"},
	StudyInstanceUID: {"StudyInstanceUID", "UI"},

	Modality:          {"Modality", "CS"},
	SeriesDescription: {"SeriesDescription", "LO"},
	SeriesInstanceUID: {"SeriesInstanceUID", "UI"},
	SeriesNumber:      {"SeriesNumber", "IS"},
	BodyPartExamined:  {"BodyPartExamined", "CS"},

	SOPClassUID:             {"SOPClassUID", "UI"},
	SOPInstanceUID:          {"SOPInstanceUID", "UI"},
	InstanceNumber:          {"InstanceNumber", "IS"},
	ImagePositionPatient:    {"ImagePositionPatient", "DS"},
	ImageOrientationPatient: {"ImageOrientationPatient", "DS"},
	SliceLocation:           {"SliceLocation", "DS"},
	SliceThickness:          {"SliceThickness", "DS"},
	SpacingBetweenSlices:    {"SpacingBetweenSlices", "DS"},

	SamplesPerPixel:           {"SamplesPerPixel", "US"},
	PhotometricInterpretation: {"PhotometricInterpretation", "CS"},
	Rows:                      {"Rows", "US"},
	Columns:                   {"Columns", "US"},
	PixelSpacing:              {"PixelSpacing", "DS"},
	BitsAllocated:             {"BitsAllocated", "US"},
	BitsStored:                {"BitsStored", "US"},
	HighBit:                   {"HighBit", "US"},
	PixelRepresentation:       {"PixelRepresentation", "US"},
	WindowCenter:              {"WindowCenter", "DS"},
	WindowWidth:               {"WindowWidth", "DS"},
	RescaleIntercept:          {"RescaleIntercept", "DS"},
	RescaleSlope:              {"RescaleSlope", "DS"},
	PixelData:                 {"PixelData", "OW"},

	Manufacturer:    {"Manufacturer", "LO"},
	InstitutionName: {"InstitutionName", "LO"},
}
