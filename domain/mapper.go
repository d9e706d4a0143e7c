package domain

import (
	"strconv"
	"strings"

	"github.com/caio-sobreiro/dicomvol/dicom"
	"github.com/caio-sobreiro/dicomvol/pixel"
	"github.com/caio-sobreiro/dicomvol/tag"
)

// The mappers are pure and total with a documented partiality: each returns
// ok=false when the level's identity key is missing, and never fails on
// optional fields, which get their documented defaults instead.

// MapPatient maps the patient level. Requires PatientID.
func MapPatient(ds *dicom.Dataset) (Patient, bool) {
	id, ok := ds.GetString(tag.PatientID)
	if !ok {
		return Patient{}, false
	}

	p := Patient{
		PatientID: id,
		Name:      UnknownPatientName,
		Sex:       UnknownSex,
	}

	if raw, ok := ds.GetString(tag.PatientName); ok {
		if formatted := ParsePersonName(raw).Formatted(); formatted != "" {
			p.Name = formatted
		}
	}
	if e, ok := ds.Get(tag.PatientBirthDate); ok {
		if d, ok := e.Date(); ok {
			p.BirthDate = &d
		}
	}
	if raw, ok := ds.GetString(tag.PatientAge); ok {
		if age, ok := ParseAgeString(raw); ok {
			p.Age = &age
		}
	}
	if sex, ok := ds.GetString(tag.PatientSex); ok {
		switch strings.ToUpper(sex) {
		case "M":
			p.Sex = "male"
		case "F":
			p.Sex = "female"
		case "O":
			p.Sex = "other"
		}
	}
	return p, true
}

// MapStudy maps the study level. Requires StudyInstanceUID and a mappable
// patient.
func MapStudy(ds *dicom.Dataset) (Study, bool) {
	uid, ok := ds.GetString(tag.StudyInstanceUID)
	if !ok {
		return Study{}, false
	}
	patient, ok := MapPatient(ds)
	if !ok {
		return Study{}, false
	}

	s := Study{
		StudyInstanceUID: uid,
		Description:      ds.GetStringDefault(tag.StudyDescription, UnknownStudyName),
		AccessionNumber:  ds.GetStringDefault(tag.AccessionNumber, ""),
		Patient:          patient,
	}
	if e, ok := ds.Get(tag.StudyDate); ok {
		if d, ok := e.Date(); ok {
			s.StudyDate = &d
		}
	}
	if modality, ok := ds.GetString(tag.Modality); ok {
		s.Modalities = []string{modality}
	} else {
		s.Modalities = []string{DefaultModality}
	}
	return s, true
}

// MapSeries maps the series level without images. Requires SeriesInstanceUID.
func MapSeries(ds *dicom.Dataset) (Series, bool) {
	uid, ok := ds.GetString(tag.SeriesInstanceUID)
	if !ok {
		return Series{}, false
	}

	s := Series{
		SeriesInstanceUID: uid,
		Description:       ds.GetStringDefault(tag.SeriesDescription, ""),
		Modality:          ds.GetStringDefault(tag.Modality, DefaultModality),
	}
	if n, ok := ds.GetInt(tag.SeriesNumber); ok {
		s.SeriesNumber = &n
	}
	return s, true
}

// MapImage maps the image level from the dataset and its decoded pixel
// descriptor. Requires SOPInstanceUID.
func MapImage(ds *dicom.Dataset, px *pixel.ProcessedPixelData) (ImageInstance, bool) {
	uid, ok := ds.GetString(tag.SOPInstanceUID)
	if !ok {
		return ImageInstance{}, false
	}

	img := ImageInstance{SOPInstanceUID: uid}
	if px != nil {
		img.Rows = px.Rows
		img.Columns = px.Columns
		spacing := px.PixelSpacing
		img.PixelSpacing = &spacing
	}
	if n, ok := ds.GetInt(tag.InstanceNumber); ok {
		img.InstanceNumber = &n
	}
	if pos, ok := parseFloats(ds, tag.ImagePositionPatient, 3); ok {
		img.ImagePosition = &[3]float64{pos[0], pos[1], pos[2]}
	}
	if orient, ok := parseFloats(ds, tag.ImageOrientationPatient, 6); ok {
		img.ImageOrientation = &[6]float64{orient[0], orient[1], orient[2], orient[3], orient[4], orient[5]}
	}
	if loc, ok := ds.GetFloat64(tag.SliceLocation); ok {
		img.SliceLocation = &loc
	}
	return img, true
}

// MapHierarchy maps all four levels and short-circuits: it returns ok=false
// as soon as any required level fails, never a partially populated hierarchy.
func MapHierarchy(ds *dicom.Dataset, px *pixel.ProcessedPixelData) (Hierarchy, bool) {
	patient, ok := MapPatient(ds)
	if !ok {
		return Hierarchy{}, false
	}
	study, ok := MapStudy(ds)
	if !ok {
		return Hierarchy{}, false
	}
	series, ok := MapSeries(ds)
	if !ok {
		return Hierarchy{}, false
	}
	image, ok := MapImage(ds, px)
	if !ok {
		return Hierarchy{}, false
	}

	return Hierarchy{
		Patient: patient,
		Study:   study,
		Series:  series.WithImages([]ImageInstance{image}),
		Image:   image,
	}, true
}

// ParseAgeString converts a DICOM AS value (three digits plus a Y/M/W/D unit
// code) to whole years. Malformed strings are absent, not zero.
func ParseAgeString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:3])
	if err != nil {
		return 0, false
	}
	switch s[3] {
	case 'Y':
		return n, true
	case 'M':
		return n / 12, true
	case 'W':
		return n / 52, true
	case 'D':
		return n / 365, true
	}
	return 0, false
}

// parseFloats reads a multi-valued numeric attribute and requires exactly
// want components; any other count or a non-numeric component is absent.
func parseFloats(ds *dicom.Dataset, t tag.Tag, want int) ([]float64, bool) {
	vals, ok := ds.GetFloat64s(t)
	if !ok || len(vals) != want {
		return nil, false
	}
	return vals, true
}
