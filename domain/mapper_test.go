package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/dicomvol/dicom"
	"github.com/caio-sobreiro/dicomvol/pixel"
	"github.com/caio-sobreiro/dicomvol/tag"
)

func textEl(t tag.Tag, s string) *dicom.DataElement {
	return dicom.NewDataElement(t, "", []byte(s))
}

// fullDataset carries every identity key plus common descriptive fields.
func fullDataset() *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.Set(textEl(tag.PatientID, "P001"))
	ds.Set(textEl(tag.PatientName, "Doe^John"))
	ds.Set(textEl(tag.PatientSex, "M"))
	ds.Set(textEl(tag.PatientBirthDate, "19700102"))
	ds.Set(textEl(tag.PatientAge, "054Y"))
	ds.Set(textEl(tag.StudyInstanceUID, "1.2.3"))
	ds.Set(textEl(tag.StudyDescription, "Chest CT"))
	ds.Set(textEl(tag.StudyDate, "20240115"))
	ds.Set(textEl(tag.SeriesInstanceUID, "1.2.3.4"))
	ds.Set(textEl(tag.SeriesNumber, "2"))
	ds.Set(textEl(tag.Modality, "CT"))
	ds.Set(textEl(tag.SOPInstanceUID, "1.2.3.4.5"))
	ds.Set(textEl(tag.InstanceNumber, "7"))
	ds.Set(textEl(tag.ImagePositionPatient, `-125.0\-125.0\37.5`))
	ds.Set(textEl(tag.ImageOrientationPatient, `1\0\0\0\1\0`))
	ds.Set(textEl(tag.SliceLocation, "37.5"))
	return ds
}

func TestMapPatient(t *testing.T) {
	p, ok := MapPatient(fullDataset())
	require.True(t, ok)

	assert.Equal(t, "P001", p.PatientID)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "male", p.Sex)
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	require.NotNil(t, p.Age)
	assert.Equal(t, 54, *p.Age)
}

func TestMapPatientDefaults(t *testing.T) {
	ds := dicom.NewDataset()
	ds.Set(textEl(tag.PatientID, "P001"))

	p, ok := MapPatient(ds)
	require.True(t, ok)
	assert.Equal(t, UnknownPatientName, p.Name)
	assert.Equal(t, UnknownSex, p.Sex)
	assert.Nil(t, p.BirthDate)
	assert.Nil(t, p.Age)
}

func TestMapPatientRequiresID(t *testing.T) {
	ds := dicom.NewDataset()
	ds.Set(textEl(tag.PatientName, "Doe^John"))

	_, ok := MapPatient(ds)
	assert.False(t, ok)
}

func TestMapPatientSex(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "M", want: "male"},
		{raw: "F", want: "female"},
		{raw: "O", want: "other"},
		{raw: "m", want: "male"},
		{raw: "X", want: UnknownSex},
		{raw: "", want: UnknownSex},
	}

	for _, tt := range tests {
		t.Run("sex "+tt.raw, func(t *testing.T) {
			ds := dicom.NewDataset()
			ds.Set(textEl(tag.PatientID, "P001"))
			if tt.raw != "" {
				ds.Set(textEl(tag.PatientSex, tt.raw))
			}
			p, ok := MapPatient(ds)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Sex)
		})
	}
}

func TestMapStudy(t *testing.T) {
	s, ok := MapStudy(fullDataset())
	require.True(t, ok)

	assert.Equal(t, "1.2.3", s.StudyInstanceUID)
	assert.Equal(t, "Chest CT", s.Description)
	assert.Equal(t, []string{"CT"}, s.Modalities)
	assert.Equal(t, "P001", s.Patient.PatientID)
	require.NotNil(t, s.StudyDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *s.StudyDate)
}

func TestMapStudyDefaults(t *testing.T) {
	ds := dicom.NewDataset()
	ds.Set(textEl(tag.PatientID, "P001"))
	ds.Set(textEl(tag.StudyInstanceUID, "1.2.3"))

	s, ok := MapStudy(ds)
	require.True(t, ok)
	assert.Equal(t, UnknownStudyName, s.Description)
	assert.Equal(t, []string{DefaultModality}, s.Modalities)
	assert.Nil(t, s.StudyDate)
}

func TestMapStudyRequiresKeys(t *testing.T) {
	t.Run("missing study uid", func(t *testing.T) {
		ds := dicom.NewDataset()
		ds.Set(textEl(tag.PatientID, "P001"))
		_, ok := MapStudy(ds)
		assert.False(t, ok)
	})

	t.Run("missing patient id", func(t *testing.T) {
		ds := dicom.NewDataset()
		ds.Set(textEl(tag.StudyInstanceUID, "1.2.3"))
		_, ok := MapStudy(ds)
		assert.False(t, ok)
	})
}

func TestMapSeries(t *testing.T) {
	s, ok := MapSeries(fullDataset())
	require.True(t, ok)

	assert.Equal(t, "1.2.3.4", s.SeriesInstanceUID)
	assert.Equal(t, "CT", s.Modality)
	require.NotNil(t, s.SeriesNumber)
	assert.Equal(t, 2, *s.SeriesNumber)
	assert.Empty(t, s.Images)
}

func TestMapSeriesDefaults(t *testing.T) {
	ds := dicom.NewDataset()
	ds.Set(textEl(tag.SeriesInstanceUID, "1.2.3.4"))

	s, ok := MapSeries(ds)
	require.True(t, ok)
	assert.Equal(t, DefaultModality, s.Modality)
	assert.Nil(t, s.SeriesNumber)
}

func TestMapImage(t *testing.T) {
	px := &pixel.ProcessedPixelData{Rows: 128, Columns: 256, PixelSpacing: pixel.Spacing{X: 0.7, Y: 0.7}}

	img, ok := MapImage(fullDataset(), px)
	require.True(t, ok)

	assert.Equal(t, "1.2.3.4.5", img.SOPInstanceUID)
	assert.Equal(t, 128, img.Rows)
	assert.Equal(t, 256, img.Columns)
	require.NotNil(t, img.InstanceNumber)
	assert.Equal(t, 7, *img.InstanceNumber)
	require.NotNil(t, img.ImagePosition)
	assert.Equal(t, [3]float64{-125.0, -125.0, 37.5}, *img.ImagePosition)
	require.NotNil(t, img.ImageOrientation)
	assert.Equal(t, [6]float64{1, 0, 0, 0, 1, 0}, *img.ImageOrientation)
	require.NotNil(t, img.SliceLocation)
	assert.Equal(t, 37.5, *img.SliceLocation)
	require.NotNil(t, img.PixelSpacing)
	assert.Equal(t, pixel.Spacing{X: 0.7, Y: 0.7}, *img.PixelSpacing)
}

func TestMapImageMalformedGeometry(t *testing.T) {
	tests := []struct {
		name  string
		tag   tag.Tag
		value string
	}{
		{name: "position with two components", tag: tag.ImagePositionPatient, value: `1\2`},
		{name: "position with four components", tag: tag.ImagePositionPatient, value: `1\2\3\4`},
		{name: "position non numeric", tag: tag.ImagePositionPatient, value: `1\x\3`},
		{name: "orientation with five components", tag: tag.ImageOrientationPatient, value: `1\0\0\0\1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dicom.NewDataset()
			ds.Set(textEl(tag.SOPInstanceUID, "1.2.3.4.5"))
			ds.Set(textEl(tt.tag, tt.value))

			img, ok := MapImage(ds, nil)
			require.True(t, ok, "malformed optional geometry never fails the mapping")
			assert.Nil(t, img.ImagePosition)
			assert.Nil(t, img.ImageOrientation)
		})
	}
}

func TestMapHierarchyShortCircuits(t *testing.T) {
	keys := []tag.Tag{tag.PatientID, tag.StudyInstanceUID, tag.SeriesInstanceUID, tag.SOPInstanceUID}

	for _, missing := range keys {
		t.Run("missing "+tag.Name(missing), func(t *testing.T) {
			full := fullDataset()
			ds := dicom.NewDataset()
			for _, tg := range full.Tags() {
				if tg == missing {
					continue
				}
				e, _ := full.Get(tg)
				ds.Set(e)
			}

			h, ok := MapHierarchy(ds, nil)
			assert.False(t, ok)
			assert.Equal(t, Hierarchy{}, h, "no partially populated hierarchy")
		})
	}
}

func TestMapHierarchy(t *testing.T) {
	px := &pixel.ProcessedPixelData{Rows: 128, Columns: 128}

	h, ok := MapHierarchy(fullDataset(), px)
	require.True(t, ok)
	assert.Equal(t, "P001", h.Patient.PatientID)
	assert.Equal(t, "1.2.3", h.Study.StudyInstanceUID)
	assert.Equal(t, "1.2.3.4", h.Series.SeriesInstanceUID)
	require.Len(t, h.Series.Images, 1)
	assert.Equal(t, h.Image, h.Series.Images[0])
}

func TestParseAgeString(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{input: "045Y", want: 45, wantOK: true},
		{input: "030M", want: 2, wantOK: true},
		{input: "104W", want: 2, wantOK: true},
		{input: "730D", want: 2, wantOK: true},
		{input: "000Y", want: 0, wantOK: true},
		{input: "45Y", wantOK: false},
		{input: "045X", wantOK: false},
		{input: "abcY", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run("age "+tt.input, func(t *testing.T) {
			got, ok := ParseAgeString(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageZPosition(t *testing.T) {
	loc := 42.5
	pos := [3]float64{0, 0, 10.0}

	t.Run("slice location wins", func(t *testing.T) {
		img := ImageInstance{SliceLocation: &loc, ImagePosition: &pos}
		z, ok := img.ZPosition()
		require.True(t, ok)
		assert.Equal(t, 42.5, z)
	})

	t.Run("image position fallback", func(t *testing.T) {
		img := ImageInstance{ImagePosition: &pos}
		z, ok := img.ZPosition()
		require.True(t, ok)
		assert.Equal(t, 10.0, z)
	})

	t.Run("absent", func(t *testing.T) {
		img := ImageInstance{}
		_, ok := img.ZPosition()
		assert.False(t, ok)
	})
}
