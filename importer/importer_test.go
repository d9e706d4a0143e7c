package importer

import (
	"context"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/dicomvol/dicom"
	errs "github.com/caio-sobreiro/dicomvol/errors"
	"github.com/caio-sobreiro/dicomvol/tag"
)

// fakeSource serves in-memory files so no import test touches the disk.
type fakeSource struct {
	files   map[string][]byte
	listErr error
}

func (f fakeSource) List(_ context.Context, _ string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (f fakeSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func quietImporter(src fakeSource) *Importer {
	return New(
		WithSource(src),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

type sliceFile struct {
	patientID string
	seriesUID string
	sopUID    string
	instance  int
	sliceLoc  float64
	rows      uint16
	cols      uint16
}

// encode renders the slice as an Explicit VR Little Endian Part 10 file.
func (s sliceFile) encode() []byte {
	buf := make([]byte, 128)
	buf = append(buf, "DICM"...)

	short := func(t tag.Tag, vr string, value []byte) {
		if len(value)%2 == 1 {
			value = append(value, ' ')
		}
		buf = binary.LittleEndian.AppendUint16(buf, t.Group)
		buf = binary.LittleEndian.AppendUint16(buf, t.Element)
		buf = append(buf, vr...)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(value)))
		buf = append(buf, value...)
	}
	long := func(t tag.Tag, vr string, value []byte) {
		buf = binary.LittleEndian.AppendUint16(buf, t.Group)
		buf = binary.LittleEndian.AppendUint16(buf, t.Element)
		buf = append(buf, vr...)
		buf = append(buf, 0, 0)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
		buf = append(buf, value...)
	}
	us := func(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

	short(tag.TransferSyntaxUID, dicom.VR_UI, []byte(dicom.ExplicitVRLittleEndianUID+"\x00"))

	short(tag.Modality, dicom.VR_CS, []byte("CT"))
	short(tag.SOPInstanceUID, dicom.VR_UI, []byte(s.sopUID))
	short(tag.PatientName, dicom.VR_PN, []byte("Doe^John"))
	if s.patientID != "" {
		short(tag.PatientID, dicom.VR_LO, []byte(s.patientID))
	}
	short(tag.StudyInstanceUID, dicom.VR_UI, []byte("1.2.840.1.1"))
	short(tag.SeriesInstanceUID, dicom.VR_UI, []byte(s.seriesUID))
	short(tag.InstanceNumber, dicom.VR_IS, []byte(fmt.Sprintf("%d", s.instance)))
	short(tag.SliceLocation, dicom.VR_DS, []byte(fmt.Sprintf("%.1f", s.sliceLoc)))
	short(tag.Rows, dicom.VR_US, us(s.rows))
	short(tag.Columns, dicom.VR_US, us(s.cols))
	short(tag.BitsAllocated, dicom.VR_US, us(16))
	short(tag.PixelRepresentation, dicom.VR_US, us(1))
	short(tag.PixelSpacing, dicom.VR_DS, []byte(`0.7\0.7`))

	pixels := make([]byte, int(s.rows)*int(s.cols)*2)
	for i := range pixels {
		pixels[i] = byte(s.instance)
	}
	long(tag.PixelData, dicom.VR_OW, pixels)
	return buf
}

func seriesFiles(seriesUID string, n int) map[string][]byte {
	files := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		f := sliceFile{
			patientID: "P001",
			seriesUID: seriesUID,
			sopUID:    fmt.Sprintf("%s.%d", seriesUID, i),
			instance:  i + 1,
			sliceLoc:  float64(i),
			rows:      8,
			cols:      8,
		}
		files[fmt.Sprintf("/data/%s-%03d.dcm", seriesUID, i)] = f.encode()
	}
	return files
}

func TestImportFile(t *testing.T) {
	src := fakeSource{files: seriesFiles("1.2.3", 1)}
	imp := quietImporter(src)

	res, err := imp.ImportFile(context.Background(), "/data/1.2.3-000.dcm")
	require.NoError(t, err)

	assert.Equal(t, "P001", res.Hierarchy.Patient.PatientID)
	assert.Equal(t, "1.2.3", res.Hierarchy.Series.SeriesInstanceUID)
	assert.Equal(t, "CT", res.Hierarchy.Series.Modality)
	assert.True(t, res.Pixels.IsCTData)
	assert.Len(t, res.Pixels.Pixels, 8*8*2)
}

func TestImportFileMappingFailed(t *testing.T) {
	f := sliceFile{seriesUID: "1.2.3", sopUID: "1.2.3.0", instance: 1, rows: 8, cols: 8}
	src := fakeSource{files: map[string][]byte{"/data/a.dcm": f.encode()}}
	imp := quietImporter(src)

	_, err := imp.ImportFile(context.Background(), "/data/a.dcm")
	require.Error(t, err)

	var mapErr *errs.MappingFailedError
	require.True(t, stderrors.As(err, &mapErr))
	assert.Equal(t, "/data/a.dcm", mapErr.Path)
}

func TestImportFileReadError(t *testing.T) {
	imp := quietImporter(fakeSource{})

	_, err := imp.ImportFile(context.Background(), "/data/missing.dcm")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestImportDirectory(t *testing.T) {
	src := fakeSource{files: seriesFiles("1.2.3", 5)}
	imp := quietImporter(src)

	result, err := imp.ImportDirectory(context.Background(), "/data")
	require.NoError(t, err)

	require.Len(t, result.Series, 1)
	assert.Empty(t, result.Skipped)

	s := result.Series[0]
	require.NoError(t, s.Err)
	assert.Equal(t, "1.2.3", s.Series.SeriesInstanceUID)
	assert.Len(t, s.Series.Images, 5)
	assert.Equal(t, [3]int{8, 8, 5}, s.Volume.Dimensions)
	assert.Equal(t, [3]float64{0.7, 0.7, 1.0}, s.Volume.Spacing)

	// Slices land in z order: the first slice's fill pattern is instance 1.
	assert.Equal(t, byte(1), s.Volume.Voxels[0])
	assert.Equal(t, byte(5), s.Volume.Voxels[len(s.Volume.Voxels)-1])
}

func TestImportDirectorySkipAndRecord(t *testing.T) {
	files := seriesFiles("1.2.3", 3)
	files["/data/broken.dcm"] = []byte("not a dicom file")
	imp := quietImporter(fakeSource{files: files})

	result, err := imp.ImportDirectory(context.Background(), "/data")
	require.NoError(t, err, "one broken file must not abort the import")

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "/data/broken.dcm", result.Skipped[0].Path)

	var fmtErr *errs.InvalidFormatError
	assert.True(t, stderrors.As(result.Skipped[0].Err, &fmtErr))

	require.Len(t, result.Series, 1)
	assert.Equal(t, [3]int{8, 8, 3}, result.Series[0].Volume.Dimensions)
}

func TestImportDirectoryMultipleSeries(t *testing.T) {
	files := seriesFiles("1.2.900", 3)
	for p, b := range seriesFiles("1.2.100", 2) {
		files[p] = b
	}
	imp := quietImporter(fakeSource{files: files})

	result, err := imp.ImportDirectory(context.Background(), "/data")
	require.NoError(t, err)

	require.Len(t, result.Series, 2)
	assert.Equal(t, "1.2.100", result.Series[0].Series.SeriesInstanceUID, "series come out in sorted uid order")
	assert.Equal(t, "1.2.900", result.Series[1].Series.SeriesInstanceUID)
	assert.Equal(t, 2, result.Series[0].Volume.Dimensions[2])
	assert.Equal(t, 3, result.Series[1].Volume.Dimensions[2])
}

func TestImportDirectorySingleSliceSeries(t *testing.T) {
	imp := quietImporter(fakeSource{files: seriesFiles("1.2.3", 1)})

	result, err := imp.ImportDirectory(context.Background(), "/data")
	require.NoError(t, err)

	require.Len(t, result.Series, 1)
	s := result.Series[0]
	require.NoError(t, s.Err)
	assert.Equal(t, [3]int{8, 8, 1}, s.Volume.Dimensions)
	assert.Equal(t, 0.7, s.Volume.Spacing[2], "single slice estimates z spacing from pixel spacing")
}

func TestImportDirectoryListError(t *testing.T) {
	imp := quietImporter(fakeSource{listErr: fs.ErrPermission})

	_, err := imp.ImportDirectory(context.Background(), "/data")
	require.Error(t, err)

	var dirErr *errs.DirectoryAccessFailedError
	require.True(t, stderrors.As(err, &dirErr))
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestImportDirectoryNoFiles(t *testing.T) {
	imp := quietImporter(fakeSource{})

	_, err := imp.ImportDirectory(context.Background(), "/data")
	require.Error(t, err)

	var noneErr *errs.NoDICOMFilesError
	require.True(t, stderrors.As(err, &noneErr))
	assert.Equal(t, "/data", noneErr.Dir)
}

func TestImportDirectoryNoValidImages(t *testing.T) {
	imp := quietImporter(fakeSource{files: map[string][]byte{
		"/data/a.dcm": []byte("garbage"),
		"/data/b.dcm": []byte("more garbage"),
	}})

	_, err := imp.ImportDirectory(context.Background(), "/data")
	require.Error(t, err)

	var noneErr *errs.NoValidImagesError
	assert.True(t, stderrors.As(err, &noneErr))
}

func TestImportDirectoryReconstructionErrorIsPerSeries(t *testing.T) {
	// Two slices at the same z position: spacing 0, reconstruction fails,
	// but the mapped series still comes back with its error attached.
	files := map[string][]byte{}
	for i := 0; i < 2; i++ {
		f := sliceFile{
			patientID: "P001",
			seriesUID: "1.2.3",
			sopUID:    fmt.Sprintf("1.2.3.%d", i),
			instance:  i + 1,
			sliceLoc:  5.0,
			rows:      8,
			cols:      8,
		}
		files[fmt.Sprintf("/data/%d.dcm", i)] = f.encode()
	}
	imp := quietImporter(fakeSource{files: files})

	result, err := imp.ImportDirectory(context.Background(), "/data")
	require.NoError(t, err)

	require.Len(t, result.Series, 1)
	s := result.Series[0]
	require.Error(t, s.Err)
	assert.Nil(t, s.Volume)
	assert.Equal(t, "1.2.3", s.Series.SeriesInstanceUID)

	var spErr *errs.InvalidSpacingError
	assert.True(t, stderrors.As(s.Err, &spErr))
}
