// Package errors provides DICOM-specific error types for better error handling
package errors

import (
	"fmt"

	"github.com/caio-sobreiro/dicomvol/tag"
)

// Parser errors

// InvalidFormatError indicates a byte stream that is not a decodable DICOM file.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("dicom: invalid format: %s", e.Reason)
}

// NewInvalidFormatError creates a new invalid format error
func NewInvalidFormatError(format string, args ...any) *InvalidFormatError {
	return &InvalidFormatError{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedTransferSyntaxError indicates a recognized transfer syntax this
// module cannot decode (compressed or encapsulated encodings).
type UnsupportedTransferSyntaxError struct {
	UID string
}

func (e *UnsupportedTransferSyntaxError) Error() string {
	return fmt.Sprintf("dicom: unsupported transfer syntax %q", e.UID)
}

// NewUnsupportedTransferSyntaxError creates a new unsupported transfer syntax error
func NewUnsupportedTransferSyntaxError(uid string) *UnsupportedTransferSyntaxError {
	return &UnsupportedTransferSyntaxError{UID: uid}
}

// MissingRequiredTagError indicates a dataset lacking an attribute the
// requested operation cannot proceed without.
type MissingRequiredTagError struct {
	Tag tag.Tag
}

func (e *MissingRequiredTagError) Error() string {
	return fmt.Sprintf("dicom: missing required tag %s (%s)", e.Tag, tag.Name(e.Tag))
}

// NewMissingRequiredTagError creates a new missing required tag error
func NewMissingRequiredTagError(t tag.Tag) *MissingRequiredTagError {
	return &MissingRequiredTagError{Tag: t}
}

// InvalidTagValueError indicates an attribute whose bytes could not be
// coerced to the type the operation requires.
type InvalidTagValueError struct {
	Tag    tag.Tag
	Reason string
}

func (e *InvalidTagValueError) Error() string {
	return fmt.Sprintf("dicom: invalid value for tag %s: %s", e.Tag, e.Reason)
}

// NewInvalidTagValueError creates a new invalid tag value error
func NewInvalidTagValueError(t tag.Tag, reason string) *InvalidTagValueError {
	return &InvalidTagValueError{Tag: t, Reason: reason}
}

// CorruptedPixelDataError indicates a pixel data buffer smaller than the
// image pixel module declares.
type CorruptedPixelDataError struct {
	Expected int
	Actual   int
}

func (e *CorruptedPixelDataError) Error() string {
	return fmt.Sprintf("dicom: corrupted pixel data: expected %d bytes, got %d", e.Expected, e.Actual)
}

// NewCorruptedPixelDataError creates a new corrupted pixel data error
func NewCorruptedPixelDataError(expected, actual int) *CorruptedPixelDataError {
	return &CorruptedPixelDataError{Expected: expected, Actual: actual}
}

// Reconstruction errors

// EmptyImageSetError indicates a reconstruction request with no slices at all.
type EmptyImageSetError struct{}

func (e *EmptyImageSetError) Error() string {
	return "dicom: empty image set, nothing to reconstruct"
}

// NewEmptyImageSetError creates a new empty image set error
func NewEmptyImageSetError() *EmptyImageSetError {
	return &EmptyImageSetError{}
}

// MissingPositionInfoError indicates a slice without a usable z coordinate
// (neither SliceLocation nor an ImagePositionPatient z component).
type MissingPositionInfoError struct {
	SOPInstanceUID string
}

func (e *MissingPositionInfoError) Error() string {
	return fmt.Sprintf("dicom: slice %q carries no slice location or image position", e.SOPInstanceUID)
}

// NewMissingPositionInfoError creates a new missing position info error
func NewMissingPositionInfoError(sopInstanceUID string) *MissingPositionInfoError {
	return &MissingPositionInfoError{SOPInstanceUID: sopInstanceUID}
}

// InconsistentDimensionsError indicates a slice whose rows/columns differ
// from the first slice of the sorted set.
type InconsistentDimensionsError struct {
	Index           int
	ExpectedRows    int
	ExpectedColumns int
	ActualRows      int
	ActualColumns   int
}

func (e *InconsistentDimensionsError) Error() string {
	return fmt.Sprintf("dicom: slice %d has dimensions %dx%d, expected %dx%d",
		e.Index, e.ActualRows, e.ActualColumns, e.ExpectedRows, e.ExpectedColumns)
}

// NewInconsistentDimensionsError creates a new inconsistent dimensions error
func NewInconsistentDimensionsError(index, expectedRows, expectedColumns, actualRows, actualColumns int) *InconsistentDimensionsError {
	return &InconsistentDimensionsError{
		Index:           index,
		ExpectedRows:    expectedRows,
		ExpectedColumns: expectedColumns,
		ActualRows:      actualRows,
		ActualColumns:   actualColumns,
	}
}

// InconsistentBitDepthError indicates a slice whose BitsAllocated differs
// from the first slice of the sorted set.
type InconsistentBitDepthError struct {
	Index    int
	Expected int
	Actual   int
}

func (e *InconsistentBitDepthError) Error() string {
	return fmt.Sprintf("dicom: slice %d has %d bits allocated, expected %d", e.Index, e.Actual, e.Expected)
}

// NewInconsistentBitDepthError creates a new inconsistent bit depth error
func NewInconsistentBitDepthError(index, expected, actual int) *InconsistentBitDepthError {
	return &InconsistentBitDepthError{Index: index, Expected: expected, Actual: actual}
}

// InsufficientSlicesError indicates fewer slices than a 3D reconstruction needs.
type InsufficientSlicesError struct {
	Count int
}

func (e *InsufficientSlicesError) Error() string {
	return fmt.Sprintf("dicom: %d slice(s) is not enough for 3D reconstruction, need at least 2", e.Count)
}

// NewInsufficientSlicesError creates a new insufficient slices error
func NewInsufficientSlicesError(count int) *InsufficientSlicesError {
	return &InsufficientSlicesError{Count: count}
}

// InvalidSpacingError indicates a slice spacing outside the anatomically
// plausible range.
type InvalidSpacingError struct {
	Spacing float64
}

func (e *InvalidSpacingError) Error() string {
	return fmt.Sprintf("dicom: slice spacing %.4f mm is outside the supported 0.1-10.0 mm range", e.Spacing)
}

// NewInvalidSpacingError creates a new invalid spacing error
func NewInvalidSpacingError(spacing float64) *InvalidSpacingError {
	return &InvalidSpacingError{Spacing: spacing}
}

// CorruptedSliceDataError indicates a slice whose decoded buffer is smaller
// than its declared geometry requires.
type CorruptedSliceDataError struct {
	Index    int
	Expected int
	Actual   int
}

func (e *CorruptedSliceDataError) Error() string {
	return fmt.Sprintf("dicom: slice %d buffer has %d bytes, expected %d", e.Index, e.Actual, e.Expected)
}

// NewCorruptedSliceDataError creates a new corrupted slice data error
func NewCorruptedSliceDataError(index, expected, actual int) *CorruptedSliceDataError {
	return &CorruptedSliceDataError{Index: index, Expected: expected, Actual: actual}
}

// Import orchestration errors

// MappingFailedError indicates a parsed file whose dataset could not be
// mapped to the patient/study/series/image hierarchy.
type MappingFailedError struct {
	Path   string
	Reason string
}

func (e *MappingFailedError) Error() string {
	return fmt.Sprintf("dicom: mapping %s failed: %s", e.Path, e.Reason)
}

// NewMappingFailedError creates a new mapping failed error
func NewMappingFailedError(path, reason string) *MappingFailedError {
	return &MappingFailedError{Path: path, Reason: reason}
}

// NoValidImagesError indicates an import in which every file failed.
type NoValidImagesError struct {
	Dir string
}

func (e *NoValidImagesError) Error() string {
	return fmt.Sprintf("dicom: no file in %s produced a valid image", e.Dir)
}

// NewNoValidImagesError creates a new no valid images error
func NewNoValidImagesError(dir string) *NoValidImagesError {
	return &NoValidImagesError{Dir: dir}
}

// DirectoryAccessFailedError indicates a directory that could not be listed.
type DirectoryAccessFailedError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessFailedError) Error() string {
	return fmt.Sprintf("dicom: cannot access directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessFailedError) Unwrap() error {
	return e.Err
}

// NewDirectoryAccessFailedError creates a new directory access failed error
func NewDirectoryAccessFailedError(dir string, err error) *DirectoryAccessFailedError {
	return &DirectoryAccessFailedError{Dir: dir, Err: err}
}

// NoDICOMFilesError indicates a directory containing no DICOM files.
type NoDICOMFilesError struct {
	Dir string
}

func (e *NoDICOMFilesError) Error() string {
	return fmt.Sprintf("dicom: no DICOM files found in %s", e.Dir)
}

// NewNoDICOMFilesError creates a new no DICOM files error
func NewNoDICOMFilesError(dir string) *NoDICOMFilesError {
	return &NoDICOMFilesError{Dir: dir}
}
