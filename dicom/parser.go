package dicom

import (
	"encoding/binary"

	errs "github.com/caio-sobreiro/dicomvol/errors"
	"github.com/caio-sobreiro/dicomvol/tag"
)

const (
	preambleLength = 128
	magicWord      = "DICM"

	// headerLength is the minimum size of a Part 10 file: preamble + magic.
	headerLength = preambleLength + len(magicWord)

	// undefinedLength marks an undefined-length element (sequence content).
	undefinedLength = 0xFFFFFFFF
)

// Parse decodes a complete DICOM Part 10 file into a Dataset.
//
// The file-meta group (0x0002) is always read as Explicit VR Little Endian,
// as Part 10 mandates. The Transfer Syntax UID captured there selects the
// codec for the remaining dataset; an absent or unrecognized UID falls back
// to Explicit VR Little Endian, and a recognized compressed syntax is
// rejected with an UnsupportedTransferSyntaxError rather than guessed at.
//
// Metadata parsing stops once the PixelData element has been stored; its raw
// bytes stay in the Dataset for the pixel extractor. Every declared length is
// bounds-checked before slicing, so a truncated or lying file yields an
// InvalidFormatError instead of a panic.
func Parse(data []byte) (*Dataset, error) {
	if len(data) < headerLength {
		return nil, errs.NewInvalidFormatError("file too small: %d bytes, need at least %d", len(data), headerLength)
	}
	if string(data[preambleLength:headerLength]) != magicWord {
		return nil, errs.NewInvalidFormatError("missing %q magic at offset %d", magicWord, preambleLength)
	}

	ds := NewDataset()
	offset := headerLength

	// File Meta Information: explicit VR little endian, ends at the first
	// tag outside group 0x0002. Tags arrive in non-decreasing order, so the
	// group switch happens exactly once.
	var tsUID string
	for offset < len(data) {
		if offset+4 > len(data) {
			return nil, errs.NewInvalidFormatError("truncated element header at offset %d", offset)
		}
		group := binary.LittleEndian.Uint16(data[offset : offset+2])
		if group != 0x0002 {
			break
		}
		elem, next, err := readExplicitElement(data, offset, binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		ds.Set(elem)
		offset = next

		if elem.Tag == tag.TransferSyntaxUID {
			tsUID, _ = elem.String()
		}
	}

	ts := ExplicitVRLittleEndian
	if tsUID != "" {
		if found, ok := LookupTransferSyntax(tsUID); ok {
			ts = found
		}
	}
	if ts.IsCompressed() {
		return nil, errs.NewUnsupportedTransferSyntaxError(ts.UID)
	}
	ds.TransferSyntax = ts

	order := ts.ByteOrder()
	for offset < len(data) {
		var (
			elem *DataElement
			next int
			err  error
		)
		if ts.IsExplicitVR() {
			elem, next, err = readExplicitElement(data, offset, order)
		} else {
			elem, next, err = readImplicitElement(data, offset, order)
		}
		if err != nil {
			return nil, err
		}
		ds.Set(elem)
		offset = next

		// Pixel data is the last attribute this parser cares about; its raw
		// bytes are now in the dataset for the extractor to decode.
		if elem.Tag == tag.PixelData {
			break
		}
	}

	return ds, nil
}

// readExplicitElement decodes one element under explicit VR rules:
// tag (4) + VR (2) + either a 2-byte length, or 2 reserved bytes and a
// 4-byte length for the long-length VR class.
func readExplicitElement(data []byte, offset int, order binary.ByteOrder) (*DataElement, int, error) {
	if offset+8 > len(data) {
		return nil, 0, errs.NewInvalidFormatError("truncated element header at offset %d", offset)
	}
	t := readTag(data, offset, order)

	vrBytes := data[offset+4 : offset+6]
	if !isValidVRCode(vrBytes) {
		return nil, 0, errs.NewInvalidFormatError("invalid VR code % x for tag %s at offset %d", vrBytes, t, offset)
	}
	vr := string(vrBytes)

	var length uint32
	var valueOffset int
	if IsLongLengthVR(vr) {
		if offset+12 > len(data) {
			return nil, 0, errs.NewInvalidFormatError("truncated element header at offset %d", offset)
		}
		length = order.Uint32(data[offset+8 : offset+12])
		valueOffset = offset + 12
	} else {
		length = uint32(order.Uint16(data[offset+6 : offset+8]))
		valueOffset = offset + 8
	}

	return buildElement(data, t, vr, length, valueOffset, order)
}

// readImplicitElement decodes one element under implicit VR rules:
// tag (4) + 4-byte length. The VR is not on the wire and is left empty;
// consumers that need it resolve it through the tag dictionary.
func readImplicitElement(data []byte, offset int, order binary.ByteOrder) (*DataElement, int, error) {
	if offset+8 > len(data) {
		return nil, 0, errs.NewInvalidFormatError("truncated element header at offset %d", offset)
	}
	t := readTag(data, offset, order)
	length := order.Uint32(data[offset+4 : offset+8])

	return buildElement(data, t, "", length, offset+8, order)
}

func readTag(data []byte, offset int, order binary.ByteOrder) tag.Tag {
	return tag.Tag{
		Group:   order.Uint16(data[offset : offset+2]),
		Element: order.Uint16(data[offset+2 : offset+4]),
	}
}

func buildElement(data []byte, t tag.Tag, vr string, length uint32, valueOffset int, order binary.ByteOrder) (*DataElement, int, error) {
	// Undefined length marks sequence content, which is out of scope; the
	// element is kept as a zero-length marker.
	if length == undefinedLength {
		return &DataElement{Tag: t, VR: vr, ValueLength: 0, Value: nil, order: order}, valueOffset, nil
	}

	end := valueOffset + int(length)
	if end > len(data) || end < valueOffset {
		return nil, 0, errs.NewInvalidFormatError("tag %s declares %d value bytes beyond end of buffer", t, length)
	}

	elem := &DataElement{
		Tag:         t,
		VR:          vr,
		ValueLength: length,
		Value:       data[valueOffset:end],
		order:       order,
	}

	// Values are padded to even length on the wire.
	next := end
	if length%2 == 1 {
		next++
	}
	return elem, next, nil
}
