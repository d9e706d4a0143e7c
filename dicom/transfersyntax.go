package dicom

import "encoding/binary"

// Transfer syntax UIDs this module recognizes, as defined in DICOM Part 5,
// Section 8 and Part 6, Annex A.4.
const (
	// ImplicitVRLittleEndianUID - the default DICOM transfer syntax
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"

	// ExplicitVRLittleEndianUID - explicit VR with little endian byte ordering
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"

	// ExplicitVRBigEndianUID - explicit VR with big endian byte ordering (retired)
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"

	// DeflatedExplicitVRLittleEndianUID - deflate compression over explicit VR
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"

	// JPEGBaseline8BitUID - JPEG Baseline (Process 1)
	JPEGBaseline8BitUID = "1.2.840.10008.1.2.4.50"

	// JPEGLosslessSV1UID - JPEG Lossless (Process 14, Selection Value 1)
	JPEGLosslessSV1UID = "1.2.840.10008.1.2.4.70"

	// JPEG2000LosslessUID - JPEG 2000 (Lossless Only)
	JPEG2000LosslessUID = "1.2.840.10008.1.2.4.90"

	// JPEG2000UID - JPEG 2000 (lossy or lossless)
	JPEG2000UID = "1.2.840.10008.1.2.4.91"

	// RLELosslessUID - RLE Lossless
	RLELosslessUID = "1.2.840.10008.1.2.5"
)

// TransferSyntax describes the encoding convention of a dataset: VR
// explicitness, byte order and compression. Captured once from the file-meta
// group and fixed for the remainder of a parse.
type TransferSyntax struct {
	UID        string
	Name       string
	ExplicitVR bool
	BigEndian  bool
	Compressed bool
}

// IsExplicitVR reports whether elements carry their VR code on the wire.
func (ts TransferSyntax) IsExplicitVR() bool {
	return ts.ExplicitVR
}

// IsLittleEndian reports whether multi-byte values use little endian ordering.
func (ts TransferSyntax) IsLittleEndian() bool {
	return !ts.BigEndian
}

// IsCompressed reports whether pixel data is stored in an encapsulated,
// compressed encoding this module does not decode.
func (ts TransferSyntax) IsCompressed() bool {
	return ts.Compressed
}

// ByteOrder returns the binary byte order used by this transfer syntax.
func (ts TransferSyntax) ByteOrder() binary.ByteOrder {
	if ts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Well-known transfer syntaxes.
var (
	ImplicitVRLittleEndian = TransferSyntax{
		UID:  ImplicitVRLittleEndianUID,
		Name: "Implicit VR Little Endian",
	}
	ExplicitVRLittleEndian = TransferSyntax{
		UID:        ExplicitVRLittleEndianUID,
		Name:       "Explicit VR Little Endian",
		ExplicitVR: true,
	}
	ExplicitVRBigEndian = TransferSyntax{
		UID:        ExplicitVRBigEndianUID,
		Name:       "Explicit VR Big Endian",
		ExplicitVR: true,
		BigEndian:  true,
	}
)

// transferSyntaxRegistry maps transfer syntax UIDs to their descriptions.
// Compressed syntaxes are recognized so they can be rejected by name instead
// of being misparsed.
var transferSyntaxRegistry = map[string]TransferSyntax{
	ImplicitVRLittleEndianUID: ImplicitVRLittleEndian,
	ExplicitVRLittleEndianUID: ExplicitVRLittleEndian,
	ExplicitVRBigEndianUID:    ExplicitVRBigEndian,

	DeflatedExplicitVRLittleEndianUID: {
		UID: DeflatedExplicitVRLittleEndianUID, Name: "Deflated Explicit VR Little Endian",
		ExplicitVR: true, Compressed: true,
	},
	JPEGBaseline8BitUID: {
		UID: JPEGBaseline8BitUID, Name: "JPEG Baseline (Process 1)",
		ExplicitVR: true, Compressed: true,
	},
	JPEGLosslessSV1UID: {
		UID: JPEGLosslessSV1UID, Name: "JPEG Lossless (Process 14, SV1)",
		ExplicitVR: true, Compressed: true,
	},
	JPEG2000LosslessUID: {
		UID: JPEG2000LosslessUID, Name: "JPEG 2000 Lossless Only",
		ExplicitVR: true, Compressed: true,
	},
	JPEG2000UID: {
		UID: JPEG2000UID, Name: "JPEG 2000",
		ExplicitVR: true, Compressed: true,
	},
	RLELosslessUID: {
		UID: RLELosslessUID, Name: "RLE Lossless",
		ExplicitVR: true, Compressed: true,
	},
}

// LookupTransferSyntax resolves a UID to a TransferSyntax. Unrecognized UIDs
// yield ok=false; callers fall back to Explicit VR Little Endian per the
// parse contract.
func LookupTransferSyntax(uid string) (TransferSyntax, bool) {
	ts, ok := transferSyntaxRegistry[uid]
	return ts, ok
}
