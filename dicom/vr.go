// Package dicom implements the DICOM Part 10 binary file format: value
// representations, transfer syntaxes, data elements and the single-pass
// dataset parser.
package dicom

// VR (Value Representation) constants
const (
	VR_AE = "AE" // Application Entity
	VR_AS = "AS" // Age String
	VR_AT = "AT" // Attribute Tag
	VR_CS = "CS" // Code String
	VR_DA = "DA" // Date
	VR_DS = "DS" // Decimal String
	VR_DT = "DT" // Date Time
	VR_FL = "FL" // Floating Point Single
	VR_FD = "FD" // Floating Point Double
	VR_IS = "IS" // Integer String
	VR_LO = "LO" // Long String
	VR_LT = "LT" // Long Text
	VR_OB = "OB" // Other Byte
	VR_OD = "OD" // Other Double
	VR_OF = "OF" // Other Float
	VR_OL = "OL" // Other Long
	VR_OV = "OV" // Other Very Long
	VR_OW = "OW" // Other Word
	VR_PN = "PN" // Person Name
	VR_SH = "SH" // Short String
	VR_SL = "SL" // Signed Long
	VR_SQ = "SQ" // Sequence of Items
	VR_SS = "SS" // Signed Short
	VR_ST = "ST" // Short Text
	VR_SV = "SV" // Signed Very Long
	VR_TM = "TM" // Time
	VR_UC = "UC" // Unlimited Characters
	VR_UI = "UI" // Unique Identifier
	VR_UL = "UL" // Unsigned Long
	VR_UN = "UN" // Unknown
	VR_UR = "UR" // Universal Resource
	VR_US = "US" // Unsigned Short
	VR_UT = "UT" // Unlimited Text
	VR_UV = "UV" // Unsigned Very Long
)

// longLengthVRs are the VRs that use the 12-byte explicit header:
// tag (4) + VR (2) + reserved (2) + 4-byte length. All other VRs use the
// 8-byte header with a 2-byte length.
var longLengthVRs = map[string]bool{
	VR_OB: true, VR_OD: true, VR_OF: true, VR_OL: true, VR_OV: true,
	VR_OW: true, VR_SQ: true, VR_SV: true, VR_UC: true, VR_UN: true,
	VR_UR: true, VR_UT: true, VR_UV: true,
}

// IsLongLengthVR reports whether vr encodes its value length as a 4-byte
// field behind 2 reserved bytes under explicit VR.
func IsLongLengthVR(vr string) bool {
	return longLengthVRs[vr]
}

// isValidVRCode reports whether the two bytes form a plausible VR code:
// two uppercase ASCII letters.
func isValidVRCode(b []byte) bool {
	if len(b) != 2 {
		return false
	}
	for _, c := range b {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
