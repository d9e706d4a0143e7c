package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagString(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{name: "patient id", tag: PatientID, want: "(0010,0020)"},
		{name: "pixel data", tag: PixelData, want: "(7fe0,0010)"},
		{name: "zero tag", tag: Tag{}, want: "(0000,0000)"},
		{name: "transfer syntax uid", tag: TransferSyntaxUID, want: "(0002,0010)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.String())
		})
	}
}

func TestTagKeyOrdering(t *testing.T) {
	assert.Less(t, PatientID.Key(), StudyInstanceUID.Key())
	assert.Less(t, StudyInstanceUID.Key(), PixelData.Key())

	assert.Equal(t, -1, PatientName.Compare(PatientID))
	assert.Equal(t, 1, PixelData.Compare(Rows))
	assert.Equal(t, 0, Rows.Compare(New(0x0028, 0x0010)))
}

func TestTagPredicates(t *testing.T) {
	assert.True(t, TransferSyntaxUID.IsFileMeta())
	assert.False(t, PatientID.IsFileMeta())

	assert.True(t, New(0x0009, 0x0010).IsPrivate())
	assert.False(t, Rows.IsPrivate())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		tag      Tag
		wantName string
		wantVR   string
		wantOK   bool
	}{
		{name: "patient name", tag: PatientName, wantName: "PatientName", wantVR: "PN", wantOK: true},
		{name: "rows", tag: Rows, wantName: "Rows", wantVR: "US", wantOK: true},
		{name: "pixel data", tag: PixelData, wantName: "PixelData", wantVR: "OW", wantOK: true},
		{name: "slice location", tag: SliceLocation, wantName: "SliceLocation", wantVR: "DS", wantOK: true},
		{name: "unknown tag", tag: New(0x1234, 0x5678), wantName: "Unknown", wantVR: "UN", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := Lookup(tt.tag)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, entry.Name)
			assert.Equal(t, tt.wantVR, entry.VR)
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "SeriesInstanceUID", Name(SeriesInstanceUID))
	assert.Equal(t, "Unknown", Name(New(0xAAAA, 0xBBBB)))
}
