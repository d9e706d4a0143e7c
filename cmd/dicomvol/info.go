package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caio-sobreiro/dicomvol/dicom"
	"github.com/caio-sobreiro/dicomvol/tag"
)

// valuePreviewLimit caps how much of a text value the listing prints.
const valuePreviewLimit = 64

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Parse a single DICOM file and list its data elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		ds, err := dicom.Parse(data)
		if err != nil {
			return err
		}

		fmt.Printf("transfer syntax: %s (%s)\n", ds.TransferSyntax.Name, ds.TransferSyntax.UID)
		fmt.Printf("%d element(s)\n", ds.Len())
		for _, t := range ds.Tags() {
			e, _ := ds.Get(t)
			entry, _ := tag.Lookup(t)
			vr := e.VR
			if vr == "" {
				vr = entry.VR
			}
			fmt.Printf("%s %s %-28s %s\n", t, vr, entry.Name, formatValue(e))
		}
		return nil
	},
}

// formatValue renders an element value for the listing: text where the value
// reads as text, a byte count otherwise.
func formatValue(e *dicom.DataElement) string {
	switch e.Tag {
	case tag.PixelData:
		return fmt.Sprintf("<%d bytes of pixel data>", len(e.Value))
	}
	if s, ok := e.String(); ok && isPrintable(s) {
		if len(s) > valuePreviewLimit {
			s = s[:valuePreviewLimit] + "..."
		}
		return s
	}
	if v, ok := e.Uint16(); ok && len(e.Value) == 2 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("<%d bytes>", len(e.Value))
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
