// dicomvol parses DICOM files and reconstructs 3D volumes from image series.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
