package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/caio-sobreiro/dicomvol/importer"
)

var workers int

var importCmd = &cobra.Command{
	Use:   "import <directory>",
	Short: "Import a directory of DICOM files and reconstruct one volume per series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp := importer.New(
			importer.WithLogger(slog.Default()),
			importer.WithWorkers(workers),
		)

		result, err := imp.ImportDirectory(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, s := range result.Series {
			fmt.Printf("series %s (%s, %d images)\n",
				s.Series.SeriesInstanceUID, s.Series.Modality, len(s.Series.Images))
			fmt.Printf("  patient: %s (%s)\n", s.Patient.Name, s.Patient.PatientID)
			fmt.Printf("  study:   %s\n", s.Study.StudyInstanceUID)
			if s.Err != nil {
				fmt.Printf("  volume:  not reconstructed: %v\n", s.Err)
				continue
			}
			v := s.Volume
			fmt.Printf("  volume:  %dx%dx%d voxels, spacing %.3fx%.3fx%.3f mm, %d bytes\n",
				v.Dimensions[0], v.Dimensions[1], v.Dimensions[2],
				v.Spacing[0], v.Spacing[1], v.Spacing[2], len(v.Voxels))
		}
		if len(result.Skipped) > 0 {
			fmt.Printf("skipped %d file(s):\n", len(result.Skipped))
			for _, f := range result.Skipped {
				fmt.Printf("  %s: %v\n", f.Path, f.Err)
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of concurrent file workers (default: number of CPUs)")
	rootCmd.AddCommand(importCmd)
}
