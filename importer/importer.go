// Package importer drives the per-file parse → extract → map pipeline over
// files and directories, groups results by series, and hands each series to
// the volume reconstructor.
package importer

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/caio-sobreiro/dicomvol/dicom"
	"github.com/caio-sobreiro/dicomvol/domain"
	errs "github.com/caio-sobreiro/dicomvol/errors"
	"github.com/caio-sobreiro/dicomvol/interfaces"
	"github.com/caio-sobreiro/dicomvol/pixel"
	"github.com/caio-sobreiro/dicomvol/volume"
)

// Option configures an Importer instance.
type Option func(*Importer)

// WithSource overrides the byte source files are read from.
func WithSource(source interfaces.ByteSource) Option {
	return func(imp *Importer) {
		imp.source = source
	}
}

// WithLogger overrides the logger used for import progress and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) {
		imp.logger = logger
	}
}

// WithWorkers bounds the number of files processed concurrently.
func WithWorkers(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.workers = n
		}
	}
}

// Importer orchestrates multi-file imports. Per-file pipelines are
// independent and run concurrently; a per-file failure is recorded and
// skipped, never aborting the rest of the import.
type Importer struct {
	source  interfaces.ByteSource
	logger  *slog.Logger
	workers int

	reconstructor *volume.Reconstructor
}

// New builds an Importer reading from the local filesystem by default.
func New(opts ...Option) *Importer {
	imp := &Importer{
		source:  OSSource{},
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.logger == nil {
		imp.logger = slog.Default()
	}
	imp.reconstructor = volume.New(volume.WithLogger(imp.logger))
	return imp
}

// FileResult is the outcome of one file's pipeline: the mapped hierarchy
// and the decoded pixel descriptor.
type FileResult struct {
	Path      string
	Dataset   *dicom.Dataset
	Hierarchy domain.Hierarchy
	Pixels    *pixel.ProcessedPixelData
}

// FileError records which file failed and why.
type FileError struct {
	Path string
	Err  error
}

// SeriesResult is one reconstructed series of an import. Err is set when
// the series' slices could not be assembled into a volume; the mapped
// hierarchy is still returned.
type SeriesResult struct {
	Patient domain.Patient
	Study   domain.Study
	Series  domain.Series
	Volume  *volume.Volume
	Err     error
}

// DirectoryResult aggregates an entire directory import.
type DirectoryResult struct {
	Series  []SeriesResult
	Skipped []FileError
}

// ImportFile runs the full single-file pipeline: read, parse, extract
// pixels, map the hierarchy.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*FileResult, error) {
	data, err := imp.source.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	ds, err := dicom.Parse(data)
	if err != nil {
		return nil, err
	}
	px, err := pixel.Extract(ds)
	if err != nil {
		return nil, err
	}
	hierarchy, ok := domain.MapHierarchy(ds, px)
	if !ok {
		return nil, errs.NewMappingFailedError(path, "dataset is missing a required identity attribute")
	}

	return &FileResult{Path: path, Dataset: ds, Hierarchy: hierarchy, Pixels: px}, nil
}

// ImportDirectory imports every DICOM file under dir, in parallel, then
// reconstructs one volume per series.
//
// Per-file errors are skip-and-record: they appear in the result's Skipped
// list and the import continues. ImportDirectory itself fails only when the
// directory cannot be listed, contains no DICOM files, or no file at all
// survives the pipeline.
func (imp *Importer) ImportDirectory(ctx context.Context, dir string) (*DirectoryResult, error) {
	paths, err := imp.source.List(ctx, dir)
	if err != nil {
		return nil, errs.NewDirectoryAccessFailedError(dir, err)
	}
	if len(paths) == 0 {
		return nil, errs.NewNoDICOMFilesError(dir)
	}

	var (
		mu      sync.Mutex
		results []*FileResult
		skipped []FileError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := imp.ImportFile(gctx, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				imp.logger.Warn("skipping file", "path", path, "error", err)
				skipped = append(skipped, FileError{Path: path, Err: err})
				return nil
			}
			results = append(results, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only a context cancellation reaches here; completed per-file
		// results stay valid for the caller that cancelled.
		return nil, err
	}

	if len(results) == 0 {
		return nil, errs.NewNoValidImagesError(dir)
	}

	out := &DirectoryResult{Skipped: skipped}
	bySeries := grouped(results)
	for _, uid := range seriesOrder(results) {
		out.Series = append(out.Series, imp.reconstructSeries(uid, bySeries[uid]))
	}
	return out, nil
}

// reconstructSeries assembles one series' files into a SeriesResult.
func (imp *Importer) reconstructSeries(uid string, files []*FileResult) SeriesResult {
	sortFiles(files)

	images := make([]domain.ImageInstance, len(files))
	slices := make([]volume.Slice, len(files))
	for i, f := range files {
		images[i] = f.Hierarchy.Image
		slices[i] = volume.Slice{Image: f.Hierarchy.Image, Pixels: f.Pixels}
	}

	first := files[0].Hierarchy
	result := SeriesResult{
		Patient: first.Patient,
		Study:   first.Study,
		Series:  first.Series.WithImages(images),
	}

	if len(slices) == 1 {
		result.Volume, result.Err = imp.reconstructor.ReconstructSingle(uid, slices[0])
	} else {
		result.Volume, result.Err = imp.reconstructor.Reconstruct(uid, slices)
	}
	if result.Err != nil {
		imp.logger.Warn("series reconstruction failed", "series_uid", uid, "error", result.Err)
	} else {
		imp.logger.Info("series reconstructed",
			"series_uid", uid,
			"slices", result.Volume.Dimensions[2],
			"voxel_bytes", len(result.Volume.Voxels))
	}
	return result
}

// grouped buckets file results by series instance UID.
func grouped(results []*FileResult) map[string][]*FileResult {
	bySeries := make(map[string][]*FileResult)
	for _, r := range results {
		uid := r.Hierarchy.Series.SeriesInstanceUID
		bySeries[uid] = append(bySeries[uid], r)
	}
	return bySeries
}

// seriesOrder returns the series UIDs in deterministic (sorted) order, so
// that concurrent completion order never shows in the output.
func seriesOrder(results []*FileResult) []string {
	seen := make(map[string]bool)
	var uids []string
	for _, r := range results {
		uid := r.Hierarchy.Series.SeriesInstanceUID
		if !seen[uid] {
			seen[uid] = true
			uids = append(uids, uid)
		}
	}
	sort.Strings(uids)
	return uids
}

// sortFiles orders a series' files by instance number, then SOP instance
// UID, then path, giving the reconstructor a deterministic input order for
// its stable sort.
func sortFiles(files []*FileResult) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i].Hierarchy.Image, files[j].Hierarchy.Image
		switch {
		case a.InstanceNumber != nil && b.InstanceNumber != nil && *a.InstanceNumber != *b.InstanceNumber:
			return *a.InstanceNumber < *b.InstanceNumber
		case a.SOPInstanceUID != b.SOPInstanceUID:
			return a.SOPInstanceUID < b.SOPInstanceUID
		default:
			return files[i].Path < files[j].Path
		}
	})
}
