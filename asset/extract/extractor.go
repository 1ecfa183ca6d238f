package extract

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sheet"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/vol"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Extractor struct {
	options  Options
	logger   logrus.Ext1FieldLogger
	progress func(Event)

	mu      sync.Mutex
	summary Summary
}

// New creates an extractor. progress may be nil; otherwise it is called from worker goroutines
// once per entry and must be safe for concurrent use.
func New(options Options, logger logrus.Ext1FieldLogger, progress func(Event)) *Extractor {
	if options.Jobs < 1 {
		options.Jobs = 1
	}
	if options.Font == nil {
		options.Font = sheet.DefaultFont()
	}
	if progress == nil {
		progress = func(Event) {}
	}
	return &Extractor{
		options:  options,
		logger:   logger,
		progress: progress,
	}
}

// Run opens the archive at archivePath and extracts all of its entries into the output
// directory.
func (r *Extractor) Run(ctx context.Context, archivePath string) (Summary, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return Summary{}, errors.Wrap(err, "extract.Extractor.Run error")
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return Summary{}, errors.Wrap(err, "extract.Extractor.Run error")
	}

	archive, err := vol.Open(file, info.Size())
	if err != nil {
		return Summary{}, errors.Wrapf(err, `extract.Extractor.Run error opening "%s"`, archivePath)
	}
	r.logger.
		WithField("archive", archivePath).
		WithField("files", len(archive.Files)).
		WithField("size", humanize.Bytes(uint64(info.Size()))).
		Info("opened archive")
	r.logger.Trace(ds.DumpJSON(archive.Header))

	if err := os.MkdirAll(r.options.OutputDir, 0755); err != nil {
		return Summary{}, errors.Wrap(err, "extract.Extractor.Run error creating the output directory")
	}
	if r.options.Manifest {
		if err := r.writeManifest(archive); err != nil {
			return Summary{}, err
		}
	}
	return r.ExtractAll(ctx, archive)
}

func (r *Extractor) writeManifest(archive *vol.Archive) error {
	bs, err := json.MarshalIndent(archive.Manifest(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "extract.Extractor.writeManifest error")
	}
	manifestPath := filepath.Join(r.options.OutputDir, ManifestName)
	if _, err := writeBytes(manifestPath, bs); err != nil {
		return err
	}
	r.logger.WithField("path", manifestPath).Debug("wrote manifest")
	return nil
}

func (r *Extractor) record(event Event) {
	r.mu.Lock()
	switch event.State {
	case StateExtracted:
		r.summary.Extracted++
	case StateSkipped:
		r.summary.Skipped++
	case StateFailed:
		r.summary.Failed++
	}
	r.mu.Unlock()
	r.progress(event)
}

// ExtractAll extracts the entries in declaration order on up to Options.Jobs workers. A failed
// entry is logged and counted; a fatal format violation stops new entries from starting and is
// returned.
func (r *Extractor) ExtractAll(ctx context.Context, archive *vol.Archive) (Summary, error) {
	r.mu.Lock()
	r.summary = Summary{Total: len(archive.Files)}
	r.mu.Unlock()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.options.Jobs)
	for i, file := range archive.Files {
		if groupCtx.Err() != nil {
			break
		}
		i, file := i, file
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			return r.extractIndexed(archive, i, file)
		})
	}
	err := group.Wait()

	r.mu.Lock()
	summary := r.summary
	r.mu.Unlock()
	if err != nil {
		return summary, errors.Wrap(err, "extract.Extractor.ExtractAll aborted")
	}
	return summary, ctx.Err()
}

func (r *Extractor) extractIndexed(archive *vol.Archive, index int, file vol.File) error {
	logger := r.logger.WithField("entry", DisplayName(file.Name))
	event := Event{
		Index: index,
		Total: len(archive.Files),
		Name:  DisplayName(file.Name),
	}

	outputs, err := r.ExtractEntry(archive, file)
	switch {
	case errors.Is(err, ErrUnsupported):
		event.State = StateSkipped
		logger.Debug("skipped")
	case err != nil:
		event.State = StateFailed
		event.Err = err
		logger.WithField("error", err).Error("extraction failed")
	default:
		event.State = StateExtracted
		event.Outputs = outputs
		logger.WithField("outputs", len(outputs)).Info("extracted")
	}
	r.record(event)

	if aerr.IsFatal(err) {
		return err
	}
	return nil
}

// ExtractEntry decodes one entry and writes its outputs, returning their paths. Entries of an
// unknown type return ErrUnsupported.
func (r *Extractor) ExtractEntry(archive *vol.Archive, file vol.File) ([]string, error) {
	kind := asset.KindFromName(file.Name)
	if kind == asset.KindUnknown {
		return nil, ErrUnsupported
	}
	base, err := OutputPath(r.options.OutputDir, file.Name)
	if err != nil {
		return nil, err
	}
	reader, err := archive.Open(file.Name)
	if err != nil {
		return nil, aerr.WithEntry(err, file.Name)
	}

	logger := r.logger.WithField("entry", DisplayName(file.Name))
	logger.Trace(ds.DumpJSON(file.Entry))
	target := base + kind.OutputExtension()
	var outputs []string
	switch kind {
	case asset.KindWave:
		outputs, err = r.extractWave(logger, reader, target)
	case asset.KindImage:
		outputs, err = r.extractImage(logger, reader, target)
	case asset.KindAnim:
		outputs, err = r.extractAnim(logger, reader, target)
	}
	if err != nil {
		return outputs, aerr.WithEntry(err, file.Name)
	}
	return outputs, nil
}

// replaceExtension names a sidecar after its main output: "a.wave.wav" becomes "a.wave.txt".
func replaceExtension(p string, extension string) string {
	return p[:len(p)-len(filepath.Ext(p))] + extension
}

func sheetPath(prefix string, pngPath string) string {
	return path.Join(prefix, filepath.Base(pngPath))
}
