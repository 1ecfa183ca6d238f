package extract

import (
	"image"
	"io"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/anim"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sheet"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sprite"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/wave"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

func logWritten(logger logrus.FieldLogger, path string, size int) {
	logger.
		WithField("path", path).
		WithField("size", humanize.Bytes(uint64(size))).
		Debug("wrote output")
}

func traceReports(logger logrus.Ext1FieldLogger, reports ...frame.Report) {
	for i, report := range reports {
		logger.Tracef("frame %d placements: %s", i, ds.DumpJSON(report.Placements))
		if len(report.Skipped) > 0 {
			logger.Tracef("frame %d skipped degenerate pieces %v", i, report.Skipped)
		}
	}
}

func (r *Extractor) extractWave(logger logrus.Ext1FieldLogger, reader *lbytes.Reader, wavPath string) ([]string, error) {
	asset, err := wave.Decode(reader)
	if err != nil {
		return nil, err
	}
	logger.Trace(ds.DumpJSON(asset.Header))
	logger.Trace(ds.DumpJSON(asset.Channels))

	size, err := writeOutput(
		wavPath,
		func(w io.Writer) error {
			return wave.EncodeWAV(w, *asset)
		},
	)
	if err != nil {
		return nil, err
	}
	logWritten(logger, wavPath, size)

	loopPath := replaceExtension(wavPath, ".txt")
	size, err = writeOutput(
		loopPath,
		func(w io.Writer) error {
			return wave.EncodeLoopInfo(w, asset.Header)
		},
	)
	if err != nil {
		return []string{wavPath}, err
	}
	logWritten(logger, loopPath, size)
	return []string{wavPath, loopPath}, nil
}

func (r *Extractor) extractImage(logger logrus.Ext1FieldLogger, reader *lbytes.Reader, pngPath string) ([]string, error) {
	asset, err := sprite.Decode(reader)
	if err != nil {
		return nil, err
	}
	logger.Trace(ds.DumpJSON(asset.Header))
	logger.Trace(ds.DumpJSON(asset.Frame.Header))
	if !asset.Frame.Header.HasMagic() {
		logger.WithField("magic", asset.Frame.Header.Magic).Debug("unexpected frame magic")
	}

	img, report, err := sprite.Render(*asset)
	if err != nil {
		return nil, err
	}
	traceReports(logger, report)
	if img == nil {
		logger.Debug("no textures, nothing to draw")
		return nil, nil
	}

	size, err := writePNG(pngPath, img)
	if err != nil {
		return nil, err
	}
	logWritten(logger, pngPath, size)
	return []string{pngPath}, nil
}

func (r *Extractor) extractAnim(logger logrus.Ext1FieldLogger, reader *lbytes.Reader, pngPath string) ([]string, error) {
	asset, err := anim.Decode(reader)
	if err != nil {
		return nil, err
	}
	logger.Trace(ds.DumpJSON(asset.Header))
	logger.Trace(ds.DumpJSON(asset.Entries))

	surfaces, reports, err := anim.RenderFrames(*asset)
	if err != nil {
		return nil, err
	}
	traceReports(logger, reports...)

	outputs := make([]string, 0, 2)
	strips := []sheet.Strip{}
	layout := sheet.Layout{}
	if surfaces != nil {
		strips = lo.Map(
			asset.Entries,
			func(entry anim.Entry, _ int) sheet.Strip {
				return sheet.Strip{
					Name: entry.Name,
					Frames: lo.Map(
						entry.Frames,
						func(ref anim.FrameRef, _ int) *image.NRGBA {
							return surfaces[ref.FrameID]
						},
					),
				}
			},
		)
		layout = sheet.Plan(strips)
		img := sheet.Render(layout, strips, r.options.Font)
		size, err := writePNG(pngPath, img)
		if err != nil {
			return nil, err
		}
		logWritten(logger, pngPath, size)
		outputs = append(outputs, pngPath)
	} else {
		logger.Debug("no textures, writing an empty description")
	}

	description := sheet.Describe(layout, strips, sheetPath(r.options.SheetPrefix, pngPath))
	binPath := replaceExtension(pngPath, ".bin")
	size, err := writeBytes(binPath, sheet.EncodeDescription(description))
	if err != nil {
		return outputs, err
	}
	logWritten(logger, binPath, size)
	return append(outputs, binPath), nil
}
