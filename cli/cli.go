package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/extract"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sheet"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ui"
)

type (
	Args struct {
		Archive     string `arg:"positional" help:"path to the .vol archive" placeholder:"ARCHIVE"`
		Output      string `arg:"-o,--output,env:MSF_OUTPUT" default:"output" help:"directory receiving the extracted files" placeholder:"DIR"`
		Jobs        int    `arg:"-j,--jobs,env:MSF_JOBS" default:"1" help:"number of entries decoded at once"`
		Font        string `arg:"--font" default:"8x8_Font.bin" help:"8x8 bitmap font for sheet labels, used when present" placeholder:"PATH"`
		SheetPrefix string `arg:"--sheet-prefix" default:"Sprites" help:"folder written before sheet names in .bin files" placeholder:"DIR"`
		Manifest    bool   `arg:"--manifest" help:"write manifest.json next to the extracted files"`
		Interactive bool   `arg:"-i,--interactive" help:"show a progress view instead of log lines"`
		Verbose     bool   `arg:"-v,--verbose" help:"log every written file"`
		Trace       bool   `arg:"--trace" help:"log decoded headers and piece placements"`
		// logs would garble the progress view, so interactive runs send them here or nowhere
		LogFile string `arg:"--log-file" help:"log destination in interactive mode" placeholder:"PATH"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Switch on, power up!\n",
			"A CLI utility to unpack Mighty Switch Force .vol archives, turning",
			"sounds into .wav files, images into .png files and animations into sprite sheets.",
		},
		"\n",
	)
	des += "\n"
	return des
}

// RegularFile reports whether path names a regular file. A missing path is not an error; a
// directory or a path that cannot be inspected is.
func RegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "cli.RegularFile error")
	}
	if !info.Mode().IsRegular() {
		return false, errors.Errorf(`cli.RegularFile error: "%s" is not a regular file`, path)
	}
	return true, nil
}

func CreateLogger(args Args, stderr io.Writer) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.InfoLevel)
	if args.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if args.Trace {
		logger.SetLevel(logrus.TraceLevel)
	}

	closer := func() {}
	if args.Interactive {
		logger.SetOutput(io.Discard)
		if args.LogFile != "" {
			file, err := os.Create(args.LogFile)
			if err != nil {
				return nil, nil, errors.Wrap(err, "cli.CreateLogger error")
			}
			logger.SetOutput(file)
			closer = func() { _ = file.Close() }
		}
	}
	return logger, closer, nil
}

// LoadFont returns nil when path is missing or unusable so that the built-in font is used instead.
func LoadFont(path string, logger logrus.FieldLogger) *sheet.BitmapFont {
	if path == "" {
		return nil
	}
	found, err := RegularFile(path)
	if err != nil {
		logger.WithError(err).Warn("cli.LoadFont: falling back to the built-in font")
		return nil
	}
	if !found {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Warn("cli.LoadFont: falling back to the built-in font")
		return nil
	}
	defer file.Close()

	font, err := sheet.LoadBitmapFont(file)
	if err != nil {
		logger.WithError(err).Warn("cli.LoadFont: falling back to the built-in font")
		return nil
	}
	return font
}

func printSummary(stdout io.Writer, args Args, summary extract.Summary) {
	fmt.Fprintf(
		stdout,
		"Extracted %s of %s entries into %s (%d skipped, %d failed)\n",
		humanize.Comma(int64(summary.Extracted)),
		humanize.Comma(int64(summary.Total)),
		args.Output,
		summary.Skipped,
		summary.Failed,
	)
}

// Run executes the command line given in argv and returns the process exit code.
func Run(argv []string, stdout io.Writer, stderr io.Writer) int {
	args := Args{}
	p, err := arg.NewParser(arg.Config{Program: "msf-extract"}, &args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	err = p.Parse(argv)
	switch {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(stdout)
		return 0
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if args.Archive == "" {
		p.WriteUsage(stdout)
		return 0
	}

	logger, closeLog, err := CreateLogger(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeLog()

	options := extract.Options{
		OutputDir:   args.Output,
		Jobs:        args.Jobs,
		SheetPrefix: args.SheetPrefix,
		Font:        LoadFont(args.Font, logger),
		Manifest:    args.Manifest,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var summary extract.Summary
	if args.Interactive {
		summary, err = ui.Run(
			ctx,
			args.Archive,
			func(ctx context.Context, progress func(extract.Event)) (extract.Summary, error) {
				return extract.New(options, logger, progress).Run(ctx, args.Archive)
			},
		)
	} else {
		summary, err = extract.New(options, logger, nil).Run(ctx, args.Archive)
	}
	if err != nil {
		logger.WithError(err).Error("extraction stopped")
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	printSummary(stdout, args, summary)
	return 0
}

func Start() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
