package extract

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/anim"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sheet"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sprite"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/vol"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/wave"
	"github.com/iancoleman/orderedmap"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func waveBytes(padding uint16) []byte {
	w := bytes.Buffer{}
	w.Write(wave.EncodeHeader(wave.Header{
		Magic:             wave.MagicNumber,
		SampleRate:        22050,
		SampleCount:       14,
		LoopStart:         3,
		ChannelCount:      1,
		Padding:           padding,
		StartOffset:       wave.HeaderSize + wave.ChannelSize,
		Interleave:        8,
		CoefficientOffset: wave.HeaderSize,
	}))
	w.Write(wave.EncodeChannel(wave.Channel{}))
	w.Write([]byte{0x00, 0x10, 0, 0, 0, 0, 0, 0})
	return w.Bytes()
}

func opaque(width int, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0xFF, 0xFF
	}
	return img
}

type EndToEndTestSuite struct {
	suite.Suite
	R *require.Assertions

	Dir         string
	ArchivePath string
	OutputDir   string
	Logger      *logrus.Logger
	Hook        *test.Hook
}

func (suite *EndToEndTestSuite) SetupTest() {
	suite.R = suite.Require()
	suite.Dir = suite.T().TempDir()
	suite.ArchivePath = filepath.Join(suite.Dir, "data.vol")
	suite.OutputDir = filepath.Join(suite.Dir, "output")
	suite.Logger, suite.Hook = test.NewNullLogger()
	suite.Logger.SetLevel(logrus.TraceLevel)

	imageBytes, err := sprite.Encode(
		frame.Frame{Header: frame.Header{Magic: frame.MagicNumber, Width: 16, Height: 8}},
		[]*image.NRGBA{opaque(16, 8)},
	)
	suite.R.NoError(err)
	animBytes, err := anim.Encode(
		[]anim.Animation{
			{Name: "Idle", Frames: []anim.FrameRef{{FrameID: 0}, {FrameID: 1}}},
		},
		[]frame.Frame{
			{Header: frame.Header{Magic: frame.MagicNumber, Width: 8, Height: 8}},
			{Header: frame.Header{Magic: frame.MagicNumber, Width: 16, Height: 8}},
		},
		[]*image.NRGBA{opaque(16, 8)},
	)
	suite.R.NoError(err)

	suite.writeArchive([]vol.Payload{
		{Name: "Sound/a.wave", Data: waveBytes(0)},
		{Name: "b.image", Data: imageBytes},
		{Name: "readme.txt", Data: []byte("hello")},
		{Name: "broken.image", Data: make([]byte, 64)},
		{Name: "Sprites\\c.anim", Data: animBytes},
	})
}

func (suite *EndToEndTestSuite) writeArchive(payloads []vol.Payload) {
	suite.R.NoError(os.WriteFile(suite.ArchivePath, vol.Encode(payloads), 0644))
}

func (suite *EndToEndTestSuite) extractor(jobs int, progress func(Event)) *Extractor {
	return New(
		Options{
			OutputDir:   suite.OutputDir,
			Jobs:        jobs,
			SheetPrefix: "Sprites",
			Manifest:    true,
		},
		suite.Logger,
		progress,
	)
}

func (suite *EndToEndTestSuite) TestRun() {
	events := make([]Event, 0)
	summary, err := suite.extractor(1, func(event Event) { events = append(events, event) }).
		Run(context.Background(), suite.ArchivePath)
	suite.R.NoError(err)
	suite.Equal(Summary{Total: 5, Extracted: 3, Skipped: 1, Failed: 1}, summary)

	suite.R.Len(events, 5)
	suite.Equal(StateExtracted, events[0].State)
	suite.Equal(StateSkipped, events[2].State)
	suite.Equal(StateFailed, events[3].State)
	suite.True(aerr.IsKind(events[3].Err, aerr.KindBadMagic))
	suite.Contains(events[3].Err.Error(), `entry "broken.image"`)

	wav, err := os.ReadFile(filepath.Join(suite.OutputDir, "Sound", "a.wave.wav"))
	suite.R.NoError(err)
	suite.Equal([]byte("RIFF"), wav[:4])
	suite.Len(wav, 44+14*2)
	suite.Equal([]byte{1, 0}, wav[44:46])

	loop, err := os.ReadFile(filepath.Join(suite.OutputDir, "Sound", "a.wave.txt"))
	suite.R.NoError(err)
	suite.Equal("loop point: 3\x00", string(loop))

	suite.Equal(image.Rect(0, 0, 16, 8), suite.decodePNG("b.image.png").Bounds())

	sheetImg := suite.decodePNG(filepath.Join("Sprites", "c.anim.png"))
	suite.Equal(sheet.BackgroundColor, color.NRGBAModel.Convert(sheetImg.At(0, 0)))
	suite.Equal(color.NRGBAModel.Convert(color.NRGBA{R: 0xFF, A: 0xFF}), color.NRGBAModel.Convert(sheetImg.At(1, 10)))

	bin, err := os.ReadFile(filepath.Join(suite.OutputDir, "Sprites", "c.anim.bin"))
	suite.R.NoError(err)
	suite.Equal(sheet.DescriptionMagic, binary.LittleEndian.Uint32(bin))
	suite.Contains(string(bin), "Sprites/c.anim.png\x00")
	suite.Contains(string(bin), "Idle\x00")

	manifestBytes, err := os.ReadFile(filepath.Join(suite.OutputDir, ManifestName))
	suite.R.NoError(err)
	manifest := orderedmap.New()
	suite.R.NoError(manifest.UnmarshalJSON(manifestBytes))
	suite.Equal(
		[]string{"Sound/a.wave", "b.image", "readme.txt", "broken.image", "Sprites\\c.anim"},
		manifest.Keys(),
	)

	_, err = os.Stat(filepath.Join(suite.OutputDir, "broken.image.png"))
	suite.True(os.IsNotExist(err))
	suite.NotEmpty(suite.Hook.AllEntries())
}

func (suite *EndToEndTestSuite) decodePNG(name string) image.Image {
	bs, err := os.ReadFile(filepath.Join(suite.OutputDir, name))
	suite.R.NoError(err)
	img, err := png.Decode(bytes.NewReader(bs))
	suite.R.NoError(err)
	return img
}

func (suite *EndToEndTestSuite) TestRun_Parallel() {
	mu := sync.Mutex{}
	seen := map[int]State{}
	summary, err := suite.extractor(4, func(event Event) {
		mu.Lock()
		defer mu.Unlock()
		seen[event.Index] = event.State
	}).Run(context.Background(), suite.ArchivePath)
	suite.R.NoError(err)
	suite.Equal(Summary{Total: 5, Extracted: 3, Skipped: 1, Failed: 1}, summary)
	suite.Len(seen, 5)
	suite.Equal(StateExtracted, seen[4])
}

func (suite *EndToEndTestSuite) TestRun_AbortsOnPadding() {
	suite.writeArchive([]vol.Payload{
		{Name: "padded.wave", Data: waveBytes(1)},
		{Name: "fine.wave", Data: waveBytes(0)},
	})
	summary, err := suite.extractor(1, nil).Run(context.Background(), suite.ArchivePath)
	suite.R.Error(err)
	suite.True(aerr.IsFatal(err))
	suite.Equal(Summary{Total: 2, Failed: 1}, summary)

	_, err = os.Stat(filepath.Join(suite.OutputDir, "fine.wave.wav"))
	suite.True(os.IsNotExist(err))
}

func (suite *EndToEndTestSuite) TestRun_MissingArchive() {
	_, err := suite.extractor(1, nil).Run(context.Background(), filepath.Join(suite.Dir, "missing.vol"))
	suite.Error(err)

	suite.R.NoError(os.WriteFile(suite.ArchivePath, []byte("not an archive at all, really not"), 0644))
	_, err = suite.extractor(1, nil).Run(context.Background(), suite.ArchivePath)
	suite.True(aerr.IsKind(err, aerr.KindBadMagic))
}

func (suite *EndToEndTestSuite) TestRun_Cancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := suite.extractor(1, nil).Run(ctx, suite.ArchivePath)
	suite.ErrorIs(err, context.Canceled)
	suite.Equal(0, summary.Extracted)
}

func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"a.wave":          filepath.Join("out", "a.wave"),
		"Sound/b.wave":    filepath.Join("out", "Sound", "b.wave"),
		`Sprites\c.anim`:  filepath.Join("out", "Sprites", "c.anim"),
		"caf\xe9.image":   filepath.Join("out", "café.image"),
		"Sound/../d.wave": filepath.Join("out", "d.wave"),
	}
	for name, expected := range tests {
		result, err := OutputPath("out", name)
		assert.NoError(t, err, name)
		assert.Equal(t, expected, result, name)
	}

	for _, name := range []string{"../escape.wave", "/abs.wave", `..\up.anim`, ""} {
		_, err := OutputPath("out", name)
		assert.True(t, aerr.IsKind(err, aerr.KindInvalidLayout), name)
	}
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "out/a.wave.txt", replaceExtension("out/a.wave.wav", ".txt"))
	assert.Equal(t, "out/c.anim.bin", replaceExtension("out/c.anim.png", ".bin"))
	assert.Equal(t, "Sprites/c.anim.png", sheetPath("Sprites", "out/x/c.anim.png"))
	assert.Equal(t, "c.anim.png", sheetPath("", "out/c.anim.png"))
}
