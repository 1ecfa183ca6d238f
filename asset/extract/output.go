package extract

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// DisplayName turns a stored entry name into text. Names that are not UTF-8 are read as
// Windows-1252.
func DisplayName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}

// OutputPath maps an entry name to a path under dir, without any extension. Names that would
// leave dir are rejected.
func OutputPath(dir string, name string) (string, error) {
	local := filepath.FromSlash(strings.ReplaceAll(DisplayName(name), `\`, "/"))
	if !filepath.IsLocal(local) {
		return "", aerr.InvalidLayout("extract.OutputPath", -1, `entry name "%s" escapes the output directory`, name)
	}
	return filepath.Join(dir, local), nil
}

// writeOutput renders write into memory, then creates path and its parent directories.
func writeOutput(path string, write func(w io.Writer) error) (int, error) {
	buf := bytes.Buffer{}
	if err := write(&buf); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, errors.Wrapf(err, `extract.writeOutput error creating the directory of "%s"`, path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, errors.Wrapf(err, `extract.writeOutput error writing "%s"`, path)
	}
	return buf.Len(), nil
}

func writePNG(path string, img image.Image) (int, error) {
	return writeOutput(
		path,
		func(w io.Writer) error {
			if err := png.Encode(w, img); err != nil {
				return errors.Wrap(err, "extract.writePNG error")
			}
			return nil
		},
	)
}

func writeBytes(path string, bs []byte) (int, error) {
	return writeOutput(
		path,
		func(w io.Writer) error {
			_, err := w.Write(bs)
			return err
		},
	)
}
