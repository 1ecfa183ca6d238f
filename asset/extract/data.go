// Package extract converts every entry of an archive into portable files.
package extract

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/sheet"
	"github.com/pkg/errors"
)

type (
	Options struct {
		OutputDir string
		// Jobs is the number of entries decoded at once; values below 1 mean 1.
		Jobs int
		// SheetPrefix is prepended to the sheet file name inside animation descriptions.
		SheetPrefix string
		// Font draws the animation labels; nil selects sheet.DefaultFont.
		Font     *sheet.BitmapFont
		Manifest bool
	}

	State string
	// Event reports the outcome of one entry. Index follows the archive's declaration order.
	Event struct {
		Index   int
		Total   int
		Name    string
		State   State
		Outputs []string
		Err     error
	}
	Summary struct {
		Total     int `json:"total"`
		Extracted int `json:"extracted"`
		Skipped   int `json:"skipped"`
		Failed    int `json:"failed"`
	}
)

const (
	StateExtracted = State("extracted")
	StateSkipped   = State("skipped")
	StateFailed    = State("failed")
)

const ManifestName = "manifest.json"

var ErrUnsupported = errors.New("unsupported entry type")
