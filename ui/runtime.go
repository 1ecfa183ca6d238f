package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/extract"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
)

// Run shows the progress view while run extracts archive, and returns once both are finished.
func Run(ctx context.Context, archive string, run ExtractFunc) (extract.Summary, error) {
	progress := CreateProgress(ctx, archive, run)
	defer progress.cancel()

	model, err := tea.NewProgram(&progress).StartReturningModel()
	if err != nil {
		return extract.Summary{}, errors.Wrap(err, "ui.Run error")
	}
	var final Progress
	switch model := model.(type) {
	case Progress:
		final = model
	case *Progress:
		final = *model
	default:
		return extract.Summary{}, ds.ErrUnreachableCode{Caller: "ui.Run", Detail: fmt.Sprintf("model type %T", model)}
	}
	if !final.done {
		return final.summary, context.Canceled
	}
	return final.summary, final.err
}
