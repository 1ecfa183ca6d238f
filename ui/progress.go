package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/extract"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const (
	barWidth     = 40
	failuresShow = 5
)

type (
	progressMsg extract.Event
	doneMsg     struct {
		summary extract.Summary
		err     error
	}
	// ExtractFunc runs an extraction, reporting each finished entry to progress.
	ExtractFunc func(ctx context.Context, progress func(extract.Event)) (extract.Summary, error)
)

type Progress struct {
	archive  string
	ctx      context.Context
	cancel   context.CancelFunc
	run      ExtractFunc
	events   chan tea.Msg
	finished int
	total    int
	last     string
	failures []string
	summary  extract.Summary
	err      error
	done     bool
}

func CreateProgress(ctx context.Context, archive string, run ExtractFunc) Progress {
	ctx, cancel := context.WithCancel(ctx)
	return Progress{
		archive: archive,
		ctx:     ctx,
		cancel:  cancel,
		run:     run,
		events:  make(chan tea.Msg),
	}
}

func (s Progress) send(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.ctx.Done():
	}
}

func (s Progress) start() tea.Msg {
	summary, err := s.run(
		s.ctx,
		func(event extract.Event) {
			s.send(progressMsg(event))
		},
	)
	return doneMsg{summary: summary, err: err}
}

func (s Progress) listen() tea.Msg {
	select {
	case msg := <-s.events:
		return msg
	case <-s.ctx.Done():
		return nil
	}
}

func (s Progress) Init() tea.Cmd {
	return tea.Batch(s.start, s.listen)
}

func (s Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		s.finished++
		s.total = msg.Total
		s.last = msg.Name
		if msg.State == extract.StateFailed {
			s.failures = append(s.failures, fmt.Sprintf("%s: %v", msg.Name, msg.Err))
		}
		return s, s.listen
	case doneMsg:
		s.summary = msg.summary
		s.err = msg.err
		s.done = true
		s.cancel()
		return s, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			s.err = context.Canceled
			s.done = true
			s.cancel()
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s Progress) bar() string {
	if s.total == 0 {
		return strings.Repeat("░", barWidth)
	}
	filled := s.finished * barWidth / s.total
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func (s Progress) View() string {
	output := "MIGHTY SWITCH FORCE EXTRACTOR\n\n"
	output += "Archive: " + s.archive + "\n"
	output += fmt.Sprintf("%s %d/%d\n", s.bar(), s.finished, s.total)
	if s.last != "" {
		output += "Last: " + s.last + "\n"
	}

	recent := lo.Subset(s.failures, -failuresShow, failuresShow)
	if len(recent) > 0 {
		output += fmt.Sprintf("\nFailures (%d):\n", len(s.failures))
		for _, failure := range recent {
			output += "  " + failure + "\n"
		}
	}

	if s.done {
		output += fmt.Sprintf(
			"\nDone: %d extracted, %d skipped, %d failed\n",
			s.summary.Extracted,
			s.summary.Skipped,
			s.summary.Failed,
		)
	} else {
		output += "\nPress q to stop.\n"
	}
	return output
}
