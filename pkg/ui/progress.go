package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// BatchProgress implements types.ProgressReporter on the terminal, showing
// completed/total across the combined removals+installs sequence. On a
// terminal it drives a pterm progress bar; otherwise it prints plain lines.
type BatchProgress struct {
	out       io.Writer
	bar       *pterm.ProgressbarPrinter
	total     int
	completed int
	isTTY     bool
}

// NewBatchProgress creates a progress reporter on stderr.
func NewBatchProgress() *BatchProgress {
	return &BatchProgress{
		out:   os.Stderr,
		isTTY: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// NewPlainProgress creates a non-TTY reporter writing plain lines to out.
func NewPlainProgress(out io.Writer) *BatchProgress {
	return &BatchProgress{out: out}
}

// Start implements types.ProgressReporter.
func (p *BatchProgress) Start(total int) {
	p.total = total
	p.completed = 0
	if p.isTTY {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Reconciling extensions").
			WithWriter(p.out).
			Start()
		if err == nil {
			p.bar = bar
		}
	}
}

// Advance implements types.ProgressReporter.
func (p *BatchProgress) Advance(item types.ItemResult) {
	p.completed++

	label := string(item.Action) + " " + item.ID
	if p.bar != nil {
		p.bar.UpdateTitle(label)
		p.bar.Increment()
		return
	}

	status := "ok"
	if item.Err != nil {
		status = "failed"
	}
	fmt.Fprintf(p.out, "[%d/%d] %s: %s\n", p.completed, p.total, label, status)
}

// Finish implements types.ProgressReporter.
func (p *BatchProgress) Finish() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}
