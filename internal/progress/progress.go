// Package progress reports advancement through multi-item phases such as
// feed scanning and enrichment.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Tracker advances a single phase. Finish marks the phase complete; Exit
// stops the display where it is when the phase is abandoned.
type Tracker interface {
	Add(n int)
	Finish()
	Exit()
}

// Factory starts a tracker for a phase with a known number of steps.
type Factory func(total int, description string) Tracker

// Bars renders terminal progress bars on w.
func Bars(w io.Writer) Factory {
	return func(total int, description string) Tracker {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionOnCompletion(func() {
				_, _ = io.WriteString(w, "\n")
			}),
		)
		return &barTracker{bar: bar}
	}
}

// None discards progress.
func None() Factory {
	return func(int, string) Tracker { return noop{} }
}

type barTracker struct {
	bar *progressbar.ProgressBar
}

func (b *barTracker) Add(n int) { _ = b.bar.Add(n) }

func (b *barTracker) Finish() { _ = b.bar.Finish() }

func (b *barTracker) Exit() { _ = b.bar.Exit() }

type noop struct{}

func (noop) Add(int) {}
func (noop) Finish() {}
func (noop) Exit()   {}
