// Package progress wraps a terminal progress bar for file processing.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Bar wraps a progress bar over a known number of files.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a progress bar with the given label and total count.
func NewBar(label string, total int) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Bar{bar: bar}
}

// Tick increments the progress by 1. Safe for concurrent use.
func (b *Bar) Tick() {
	b.bar.Add(1)
}

// FinishSuccess clears the bar completely.
func (b *Bar) FinishSuccess() {
	b.bar.Finish()
	b.bar.Clear()
}
